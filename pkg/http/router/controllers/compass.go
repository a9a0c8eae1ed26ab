package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/compassx/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type compassAPI struct {
	compassService CompassService
	log            *zap.Logger
}

func New(compassService CompassService, log *zap.Logger) *compassAPI {
	return &compassAPI{
		compassService: compassService,
		log:            log,
	}
}

func (api *compassAPI) Routes(group *helper.RouteGroup) {
	group.POST("/position", api.updatePosition)
	group.GET("/heading", api.heading)
	group.GET("/bearing", api.bearing)
	group.DELETE("/track", api.resetTrack)
}

// updatePosition godoc
//
//	@Summary	feed one position fix into the heading pipeline
//	@Router		/position [post]
func (api *compassAPI) updatePosition(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request positionRequest
		err     error
	)
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	validate := validator.New()

	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	heading := api.compassService.UpdatePosition(request.Lat, request.Lon)

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewHeadingResponse(heading)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// heading godoc
//
//	@Summary	current animated heading and rose label
//	@Router		/heading [get]
func (api *compassAPI) heading(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	heading := api.compassService.CurrentHeading()

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewHeadingResponse(heading)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// bearing godoc
//
//	@Summary	pure great-circle bearing between an explicit point pair
//	@Router		/bearing [get]
func (api *compassAPI) bearing(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request bearingRequest
		err     error
	)

	query := r.URL.Query()

	request.FromLat, err = strconv.ParseFloat(query.Get("from_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("from_lat is required and must be a valid float"))
		return
	}
	request.FromLon, err = strconv.ParseFloat(query.Get("from_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("from_lon is required and must be a valid float"))
		return
	}
	request.ToLat, err = strconv.ParseFloat(query.Get("to_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("to_lat is required and must be a valid float"))
		return
	}
	request.ToLon, err = strconv.ParseFloat(query.Get("to_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("to_lon is required and must be a valid float"))
		return
	}
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	bearing, direction := api.compassService.Bearing(request.FromLat, request.FromLon,
		request.ToLat, request.ToLon)

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewBearingResponse(bearing,
		direction.String())}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// resetTrack godoc
//
//	@Summary	drop fix history and reseed the animation
//	@Router		/track [delete]
func (api *compassAPI) resetTrack(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	api.compassService.ResetTrack()

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": "track reset"}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
