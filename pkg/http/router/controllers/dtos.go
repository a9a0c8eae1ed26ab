package controllers

import (
	"github.com/lintang-b-s/compassx/pkg/tracker"
	"github.com/lintang-b-s/compassx/pkg/util"
)

type positionRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

type bearingRequest struct {
	FromLat float64 `json:"from_lat" validate:"min=-90,max=90"`
	FromLon float64 `json:"from_lon" validate:"min=-180,max=180"`
	ToLat   float64 `json:"to_lat" validate:"min=-90,max=90"`
	ToLon   float64 `json:"to_lon" validate:"min=-180,max=180"`
}

type headingResponse struct {
	Displayed  float64 `json:"displayed"`
	Bearing    float64 `json:"bearing"`
	Direction  string  `json:"direction"`
	Converging bool    `json:"converging"`
}

func NewHeadingResponse(h tracker.Heading) headingResponse {
	return headingResponse{
		Displayed:  util.RoundFloat(h.Displayed, 4),
		Bearing:    util.RoundFloat(h.Bearing, 4),
		Direction:  h.Direction.String(),
		Converging: h.Converging,
	}
}

type bearingResponse struct {
	Bearing   float64 `json:"bearing"`
	Direction string  `json:"direction"`
}

func NewBearingResponse(bearing float64, direction string) bearingResponse {
	return bearingResponse{
		Bearing:   util.RoundFloat(bearing, 4),
		Direction: direction,
	}
}

type frameMessage struct {
	Angle      float64 `json:"angle"`
	Target     float64 `json:"target"`
	Direction  string  `json:"direction"`
	Converging bool    `json:"converging"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
