package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/compassx/pkg/animator"
	"github.com/lintang-b-s/compassx/pkg/compass"
	helper "github.com/lintang-b-s/compassx/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/compassx/pkg/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCompassService struct {
	heading   tracker.Heading
	updates   []string
	resets    int
	listeners int
}

func (f *fakeCompassService) UpdatePosition(lat, lon float64) tracker.Heading {
	f.updates = append(f.updates, "update")
	return f.heading
}

func (f *fakeCompassService) CurrentHeading() tracker.Heading {
	return f.heading
}

func (f *fakeCompassService) Bearing(fromLat, fromLon, toLat, toLon float64) (float64, compass.Direction) {
	return 90, compass.EAST
}

func (f *fakeCompassService) ResetTrack() {
	f.resets++
}

func (f *fakeCompassService) AddFrameListener(fn func(animator.Frame)) {
	f.listeners++
}

func newTestRouter(service CompassService) *httprouter.Router {
	router := httprouter.New()
	group := helper.NewRouteGroup(router, "/api")
	New(service, zap.NewNop()).Routes(group)
	return router
}

func TestUpdatePositionHandler(t *testing.T) {
	service := &fakeCompassService{
		heading: tracker.Heading{Displayed: 42.5, Bearing: 90, Direction: compass.EAST, Converging: true},
	}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/api/position",
		strings.NewReader(`{"lat": -7.7956, "lon": 110.3695}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, service.updates, 1)
	assert.Contains(t, rec.Body.String(), `"direction":"E"`)
	assert.Contains(t, rec.Body.String(), `"converging":true`)
}

func TestUpdatePositionRejectsOutOfRange(t *testing.T) {
	service := &fakeCompassService{}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/api/position",
		strings.NewReader(`{"lat": 95.0, "lon": 10.0}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, service.updates, "invalid fix must not reach the pipeline")
}

func TestUpdatePositionRejectsMalformedJSON(t *testing.T) {
	router := newTestRouter(&fakeCompassService{})

	req := httptest.NewRequest(http.MethodPost, "/api/position", strings.NewReader(`{lat:`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHeadingHandler(t *testing.T) {
	service := &fakeCompassService{
		heading: tracker.Heading{Displayed: 180, Bearing: 180, Direction: compass.SOUTH},
	}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/api/heading", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"direction":"S"`)
}

func TestBearingHandler(t *testing.T) {
	router := newTestRouter(&fakeCompassService{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/bearing?from_lat=0&from_lon=0&to_lat=0&to_lon=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bearing":90`)
	assert.Contains(t, rec.Body.String(), `"direction":"E"`)
}

func TestBearingHandlerMissingParam(t *testing.T) {
	router := newTestRouter(&fakeCompassService{})

	req := httptest.NewRequest(http.MethodGet, "/api/bearing?from_lat=0", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetTrackHandler(t *testing.T) {
	service := &fakeCompassService{}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodDelete, "/api/track", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, service.resets)
}
