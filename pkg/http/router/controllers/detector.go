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
	"github.com/joejanuszk/CarND-Capstone/pkg"
	"github.com/joejanuszk/CarND-Capstone/pkg/datastructure"
	"github.com/joejanuszk/CarND-Capstone/pkg/geo"
	helper "github.com/joejanuszk/CarND-Capstone/pkg/http/router/routerhelper"
	"github.com/twpayne/go-polyline"
	"go.uber.org/zap"
)

type detectorAPI struct {
	detectorService DetectorService
	log             *zap.Logger
}

func New(detectorService DetectorService, log *zap.Logger) *detectorAPI {
	return &detectorAPI{
		detectorService: detectorService,
		log:             log,
	}
}

func (api *detectorAPI) Routes(group *helper.RouteGroup) {
	group.POST("/pose", api.updatePose)
	group.POST("/route", api.updateRoute)
	group.POST("/lights", api.updateLights)
	group.POST("/image", api.processImage)
	group.GET("/waypoint", api.currentWaypoint)
	group.GET("/stoplines/near", api.stopLinesNear)
}

func (api *detectorAPI) validateRequest(w http.ResponseWriter, r *http.Request, request interface{}) bool {
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
		return false
	}
	return true
}

func (api *detectorAPI) updatePose(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request poseRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if !api.validateRequest(w, r, request) {
		return
	}

	api.detectorService.UpdatePose(request.Position.ToPoint(), request.Orientation.ToQuaternion())

	if err := api.writeJSON(w, http.StatusAccepted, envelope{"data": "pose updated"}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *detectorAPI) updateRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request routeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if !api.validateRequest(w, r, request) {
		return
	}

	var waypoints []geo.Point
	if request.Polyline != "" {
		coords, _, err := polyline.DecodeCoords([]byte(request.Polyline))
		if err != nil {
			api.BadRequestResponse(w, r, fmt.Errorf("invalid route polyline: %w", err))
			return
		}
		waypoints = make([]geo.Point, 0, len(coords))
		for _, c := range coords {
			waypoints = append(waypoints, geo.NewPoint(c[0], c[1]))
		}
	} else {
		waypoints = make([]geo.Point, 0, len(request.Waypoints))
		for _, wp := range request.Waypoints {
			waypoints = append(waypoints, wp.ToPoint())
		}
	}
	if err := api.detectorService.UpdateRoute(waypoints); err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusAccepted,
		envelope{"data": fmt.Sprintf("route updated with %d waypoints", len(waypoints))}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *detectorAPI) updateLights(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request lightsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if !api.validateRequest(w, r, request) {
		return
	}

	lights := make([]datastructure.TrafficLight, 0, len(request.Lights))
	for _, l := range request.Lights {
		lights = append(lights, datastructure.NewTrafficLight(l.Position.ToPoint(), pkg.ParseLightColor(*l.State)))
	}

	api.detectorService.UpdateLights(lights)

	if err := api.writeJSON(w, http.StatusAccepted,
		envelope{"data": fmt.Sprintf("%d traffic lights updated", len(lights))}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// processImage triggers one pipeline pass; the response carries the waypoint
// index published for this frame.
func (api *detectorAPI) processImage(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request imageRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if !api.validateRequest(w, r, request) {
		return
	}

	waypointIdx := api.detectorService.ProcessFrame(request.Frame)

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewWaypointResponse(waypointIdx)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *detectorAPI) currentWaypoint(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	resp := NewStateResponse(api.detectorService.LastPublished(), api.detectorService.StableColor().String())

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *detectorAPI) stopLinesNear(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	query := r.URL.Query()

	x, err := strconv.ParseFloat(query.Get("x"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("x is required and must be a valid float"))
		return
	}
	y, err := strconv.ParseFloat(query.Get("y"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("y is required and must be a valid float"))
		return
	}
	radius := pkg.SEARCH_RANGE_METERS
	if query.Get("radius") != "" {
		radius, err = strconv.ParseFloat(query.Get("radius"), 64)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("radius must be a valid float"))
			return
		}
	}

	points, err := api.detectorService.StopLinesNear(geo.NewPoint(x, y), radius)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewStopLinesResponse(points)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
