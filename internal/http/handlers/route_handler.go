// README: Route distance handler; driving distance when maps is configured, straight line otherwise.
package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"farely/internal/geo"
	"farely/internal/maps"
)

type DrivingRouter interface {
	DrivingDistance(ctx context.Context, origin, destination geo.Point) (maps.DrivingEstimate, error)
}

type RouteHandler struct {
	router DrivingRouter
}

// NewRouteHandler accepts a nil router; distances then fall back to haversine.
func NewRouteHandler(router DrivingRouter) *RouteHandler {
	return &RouteHandler{router: router}
}

type routeDistanceReq struct {
	Start *geo.Point `json:"start"`
	End   *geo.Point `json:"end"`
}

type routeDistanceResp struct {
	DistanceKm        float64  `json:"distance_km"`
	StraightLineKm    float64  `json:"straight_line_km"`
	DrivingDistanceKm *float64 `json:"driving_distance_km"`
	DurationMin       *float64 `json:"duration_min"`
	Source            string   `json:"source"`
}

func (h *RouteHandler) Distance(c *gin.Context) {
	var req routeDistanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Start == nil || req.End == nil {
		writeError(c, http.StatusBadRequest, "missing start or end")
		return
	}
	if !req.Start.Valid() || !req.End.Valid() {
		writeError(c, http.StatusBadRequest, "invalid coordinates")
		return
	}

	straight := geo.HaversineKm(*req.Start, *req.End)
	resp := routeDistanceResp{DistanceKm: straight, StraightLineKm: straight, Source: "haversine"}

	if h.router != nil {
		est, err := h.router.DrivingDistance(c.Request.Context(), *req.Start, *req.End)
		if err != nil {
			log.Printf("route: driving distance failed, using straight line: %v", err)
		} else {
			km := est.DistanceKm
			mins := est.Duration.Minutes()
			resp.DistanceKm = km
			resp.DrivingDistanceKm = &km
			resp.DurationMin = &mins
			resp.Source = "maps"
		}
	}
	writeJSON(c, http.StatusOK, resp)
}
