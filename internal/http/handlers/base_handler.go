// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"farely/internal/modules/pricing"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writePricingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pricing.ErrInsufficientPlazas):
		writeJSON(c, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "insufficient_plazas"})
	case errors.Is(err, pricing.ErrInvalidVehicleClass):
		writeJSON(c, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "invalid_vehicle_class"})
	case errors.Is(err, pricing.ErrInvalidDistance):
		writeJSON(c, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "invalid_distance"})
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
