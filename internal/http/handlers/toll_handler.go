// README: Toll fare handler; decodes loosely typed client payloads into a calculate command.
package handlers

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"farely/internal/modules/pricing"
)

type FareCalculator interface {
	Calculate(ctx context.Context, cmd pricing.CalculateCommand) (*pricing.FareResult, error)
}

type TollHandler struct {
	pricing FareCalculator
}

func NewTollHandler(svc FareCalculator) *TollHandler {
	return &TollHandler{pricing: svc}
}

func (h *TollHandler) Calculate(c *gin.Context) {
	var body any
	if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	fields, _ := body.(map[string]any)

	cmd := pricing.CalculateCommand{
		Plazas:       plazaList(fields["plazas"]),
		VehicleClass: classID(fields["vehicleClass"]),
		DistanceKm:   distanceKm(fields["distance_km"]),
	}
	res, err := h.pricing.Calculate(c.Request.Context(), cmd)
	if err != nil {
		if !pricing.IsValidationError(err) {
			log.Printf("toll: calculate failed: %v", err)
		}
		writePricingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

// plazaList keeps only string entries; anything other than an array is empty.
func plazaList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// classID accepts "1" as well as 1; desktop clients send the class as a number.
func classID(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func distanceKm(v any) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	return math.NaN()
}
