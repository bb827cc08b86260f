// README: Vehicle class listing.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farely/internal/modules/vehicle"
)

type ClassLister interface {
	List() []vehicle.Class
}

type VehicleHandler struct {
	catalog ClassLister
}

func NewVehicleHandler(catalog ClassLister) *VehicleHandler {
	return &VehicleHandler{catalog: catalog}
}

type vehicleClassResp struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	RatePerKm float64 `json:"ratePerKm"`
}

func (h *VehicleHandler) List(c *gin.Context) {
	classes := h.catalog.List()
	out := make([]vehicleClassResp, 0, len(classes))
	for _, cl := range classes {
		out = append(out, vehicleClassResp{ID: cl.ID, Name: cl.Name, RatePerKm: cl.RatePerKm})
	}
	writeJSON(c, http.StatusOK, gin.H{"classes": out})
}
