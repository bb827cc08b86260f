// README: Liveness and readiness probes.
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) Live(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		log.Printf("health: rate store ping failed: %v", err)
		writeError(c, http.StatusServiceUnavailable, "rate store unavailable")
		return
	}
	c.String(http.StatusOK, "OK")
}
