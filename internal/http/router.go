// README: HTTP router registration.
package http

import (
	"github.com/gin-gonic/gin"

	"farely/internal/http/handlers"
	"farely/internal/http/middleware"
)

type RouterDeps struct {
	Pricing   handlers.FareCalculator
	Catalog   handlers.ClassLister
	Routes    handlers.DrivingRouter
	Readiness handlers.Pinger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(deps.Readiness)
	r.GET("/health", healthHandler.Live)
	r.GET("/health/ready", healthHandler.Ready)

	tollHandler := handlers.NewTollHandler(deps.Pricing)
	r.POST("/toll/calculate", tollHandler.Calculate)

	api := r.Group("/api")
	api.POST("/toll/calculate", tollHandler.Calculate)

	vehicleHandler := handlers.NewVehicleHandler(deps.Catalog)
	api.GET("/vehicle-classes", vehicleHandler.List)

	routeHandler := handlers.NewRouteHandler(deps.Routes)
	api.POST("/route/distance", routeHandler.Distance)

	return r
}
