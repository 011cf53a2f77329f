package router

import (
	"github.com/deppfellow/card-collection-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the card
// resource: health, welcome and documentation.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	// Liveness endpoint for load balancers and uptime monitors.
	r.GET("/health", h.Health.CheckHealth)

	r.GET("/", h.Root.Welcome)

	// Docs UI and the OpenAPI description it loads.
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/docs/openapi.json", h.OpenAPI.ServeOpenAPISpec)
}
