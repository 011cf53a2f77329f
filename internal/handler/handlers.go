package handler

import (
	"github.com/deppfellow/card-collection-api/internal/server"
	"github.com/deppfellow/card-collection-api/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
//
// Similar to Middlewares and Services, router setup receives this single
// struct instead of every handler separately.
type Handlers struct {
	Card    *CardHandler    // Card serves the /cards resource.
	Health  *HealthHandler  // Health serves the liveness endpoint.
	Root    *RootHandler    // Root serves the welcome message.
	OpenAPI *OpenAPIHandler // OpenAPI serves the docs UI and the OpenAPI description.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Card:    NewCardHandler(s, services.Card),
		Health:  NewHealthHandler(s, services.Card),
		Root:    NewRootHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
