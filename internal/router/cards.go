package router

import (
	"net/http"

	"github.com/deppfellow/card-collection-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerCardRoutes maps the /cards resource onto the card handler.
func registerCardRoutes(r *echo.Echo, h *handler.Handlers) {
	cards := r.Group("/cards")

	cards.GET("", handler.Handle(h.Card.Handler, h.Card.ListCards, http.StatusOK))
	cards.POST("", handler.Handle(h.Card.Handler, h.Card.CreateCard, http.StatusCreated))
	cards.GET("/:id", handler.Handle(h.Card.Handler, h.Card.GetCard, http.StatusOK))
	cards.PUT("/:id", handler.Handle(h.Card.Handler, h.Card.UpdateCard, http.StatusOK))
	cards.DELETE("/:id", handler.Handle(h.Card.Handler, h.Card.DeleteCard, http.StatusOK))
}
