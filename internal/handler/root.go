package handler

import (
	"net/http"
	"time"

	"github.com/deppfellow/card-collection-api/internal/server"
	"github.com/labstack/echo/v4"
)

const (
	apiVersion       = "1.0.0"
	documentationURL = "https://github.com/yourusername/card-collection-api"
)

// RootHandler answers GET / with a short description of the API.
type RootHandler struct {
	Handler
}

func NewRootHandler(s *server.Server) *RootHandler {
	return &RootHandler{
		Handler: NewHandler(s),
	}
}

// WelcomeResponse is the body of GET /.
type WelcomeResponse struct {
	Message       string    `json:"message"`
	Documentation string    `json:"documentation"`
	Version       string    `json:"version"`
	Timestamp     time.Time `json:"timestamp"`
}

func (h *RootHandler) Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, WelcomeResponse{
		Message:       "Welcome to the Card Collection API",
		Documentation: documentationURL,
		Version:       apiVersion,
		Timestamp:     time.Now().UTC(),
	})
}
