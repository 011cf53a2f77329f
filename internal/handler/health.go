package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/card-collection-api/internal/middleware"
	"github.com/deppfellow/card-collection-api/internal/server"
	"github.com/deppfellow/card-collection-api/internal/service"
	"github.com/labstack/echo/v4"
)

// HealthHandler exposes a "system" endpoint that external systems can use to verify
// the service is alive.
type HealthHandler struct {
	Handler
	cards *service.CardService
}

// NewHealthHandler constructs a HealthHandler with access to shared app dependencies.
func NewHealthHandler(s *server.Server, cards *service.CardService) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		cards:   cards,
	}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]HealthCheck `json:"checks"`
}

// HealthCheck reports a single dependency.
type HealthCheck struct {
	Status       string `json:"status"`
	Cards        int    `json:"cards"`
	ResponseTime string `json:"responseTime"`
}

// CheckHealth returns the service status and the card store check.
//
// The store lives in process memory, so it is healthy whenever the
// process can answer; the check still reports the card count.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	storeStart := time.Now()
	count := h.cards.Count(c.Request().Context())

	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks: map[string]HealthCheck{
			"store": {
				Status:       "healthy",
				Cards:        count,
				ResponseTime: time.Since(storeStart).String(),
			},
		},
	}

	logger.Debug().
		Int("cards", count).
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent(
				"HealthCheckError",
				map[string]interface{}{
					"check_type":    "response",
					"operation":     "health_check",
					"error_type":    "json_response_error",
					"error_message": err.Error(),
				},
			)
		}

		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
