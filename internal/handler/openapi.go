package handler

import (
	"io/fs"
	"net/http"

	"github.com/deppfellow/card-collection-api/internal/server"
	"github.com/deppfellow/card-collection-api/static"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OpenAPIHandler serves the API documentation.
//
// The UI is a static HTML page that loads its JS from a CDN and reads the
// OpenAPI description from /docs/openapi.json. Both files are embedded in
// the binary. Caching is disabled so doc updates show up immediately.
type OpenAPIHandler struct {
	Handler
	assets fs.FS
}

// NewOpenAPIHandler constructs an OpenAPIHandler with access to shared dependencies.
func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		assets:  static.Files,
	}
}

// ServeOpenAPIUI serves openapi.html.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	return h.serveAsset(c, "openapi.html", echo.MIMETextHTMLCharsetUTF8)
}

// ServeOpenAPISpec serves openapi.json.
func (h *OpenAPIHandler) ServeOpenAPISpec(c echo.Context) error {
	return h.serveAsset(c, "openapi.json", echo.MIMEApplicationJSONCharsetUTF8)
}

func (h *OpenAPIHandler) serveAsset(c echo.Context, name, contentType string) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	data, err := fs.ReadFile(h.assets, name)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", name)
	}

	if err := c.Blob(http.StatusOK, contentType, data); err != nil {
		return errors.Wrapf(err, "failed to write %s", name)
	}

	return nil
}
