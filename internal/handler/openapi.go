package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/deppfellow/go-qa/internal/server"
	"github.com/deppfellow/go-qa/static"
	"github.com/labstack/echo/v4"
)

// OpenAPIHandler serves the API reference page. The page loads
// /static/openapi.json.
type OpenAPIHandler struct {
	Handler
	files fs.FS
}

// NewOpenAPIHandler serves pages from static.Files.
func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		files:   static.Files,
	}
}

// ServeOpenAPIUI writes openapi.html with caching disabled so updated docs
// show up immediately.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	templateBytes, err := fs.ReadFile(h.files, "openapi.html")
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTMLBlob(http.StatusOK, templateBytes); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
