// Package api wraps the MCP streamable-HTTP endpoint with routing and auth.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router that guards the MCP handler with Bearer
// token auth when enabled. The streamable-HTTP transport uses several
// methods on one endpoint, so everything is routed to the handler as-is.
func NewRouter(mcpHandler http.Handler, authEnabled bool, token string) chi.Router {
	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))
	r.Handle("/*", mcpHandler)
	return r
}
