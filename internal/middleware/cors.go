// Package middleware provides reusable HTTP middleware for the wedding timeline API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler returns a middleware that applies CORS headers based on allowedOrigins.
// Each entry in allowedOrigins must be a full origin (scheme + host, no trailing slash).
// Content-Disposition and Location are exposed so a browser client can name
// downloaded exports and follow newly created presets.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept"},
		ExposedHeaders: []string{"Content-Disposition", "Location"},
		MaxAge:         600,
	})
	return c.Handler
}
