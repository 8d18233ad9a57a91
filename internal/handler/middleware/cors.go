package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"storefront/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware always lets browsers send Idempotency-Key and read
// X-Request-ID, even when the configured lists leave them out.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     withHeader(cfg.AllowHeaders, "Idempotency-Key"),
		ExposeHeaders:    withHeader(cfg.ExposeHeaders, "X-Request-ID"),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized", "AllowOrigins", cfg.AllowOrigins)
	return cors.New(corsCfg)
}

func withHeader(headers []string, h string) []string {
	if slices.ContainsFunc(headers, func(v string) bool { return http.CanonicalHeaderKey(v) == http.CanonicalHeaderKey(h) }) {
		return headers
	}
	return append(slices.Clone(headers), h)
}
