package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"intercept-proxy-go/internal/config"
	"intercept-proxy-go/internal/metrics"
)

// RegisterRoutes wires all route handlers onto the Echo instance. The
// proxy's own endpoints are matched first; every other path falls through
// to the intercept pipeline.
func RegisterRoutes(e *echo.Echo, cfg *config.Config, m *metrics.Metrics, proxy *ProxyHandler, health *HealthHandler) {
	e.GET("/healthz", health.Healthz)
	e.GET("/proxy/status", health.Status)

	if cfg.Metrics.Enabled {
		e.GET(cfg.Metrics.Path, echo.WrapHandler(
			promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}),
		))
	}

	e.Any("/", proxy.Handle)
	e.Any("/*", proxy.Handle)
}
