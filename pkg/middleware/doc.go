// Package middleware provides net/http middleware for the placeholder
// server: Prometheus request metrics, OpenTelemetry server spans and a
// structured access log.
//
// Each middleware is a func(http.Handler) http.Handler and plugs into a chi
// router with Use:
//
//	reg := prometheus.NewRegistry()
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry())
//	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
//	r.Use(middleware.AccessLog(logger))
//
// Labels and span names use the chi route pattern ("/placeholders/*"),
// never the raw path, so image keys do not create new series.
package middleware
