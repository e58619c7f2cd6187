// Package http implements the HTTP handlers of the energy forecast service.
//
// Handlers stay thin: they parse the request, call the service layer and
// format the response. Errors are never rendered by hand; they are passed to
// the shared apierrors.ErrorHandler, which turns them into RFC 7807 problem
// documents.
//
// Two surfaces share the same service:
//
//	PageHandler     server-rendered form at /, /upload and /predict
//	ForecastHandler JSON API under /api
//
// plus HealthHandler for /api/health* and /api/version and MetricsHandler for
// the Prometheus scrape endpoint.
package http
