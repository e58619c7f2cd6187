// Package services sits between the HTTP handlers and the forecast core.
//
// ForecastService runs uploads through the ingest pipeline and answers
// prediction and dataset queries. Around each call it adds the cross-cutting
// work the core does not do: a span, metrics, structured logs and a WebSocket
// event for connected dashboards.
//
// HealthService reports liveness, readiness (a dataset has been ingested) and
// build information.
//
// Both services take their collaborators through constructors so tests can
// substitute them.
package services
