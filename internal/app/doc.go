// Package app wires configuration, logging, telemetry, the forecast store and
// the HTTP surface into one Application and runs it.
//
// # Initialization Flow
//
//	1. Load configuration (defaults, YAML file, environment)
//	2. Initialize logging and OpenTelemetry
//	3. Create the dataset store, WebSocket hub and services
//	4. Build the chi router and the HTTP server
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// Run stops on SIGINT, SIGTERM or context cancellation. In-flight requests are
// drained, the WebSocket hub stops and telemetry is flushed.
//
// The package never calls os.Exit; errors go back to main.
package app
