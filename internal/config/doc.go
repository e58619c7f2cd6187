// Package config provides centralized configuration management for the
// energy forecast service.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, later ones winning:
//
//  1. Default values (Default)
//  2. A YAML file: $ENERGY_CONFIG_FILE, ./config.yaml or ./configs/config.yaml
//  3. Environment variables prefixed with ENERGY_
//
// # Environment Variables
//
// Variables follow the struct nesting:
//
//	ENERGY_SERVER_PORT=5000
//	ENERGY_LOGGING_LEVEL=debug
//	ENERGY_LOGGING_OUTPUT=both
//	ENERGY_UPLOAD_MAX_BYTES=10485760
//	ENERGY_TELEMETRY_TRACE_EXPORTER=stdout
//	ENERGY_SECURITY_ALLOWED_ORIGINS=http://localhost:5000,http://127.0.0.1:5000
//
// # Validation
//
// The merged Config is validated with struct tags (go-playground/validator).
// Field names in validation errors use the YAML key names.
package config
