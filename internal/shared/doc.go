// Package shared holds code used across packages that belongs to no single
// layer.
//
// The testutil subpackage provides dataset fixtures (CSV text and Excel
// workbooks written to temp dirs) and a slog handler that captures records so
// tests can assert on what a component logged.
package shared
