package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"runtime/debug"

	"github.com/go-chi/render"

	"energyforecast/internal/forecast"
	"energyforecast/internal/infrastructure"
)

// Common error types following RFC 7807
const (
	TypeValidation       = "/errors/validation"
	TypeNotFound         = "/errors/not-found"
	TypeRateLimit        = "/errors/rate-limit"
	TypeInternal         = "/errors/internal"
	TypeTimeout          = "/errors/timeout"
	TypePayloadTooLarge  = "/errors/payload-too-large"
	TypeMethodNotAllowed = "/errors/method-not-allowed"
)

// Dataset error types
const (
	TypeDatasetParse        = "/errors/dataset/parse"
	TypeDatasetSchema       = "/errors/dataset/schema"
	TypeDatasetInsufficient = "/errors/dataset/insufficient-data"
	TypeDatasetNotReady     = "/errors/dataset/not-ready"
	TypeDatasetMissing      = "/errors/dataset/no-file"
	TypeIngestFailed        = "/errors/dataset/ingest-failed"
)

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "error_handler")),
		includeStack: includeStack,
	}
}

// HandleError converts any error to RFC 7807 format and responds
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	traceID := infrastructure.GetTraceID(r.Context())
	problem := h.ErrorToProblem(err, r)

	level := slog.LevelWarn
	if problem.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, "request failed",
		slog.String("error", err.Error()),
		slog.Int("status", problem.Status),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("remote_addr", r.RemoteAddr),
	)

	problem.WithExtension("trace_id", traceID)
	if h.includeStack && problem.Status >= http.StatusInternalServerError {
		problem.WithExtension("stack", getStackTrace())
	}

	render.Render(w, r, problem)
}

// ErrorToProblem converts an error to RFC 7807 Problem Details
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewProblemDetails(
			http.StatusGatewayTimeout,
			TypeTimeout,
			"Request Timeout",
			"The request took too long to process and was cancelled",
			r.URL.Path,
		)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return h.apiErrorToProblem(apiErr, r)
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return h.apiErrorToProblem(PayloadTooLarge(maxBytesErr.Limit), r)
	}

	return h.forecastErrorToProblem(err, r)
}

// forecastErrorToProblem maps ingest and predict failures
func (h *ErrorHandler) forecastErrorToProblem(err error, r *http.Request) *ProblemDetails {
	var (
		status int
		typ    string
		title  string
		code   string
		detail = err.Error()
	)

	switch forecast.Kind(err) {
	case forecast.KindParse:
		status, typ, title, code = http.StatusBadRequest, TypeDatasetParse, "Unreadable Dataset", CodeParse
	case forecast.KindSchema:
		status, typ, title, code = http.StatusUnprocessableEntity, TypeDatasetSchema, "Missing Columns", CodeSchema
	case forecast.KindInsufficientData:
		status, typ, title, code = http.StatusUnprocessableEntity, TypeDatasetInsufficient, "Insufficient Data", CodeInsufficientData
	case forecast.KindNotReady:
		status, typ, title, code = http.StatusConflict, TypeDatasetNotReady, "Dataset Not Ready", CodeNotReady
	default:
		var otherErr *forecast.OtherError
		if !errors.As(err, &otherErr) {
			return NewProblemDetails(
				http.StatusInternalServerError,
				TypeInternal,
				"Internal Server Error",
				"An unexpected error occurred while processing your request",
				r.URL.Path,
			).WithExtension("error_code", CodeInternal)
		}
		status, typ, title, code = http.StatusInternalServerError, TypeIngestFailed, "Ingest Failed", CodeIngestFailed
	}

	problem := NewProblemDetails(status, typ, title, detail, r.URL.Path).
		WithExtension("error_code", code)

	var schemaErr *forecast.SchemaError
	if errors.As(err, &schemaErr) {
		problem.WithExtension("columns", schemaErr.Columns)
	}
	var dataErr *forecast.InsufficientDataError
	if errors.As(err, &dataErr) {
		problem.WithExtension("rows", dataErr.Rows).WithExtension("required", dataErr.Required)
	}

	return problem
}

// apiErrorToProblem converts APIError to ProblemDetails
func (h *ErrorHandler) apiErrorToProblem(apiErr *APIError, r *http.Request) *ProblemDetails {
	problemType := TypeInternal
	switch apiErr.ErrorCode {
	case CodeInvalidRequest:
		problemType = TypeValidation
	case CodeNoFile:
		problemType = TypeDatasetMissing
	case CodeNotFound:
		problemType = TypeNotFound
	case CodeRateLimit:
		problemType = TypeRateLimit
	case CodePayloadTooLarge:
		problemType = TypePayloadTooLarge
	}

	problem := NewProblemDetails(
		apiErr.StatusCode,
		problemType,
		http.StatusText(apiErr.StatusCode),
		apiErr.Message,
		r.URL.Path,
	).WithExtension("error_code", apiErr.ErrorCode)

	if apiErr.Details != nil {
		problem.WithExtension("details", apiErr.Details)
	}

	return problem
}

// HandlePanic recovers from panics and returns RFC 7807 error
func (h *ErrorHandler) HandlePanic(w http.ResponseWriter, r *http.Request, recovered interface{}) {
	traceID := infrastructure.GetTraceID(r.Context())

	h.logger.ErrorContext(r.Context(), "panic recovered",
		slog.Any("panic", recovered),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("stack", string(debug.Stack())),
	)

	problem := NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		"An unexpected error occurred",
		r.URL.Path,
	).WithExtension("trace_id", traceID)

	if h.includeStack {
		problem.WithExtension("panic", fmt.Sprintf("%v", recovered))
		problem.WithExtension("stack", getStackTrace())
	}

	render.Render(w, r, problem)
}

// NotFound returns a standard 404 error
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(
		http.StatusNotFound,
		TypeNotFound,
		"Not Found",
		"The requested resource was not found",
		r.URL.Path,
	).WithExtension("trace_id", infrastructure.GetTraceID(r.Context()))

	render.Render(w, r, problem)
}

// MethodNotAllowed returns a standard 405 error
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(
		http.StatusMethodNotAllowed,
		TypeMethodNotAllowed,
		"Method Not Allowed",
		fmt.Sprintf("Method %s is not allowed for this endpoint", r.Method),
		r.URL.Path,
	).WithExtension("trace_id", infrastructure.GetTraceID(r.Context()))

	render.Render(w, r, problem)
}

// getStackTrace returns the current stack trace
func getStackTrace() string {
	buf := make([]byte, 1024*8)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}
