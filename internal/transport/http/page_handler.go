package http

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	apierrors "energyforecast/internal/errors"
	"energyforecast/internal/forecast"
	"energyforecast/pkg/contracts/domain"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Page messages
const (
	errorPrefix   = "❌ "
	resultFormat  = "🔮 Predicted Energy Consumption for %s: %.2f kWh"
	noFileMessage = "No file uploaded"
)

// pageData feeds templates/index.html
type pageData struct {
	FormField    string
	Message      string
	Error        string
	Result       string
	LatestDate   string
	LatestEnergy string
	Rows         int
	DroppedRows  int
}

// PageHandler serves the HTML form
type PageHandler struct {
	service      ForecastServiceInterface
	formField    string
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewPageHandler creates the HTML handler
func NewPageHandler(service ForecastServiceInterface, formField string, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *PageHandler {
	return &PageHandler{
		service:      service,
		formField:    formField,
		logger:       logger.With(slog.String("component", "page_handler")),
		errorHandler: errorHandler,
	}
}

// Index handles GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageData{})
}

// Upload handles POST /upload
func (h *PageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	up, err := readUpload(r, h.formField)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	defer up.Close()

	summary, err := h.service.Ingest(r.Context(), up, up.Filename)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, pageData{
		Message:      summary.Message,
		LatestDate:   summary.LatestDay(),
		LatestEnergy: formatEnergy(summary.LatestEnergy),
		Rows:         summary.Rows,
		DroppedRows:  summary.DroppedRows,
	})
}

// Predict handles POST /predict
func (h *PageHandler) Predict(w http.ResponseWriter, r *http.Request) {
	prediction, err := h.service.Predict(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, pageData{
		Result:       ResultText(prediction),
		LatestDate:   prediction.LatestDay(),
		LatestEnergy: formatEnergy(prediction.LatestEnergy),
	})
}

// ResultText formats a prediction the way the page shows it
func ResultText(p *domain.Prediction) string {
	return fmt.Sprintf(resultFormat, p.NextDay(), p.PredictedEnergy)
}

// ErrorText formats err the way the page shows it
func ErrorText(err error) string {
	var (
		apiErr    *apierrors.APIError
		schemaErr *forecast.SchemaError
		parseErr  *forecast.ParseError
		dataErr   *forecast.InsufficientDataError
		otherErr  *forecast.OtherError
	)

	switch {
	case errors.Is(err, apierrors.ErrNoFile):
		return errorPrefix + noFileMessage
	case errors.Is(err, forecast.ErrNotReady):
		return errorPrefix + forecast.NotReadyMessage
	case errors.As(err, &schemaErr):
		return errorPrefix + schemaErr.Error()
	case errors.As(err, &parseErr):
		return errorPrefix + "Error: " + parseErr.Error()
	case errors.As(err, &dataErr):
		return errorPrefix + "Error: " + dataErr.Error()
	case errors.As(err, &otherErr):
		return errorPrefix + "Error: " + otherErr.Error()
	case errors.As(err, &apiErr):
		return errorPrefix + "Error: " + apiErr.Message
	default:
		return errorPrefix + "Error: " + err.Error()
	}
}

func (h *PageHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := h.errorHandler.ErrorToProblem(err, r).Status

	h.logger.WarnContext(r.Context(), "page request failed",
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("error", err.Error()))

	h.render(w, r, status, pageData{Error: ErrorText(err)})
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	data.FormField = h.formField

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTemplate.Execute(w, data); err != nil {
		h.logger.ErrorContext(r.Context(), "template execution failed",
			slog.String("error", err.Error()))
	}
}

func formatEnergy(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
