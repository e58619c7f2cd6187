package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "energyforecast/internal/errors"
)

// ForecastHandler serves the JSON API
type ForecastHandler struct {
	service      ForecastServiceInterface
	formField    string
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewForecastHandler creates a handler reading uploads from formField
func NewForecastHandler(service ForecastServiceInterface, formField string, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ForecastHandler {
	return &ForecastHandler{
		service:      service,
		formField:    formField,
		logger:       logger.With(slog.String("component", "forecast_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the API routes, relative to /api
func (h *ForecastHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/dataset", func(r chi.Router) {
		r.Post("/", h.UploadDataset)
		r.Get("/", h.GetDataset)
		r.Get("/export", h.ExportDataset)
	})
	r.Get("/model", h.GetModel)
	r.Post("/predict", h.Predict)

	return r
}

// UploadDataset handles POST /api/dataset
func (h *ForecastHandler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	up, err := readUpload(r, h.formField)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer up.Close()

	h.logger.InfoContext(r.Context(), "dataset upload received",
		slog.String("filename", up.Filename))

	summary, err := h.service.Ingest(r.Context(), up, up.Filename)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, summary)
}

// GetDataset handles GET /api/dataset
func (h *ForecastHandler) GetDataset(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Dataset(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, view)
}

// ExportDataset handles GET /api/dataset/export
func (h *ForecastHandler) ExportDataset(w http.ResponseWriter, r *http.Request) {
	// Probe first so a not-ready error can still be sent as a problem document
	if _, err := h.service.Model(r.Context()); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.service.ExportFilename()))

	if err := h.service.Export(r.Context(), w); err != nil {
		// Headers are gone; all that is left is to log
		h.logger.ErrorContext(r.Context(), "dataset export failed",
			slog.String("error", err.Error()))
	}
}

// GetModel handles GET /api/model
func (h *ForecastHandler) GetModel(w http.ResponseWriter, r *http.Request) {
	model, err := h.service.Model(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, model)
}

// Predict handles POST /api/predict
func (h *ForecastHandler) Predict(w http.ResponseWriter, r *http.Request) {
	prediction, err := h.service.Predict(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, prediction)
}
