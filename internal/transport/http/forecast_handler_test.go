package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "energyforecast/internal/errors"
	"energyforecast/internal/forecast"
	"energyforecast/pkg/contracts/domain"
)

// MockForecastService is a mock implementation of ForecastServiceInterface
type MockForecastService struct {
	mock.Mock
}

func (m *MockForecastService) Ingest(ctx context.Context, r io.Reader, filename string) (*domain.Summary, error) {
	body, _ := io.ReadAll(r)
	args := m.Called(string(body), filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *MockForecastService) Predict(ctx context.Context) (*domain.Prediction, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Prediction), args.Error(1)
}

func (m *MockForecastService) Dataset(ctx context.Context) (*domain.DatasetView, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DatasetView), args.Error(1)
}

func (m *MockForecastService) Model(ctx context.Context) (*domain.ModelInfo, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelInfo), args.Error(1)
}

func (m *MockForecastService) Export(ctx context.Context, w io.Writer) error {
	args := m.Called()
	if s, ok := args.Get(0).(string); ok {
		io.WriteString(w, s)
	}
	return args.Error(1)
}

func (m *MockForecastService) ExportFilename() string {
	return m.Called().String(0)
}

const testField = "dataset"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testErrorHandler() *apierrors.ErrorHandler {
	return apierrors.NewErrorHandler(testLogger(), false)
}

func multipartRequest(t *testing.T, method, target, field, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = io.WriteString(fw, content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func sampleSummary() *domain.Summary {
	return &domain.Summary{
		Message:      forecast.SuccessMessage,
		Filename:     "energy.csv",
		LatestDate:   time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC),
		LatestEnergy: 14,
		Rows:         3,
	}
}

func samplePrediction() *domain.Prediction {
	return &domain.Prediction{
		NextDate:        time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC),
		NextDayIndex:    3,
		PredictedEnergy: 16,
		LatestDate:      time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC),
		LatestEnergy:    14,
	}
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestForecastHandler_UploadDataset(t *testing.T) {
	tests := []struct {
		name       string
		field      string
		setupMock  func(m *MockForecastService)
		wantStatus int
		wantCode   string
	}{
		{
			name:  "success",
			field: testField,
			setupMock: func(m *MockForecastService) {
				m.On("Ingest", "Date,Energy\n", "energy.csv").Return(sampleSummary(), nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing field",
			field:      "other",
			setupMock:  func(m *MockForecastService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.CodeNoFile,
		},
		{
			name:  "schema error",
			field: testField,
			setupMock: func(m *MockForecastService) {
				m.On("Ingest", mock.Anything, "energy.csv").
					Return(nil, fmt.Errorf("ingest energy.csv: %w", &forecast.SchemaError{Columns: []string{"x"}}))
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   apierrors.CodeSchema,
		},
		{
			name:  "parse error",
			field: testField,
			setupMock: func(m *MockForecastService) {
				m.On("Ingest", mock.Anything, "energy.csv").
					Return(nil, &forecast.ParseError{Filename: "energy.csv", Format: "csv", Err: io.ErrUnexpectedEOF})
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.CodeParse,
		},
		{
			name:  "insufficient data",
			field: testField,
			setupMock: func(m *MockForecastService) {
				m.On("Ingest", mock.Anything, "energy.csv").
					Return(nil, &forecast.InsufficientDataError{Rows: 1, Required: 2})
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   apierrors.CodeInsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockForecastService)
			tt.setupMock(svc)
			h := NewForecastHandler(svc, testField, testLogger(), testErrorHandler())

			rec := httptest.NewRecorder()
			h.Routes().ServeHTTP(rec, multipartRequest(t, http.MethodPost, "/dataset", tt.field, "energy.csv", "Date,Energy\n"))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeJSON(t, rec)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body["error_code"])
			} else {
				assert.Equal(t, forecast.SuccessMessage, body["message"])
				assert.Equal(t, float64(3), body["rows"])
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestForecastHandler_UploadNotMultipart(t *testing.T) {
	svc := new(MockForecastService)
	h := NewForecastHandler(svc, testField, testLogger(), testErrorHandler())

	req := httptest.NewRequest(http.MethodPost, "/dataset", bytes.NewBufferString("Date,Energy"))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.CodeNoFile, decodeJSON(t, rec)["error_code"])
	svc.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything)
}

func TestForecastHandler_UploadTooLarge(t *testing.T) {
	svc := new(MockForecastService)
	h := NewForecastHandler(svc, testField, testLogger(), testErrorHandler())

	req := multipartRequest(t, http.MethodPost, "/dataset", testField, "energy.csv", string(bytes.Repeat([]byte("x"), 4096)))
	rec := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rec, req.Body, 512)
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, apierrors.CodePayloadTooLarge, decodeJSON(t, rec)["error_code"])
}

func TestForecastHandler_Predict(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		svc := new(MockForecastService)
		svc.On("Predict").Return(samplePrediction(), nil)
		h := NewForecastHandler(svc, testField, testLogger(), testErrorHandler())

		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/predict", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeJSON(t, rec)
		assert.Equal(t, float64(16), body["predicted_energy"])
		assert.Equal(t, float64(3), body["next_day_index"])
	})

	t.Run("not ready", func(t *testing.T) {
		svc := new(MockForecastService)
		svc.On("Predict").Return(nil, fmt.Errorf("predict: %w", forecast.ErrNotReady))
		h := NewForecastHandler(svc, testField, testLogger(), testErrorHandler())

		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/predict", nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
		body := decodeJSON(t, rec)
		assert.Equal(t, apierrors.CodeNotReady, body["error_code"])
		assert.Contains(t, body["detail"], forecast.NotReadyMessage)
	})
}

func TestForecastHandler_GetDatasetAndModel(t *testing.T) {
	svc := new(MockForecastService)
	model := &domain.ModelInfo{Slope: 2, Intercept: 10, DataPoints: 3, RSquared: 1}
	svc.On("Dataset").Return(&domain.DatasetView{Summary: *sampleSummary(), Model: *model}, nil)
	svc.On("Model").Return(model, nil)
	h := NewForecastHandler(svc, testField, testLogger(), testErrorHandler())

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dataset", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeJSON(t, rec), "summary")

	rec = httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/model", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decodeJSON(t, rec)["slope"])
}

func TestForecastHandler_ExportDataset(t *testing.T) {
	t.Run("csv download", func(t *testing.T) {
		svc := new(MockForecastService)
		svc.On("Model").Return(&domain.ModelInfo{}, nil)
		svc.On("ExportFilename").Return("dataset-2024-01-03.csv")
		svc.On("Export").Return("Date,Energy,Day_Index\n", nil)
		h := NewForecastHandler(svc, testField, testLogger(), testErrorHandler())

		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dataset/export", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "dataset-2024-01-03.csv")
		assert.Equal(t, "Date,Energy,Day_Index\n", rec.Body.String())
	})

	t.Run("not ready", func(t *testing.T) {
		svc := new(MockForecastService)
		svc.On("Model").Return(nil, forecast.ErrNotReady)
		h := NewForecastHandler(svc, testField, testLogger(), testErrorHandler())

		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dataset/export", nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
		svc.AssertNotCalled(t, "Export")
	})
}
