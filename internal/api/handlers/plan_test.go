package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokrain/harmonia-api/internal/planner"
	"github.com/lokrain/harmonia-api/internal/templates"
)

// setupPlanTestRouter creates a minimal test router with the planner
// endpoints backed by builtin templates only.
func setupPlanTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())

	provider := templates.NewProvider(nil)
	service := planner.NewService(provider, nil)

	planHandler := NewPlanHandler(service)
	router.POST("/api/v1/plan", planHandler.Plan)
	router.GET("/api/v1/styles", ListStyles)

	templatesHandler := NewTemplatesHandler(provider)
	router.GET("/api/v1/templates", templatesHandler.List)
	router.GET("/api/v1/templates/:id", templatesHandler.Get)
	router.POST("/api/v1/templates", templatesHandler.Import)
	router.DELETE("/api/v1/templates/:id", templatesHandler.Delete)

	healthHandler := NewHealthHandler(nil)
	router.GET("/health", healthHandler.HealthCheck)

	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getJSON(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestPlanEndpoint(t *testing.T) {
	router := setupPlanTestRouter()

	w := postJSON(t, router, "/api/v1/plan", PlanRequest{
		Tonic:      "C",
		Mode:       "major",
		TemplateID: "aaba_8",
		Style:      StyleSelection{Preset: "balanced"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	bars, ok := resp["bars"].([]any)
	require.True(t, ok, "response should contain bars array")
	assert.Len(t, bars, 8)

	first, ok := bars[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "C", first["chord"])
	assert.Equal(t, "C major", resp["key"])

	// No explain mode requested, so no trace in the response.
	_, present := resp["trace"]
	assert.False(t, present)
}

func TestPlanEndpointExplain(t *testing.T) {
	router := setupPlanTestRouter()

	w := postJSON(t, router, "/api/v1/plan", PlanRequest{
		Tonic:      "F",
		Mode:       "major",
		TemplateID: "ballad_8",
		Explain:    "brief",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	trace, ok := resp["trace"].([]any)
	require.True(t, ok)
	assert.Len(t, trace, 8)
}

func TestPlanEndpointErrors(t *testing.T) {
	router := setupPlanTestRouter()

	tests := []struct {
		name           string
		request        PlanRequest
		expectedStatus int
		expectedKind   string
	}{
		{
			name:           "unknown_template",
			request:        PlanRequest{Tonic: "C", Mode: "major", TemplateID: "missing"},
			expectedStatus: http.StatusNotFound,
			expectedKind:   "unknown_template",
		},
		{
			name:           "unknown_key",
			request:        PlanRequest{Tonic: "H", Mode: "major", TemplateID: "aaba_8"},
			expectedStatus: http.StatusBadRequest,
			expectedKind:   "unknown_key",
		},
		{
			name:           "unknown_preset",
			request:        PlanRequest{Tonic: "C", Mode: "major", TemplateID: "aaba_8", Style: StyleSelection{Preset: "shoegaze"}},
			expectedStatus: http.StatusBadRequest,
			expectedKind:   "invalid_style_profile",
		},
		{
			name: "invalid_override",
			request: PlanRequest{
				Tonic: "C", Mode: "major", TemplateID: "aaba_8",
				Style: StyleSelection{Overrides: &StyleOverrides{RiskLevel: floatPtr(2)}},
			},
			expectedStatus: http.StatusBadRequest,
			expectedKind:   "invalid_style_profile",
		},
		{
			name: "insufficient_depth",
			request: PlanRequest{
				Tonic: "C", Mode: "major", TemplateID: "jazz_aaba_32",
				Style: StyleSelection{Overrides: &StyleOverrides{MaxDepth: intPtr(8)}},
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedKind:   "insufficient_depth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, router, "/api/v1/plan", tt.request)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedKind, resp["kind"])
		})
	}
}

func TestPlanEndpointRejectsMissingFields(t *testing.T) {
	router := setupPlanTestRouter()
	w := postJSON(t, router, "/api/v1/plan", map[string]any{"tonic": "C"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStylesEndpoint(t *testing.T) {
	router := setupPlanTestRouter()

	w, resp := getJSON(t, router, "/api/v1/styles")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "balanced", resp["default"])
	presets, ok := resp["presets"].([]any)
	require.True(t, ok)
	assert.Len(t, presets, 4)
}

func TestTemplatesEndpoints(t *testing.T) {
	router := setupPlanTestRouter()

	w, resp := getJSON(t, router, "/api/v1/templates")
	require.Equal(t, http.StatusOK, w.Code)
	list, ok := resp["templates"].([]any)
	require.True(t, ok)
	assert.Len(t, list, 5, "builtin catalog")

	w, resp = getJSON(t, router, "/api/v1/templates/blues_12")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "blues_12", resp["id"])

	w, _ = getJSON(t, router, "/api/v1/templates/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Mutations need the database-backed store.
	w = postJSON(t, router, "/api/v1/templates", templates.Template{ID: "x", Name: "X", Version: 1})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/templates/blues_12", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := setupPlanTestRouter()

	w, resp := getJSON(t, router, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", resp["status"])

	storage, ok := resp["template_storage"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "disabled", storage["status"])
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
