package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/route-finder/internal/config"
	"github.com/jengzang/route-finder/internal/metrics"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Port:            ":0",
		LogDir:          t.TempDir(),
		KMLOutput:       "out.kml",
		RateLimitPerMin: 100,
		Pipeline:        config.DefaultPipeline(),
	}
}

func get(r *gin.Engine, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if len(header) == 2 {
		req.Header.Set(header[0], header[1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRouter(testConfig(t), metrics.NewCollector())

	if w := get(r, "/health"); w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}

	// An empty log directory still completes a run
	if w := get(r, "/api/v1/routes"); w.Code != http.StatusOK {
		t.Fatalf("routes: %d %s", w.Code, w.Body.String())
	}

	w := get(r, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("metrics: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `routefinder_runs_total{outcome="no_qualifying_trip"} 1`) {
		t.Fatalf("expected run counter in metrics output:\n%s", w.Body.String())
	}
}

func TestRouter_AuthEnabledBySecret(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	cfg.JWTSecret = "secret"
	r := SetupRouter(cfg, metrics.NewCollector())

	if w := get(r, "/api/v1/routes"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if w := get(r, "/health"); w.Code != http.StatusOK {
		t.Fatalf("health should stay public, got %d", w.Code)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRouter(testConfig(t), metrics.NewCollector())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/routes", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header")
	}
}
