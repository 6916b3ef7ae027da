package metrics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/msto63/boundary/pkg/core/health"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestGuardMetrics_Counters(t *testing.T) {
	m := NewGuardMetrics()

	m.FaultRecorded("injector")
	m.FaultRecorded("injector")
	m.FaultRecorded("episodes")
	m.RetryRecorded("injector")
	m.ReportFailed("injector")

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"faults injector", testutil.ToFloat64(m.faults.WithLabelValues("injector")), 2},
		{"faults episodes", testutil.ToFloat64(m.faults.WithLabelValues("episodes")), 1},
		{"retries", testutil.ToFloat64(m.retries.WithLabelValues("injector")), 1},
		{"report failures", testutil.ToFloat64(m.reportFailures.WithLabelValues("injector")), 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestRouter_Metrics(t *testing.T) {
	m := NewGuardMetrics()
	m.FaultRecorded("injector")

	router := NewRouter(m, health.NewRegistry("boundary", "1.0.0"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `boundary_faults_total{boundary="injector"} 1`) {
		t.Errorf("metrics output misses fault counter:\n%s", rec.Body.String())
	}
}

func TestRouter_Healthz(t *testing.T) {
	tests := []struct {
		name   string
		status health.Status
		code   int
	}{
		{"healthy", health.StatusHealthy, http.StatusOK},
		{"degraded", health.StatusDegraded, http.StatusOK},
		{"unhealthy", health.StatusUnhealthy, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checks := health.NewRegistry("boundary", "1.0.0")
			checks.RegisterFunc("fault-sink", func(ctx context.Context) health.CheckResult {
				return health.CheckResult{Status: tt.status}
			})

			rec := httptest.NewRecorder()
			NewRouter(NewGuardMetrics(), checks).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d", rec.Code, tt.code)
			}
			var report health.Report
			if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
				t.Fatalf("decode report: %v", err)
			}
			if report.Status != tt.status {
				t.Errorf("report status = %v, want %v", report.Status, tt.status)
			}
		})
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRouter(NewGuardMetrics(), health.NewRegistry("boundary", "1.0.0")).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/metrics", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
