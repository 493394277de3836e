package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestStructuredLoggerUsesRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(StructuredLogger(logger))
	r.Get("/product/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/product/42", nil))

	out := buf.String()
	assert.Contains(t, out, `"http.route":"/product/{id}"`)
	assert.Contains(t, out, `"url.path":"/product/42"`)
	assert.Contains(t, out, `"http.response.status_code":404`)
	assert.Contains(t, out, `"level":"WARN"`)
}

func TestNoStore(t *testing.T) {
	rec := httptest.NewRecorder()
	NoStore(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestMetricMiddlewaresPassThrough(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	r := chi.NewRouter()
	r.Use(ActiveRequestsMiddleware(meter), CatalogPageViews(meter))
	r.Get("/shop", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shop", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
