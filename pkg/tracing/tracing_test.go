package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// Tracer delegates to the first global provider only, so one recorder serves the package.
var recorder = tracetest.NewSpanRecorder()

func TestMain(m *testing.M) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	code := m.Run()
	_ = tp.Shutdown(context.Background())
	os.Exit(code)
}

func endedSpan(t *testing.T, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, s := range recorder.Ended() {
		if s.Name() == name {
			return s
		}
	}
	t.Fatalf("no ended span named %q", name)
	return nil
}

func TestGinMiddlewareNamesSpanByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	span := endedSpan(t, "GET /items/:id")
	if span.Status().Code != codes.Error {
		t.Fatalf("5xx response should mark the span as failed")
	}
}

func TestEndSpanRecordsError(t *testing.T) {
	_, span := StartSpan(context.Background(), "quiz.submit")
	EndSpan(span, errors.New("boom"))

	ended := endedSpan(t, "quiz.submit")
	if ended.Status().Code != codes.Error || ended.Status().Description != "boom" {
		t.Fatalf("unexpected status %+v", ended.Status())
	}
	if len(ended.Events()) == 0 {
		t.Fatalf("expected the error to be recorded as an event")
	}
}
