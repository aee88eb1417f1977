package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWithRequestLogger_InjectsRequestScopedLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := RequestID(WithRequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		GetLogger(r.Context()).Info("handled")
	})))

	r := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	r.Header.Set(RequestIDHeader, "req-1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	out := buf.String()
	for _, want := range []string{`"method":"GET"`, `"path":"/api/cart"`, `"request_id":"req-1"`, `"msg":"handled"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log output to contain %s, got %s", want, out)
		}
	}
}

func TestGetLogger_Fallback(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	if got := GetLogger(r.Context(), fallback); got != fallback {
		t.Error("expected the provided fallback logger")
	}
	if got := GetLogger(r.Context()); got == nil {
		t.Error("expected slog.Default, got nil")
	}
}
