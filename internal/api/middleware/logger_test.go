package middleware_test

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/api/middleware"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("hello")) //nolint:errcheck // test handler
	})

	handler := chimiddleware.RequestID(middleware.Logger(next))

	req := httptest.NewRequest(http.MethodGet, "/api/city/Moscow%0Aforged/series", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	line := buf.String()
	if !strings.Contains(line, "GET /api/city/Moscowforged/series 418 5 ") {
		t.Errorf("Expected sanitized request line with status and size, got %q", line)
	}
	if strings.Contains(line, "[-]") {
		t.Errorf("Expected request id in log line, got %q", line)
	}
	if strings.Count(line, "\n") != 1 {
		t.Errorf("Expected exactly one log line, got %q", line)
	}
}
