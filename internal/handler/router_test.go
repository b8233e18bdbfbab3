package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/uptura/site/backend/internal/config"
	middlewarePkg "github.com/uptura/site/backend/internal/middleware"
	"github.com/uptura/site/backend/internal/model/persona"
	aiService "github.com/uptura/site/backend/internal/service/ai"
)

func newUnconfiguredService(t *testing.T) *aiService.Service {
	t.Helper()
	svc, err := aiService.NewService(nil, config.AIConfig{
		PersonaID:     "turabot",
		PromptVariant: config.PromptFull,
	}, persona.NewMemoryStore(persona.Seed()))
	if err != nil {
		t.Fatalf("NewService err: %v", err)
	}
	return svc
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "192.0.2.10:4321"
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestRouterRoutes(t *testing.T) {
	r := NewRouter(newUnconfiguredService(t), config.SiteConfig{AllowedOrigin: "*", WebSocketEnabled: true}, nil)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		status   int
		contains string
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK, `"status":"ok"`},
		{"chat wrong method", http.MethodGet, "/api/chat", "", http.StatusMethodNotAllowed, `"reply":"Method Not Allowed"`},
		{"chat options", http.MethodOptions, "/api/chat", "", http.StatusMethodNotAllowed, `"reply":"Method Not Allowed"`},
		{"chat without key", http.MethodPost, "/api/chat", `{"message":"Hi"}`, http.StatusInternalServerError, `Server configuration error (API Key missing).`},
		{"persona", http.MethodGet, "/api/persona", "", http.StatusOK, `"name":"TuraBot"`},
		{"unknown api route", http.MethodGet, "/api/nope", "", http.StatusNotFound, `"error":"not found"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := serve(r, tc.method, tc.path, tc.body)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d (%s)", tc.status, resp.Code, resp.Body.String())
			}
			if tc.contains != "" && !strings.Contains(resp.Body.String(), tc.contains) {
				t.Fatalf("expected body to contain %q, got %s", tc.contains, resp.Body.String())
			}
		})
	}
}

func TestRouterRateLimitsChat(t *testing.T) {
	limiter := middlewarePkg.NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	r := NewRouter(newUnconfiguredService(t), config.SiteConfig{AllowedOrigin: "*"}, limiter)

	if resp := serve(r, http.MethodPost, "/api/chat", `{"message":"Hi"}`); resp.Code != http.StatusInternalServerError {
		t.Fatalf("first request: expected 500, got %d", resp.Code)
	}
	resp := serve(r, http.MethodPost, "/api/chat", `{"message":"Hi"}`)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", resp.Code)
	}

	// The persona route is not limited.
	if resp := serve(r, http.MethodGet, "/api/persona", ""); resp.Code != http.StatusOK {
		t.Fatalf("persona: expected 200, got %d", resp.Code)
	}
}

func TestRouterWebSocketToggle(t *testing.T) {
	r := NewRouter(newUnconfiguredService(t), config.SiteConfig{AllowedOrigin: "*", WebSocketEnabled: false}, nil)

	if resp := serve(r, http.MethodGet, "/api/chat/ws", ""); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with websocket disabled, got %d", resp.Code)
	}
}

func TestRouterServesStaticSite(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "footer.html"), []byte("<footer>Uptura</footer>"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	r := NewRouter(newUnconfiguredService(t), config.SiteConfig{AllowedOrigin: "*", StaticDir: dir}, nil)

	resp := serve(r, http.MethodGet, "/footer.html", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "<footer>Uptura</footer>") {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}
