package persona

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/uptura/site/backend/internal/model/persona"
)

func TestGetPersonaProfile(t *testing.T) {
	seed := persona.Seed()[0]
	r := chi.NewRouter()
	New(seed).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/persona", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), seed.Contact.Phone) {
		t.Fatal("profile should not expose contact details")
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if profile.Name != "TuraBot" || profile.Greeting == "" {
		t.Fatalf("unexpected profile %+v", profile)
	}
	if len(profile.Services) != len(seed.Services) {
		t.Fatalf("expected %d services, got %d", len(seed.Services), len(profile.Services))
	}
}

func TestPersonaRejectsPost(t *testing.T) {
	r := chi.NewRouter()
	New(persona.Seed()[0]).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodPost, "/persona", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
}
