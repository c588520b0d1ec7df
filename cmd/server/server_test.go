// cmd/server/server_test.go
package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// The metrics manager registers collectors on the process-global
// Prometheus registry, so every test shares one server instance.
var (
	testServerOnce sync.Once
	testServer     *server
	testHandler    http.Handler
)

func sharedHandler(t *testing.T) http.Handler {
	t.Helper()
	testServerOnce.Do(func() {
		srv, err := newServer(log.New(io.Discard, "", 0))
		if err != nil {
			t.Fatalf("failed to create server: %v", err)
		}
		testServer = srv
		testHandler = srv.routes()
	})
	if testHandler == nil {
		t.Fatal("server initialization failed in an earlier test")
	}
	return testHandler
}

func postExtract(t *testing.T, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	sharedHandler(t).ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	sharedHandler(t).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", w.Code)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("health response is not valid JSON: %v", err)
	}
	if payload["status"] != "healthy" {
		t.Errorf("status = %v, expected healthy", payload["status"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	sharedHandler(t).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "realtyscrapexter") {
		t.Error("metrics exposition missing namespace")
	}
}

func TestExtractListingsEndpoint(t *testing.T) {
	body := `{
		"html": "<div class=\"property-card\"><span class=\"price\">$450,000</span><span class=\"address\">12 Oak St, Augusta, ME 04330</span></div>",
		"base_url": "https://www.example.com"
	}`

	w := postExtract(t, "/api/v1/extract/listings", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200: %s", w.Code, w.Body.String())
	}

	var result struct {
		Active []struct {
			Price   string `json:"price"`
			Address string `json:"address"`
		} `json:"active"`
		Metadata struct {
			TotalFound int `json:"total_found"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(result.Active) != 1 {
		t.Fatalf("expected 1 active listing, got %d", len(result.Active))
	}
	if result.Active[0].Price != "$450,000" {
		t.Errorf("price = %q", result.Active[0].Price)
	}
	if result.Metadata.TotalFound != 1 {
		t.Errorf("total_found = %d, expected 1", result.Metadata.TotalFound)
	}
}

func TestExtractReviewsEndpoint(t *testing.T) {
	body := `{
		"html": "<div class=\"review-card\"><cite class=\"review-author\">John Carter</cite><blockquote>“Jane helped us buy our first home and was responsive at every step.”</blockquote></div>"
	}`

	w := postExtract(t, "/api/v1/extract/reviews", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200: %s", w.Code, w.Body.String())
	}

	var result struct {
		Individual []struct {
			Author string `json:"author"`
		} `json:"individual"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(result.Individual) != 1 || result.Individual[0].Author != "John Carter" {
		t.Errorf("individual reviews = %+v", result.Individual)
	}
}

func TestExtractAgentEndpoint(t *testing.T) {
	body := `{
		"html": "<div class=\"agent-profile\"><h1>Jane Doe, Realtor</h1><p><a href=\"tel:207-555-0142\">207-555-0142</a></p></div>"
	}`

	w := postExtract(t, "/api/v1/extract/agent", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200: %s", w.Code, w.Body.String())
	}

	var result struct {
		Agent *struct {
			Name  string `json:"name"`
			Phone string `json:"phone"`
		} `json:"agent"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if result.Agent == nil || result.Agent.Name != "Jane Doe" {
		t.Errorf("agent = %+v", result.Agent)
	}
	if result.Agent != nil && result.Agent.Phone != "207-555-0142" {
		t.Errorf("phone = %q", result.Agent.Phone)
	}
}

func TestExtractRequiresHTML(t *testing.T) {
	w := postExtract(t, "/api/v1/extract/listings", `{"base_url": "https://www.example.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400", w.Code)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("error response is not valid JSON: %v", err)
	}
	if payload["error"] == nil {
		t.Error("error response missing error field")
	}
}

func TestExtractRejectsMalformedBody(t *testing.T) {
	w := postExtract(t, "/api/v1/extract/listings", `{"html": `)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected 400", w.Code)
	}
}

func TestExtractMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/extract/listings", nil)
	w := httptest.NewRecorder()
	sharedHandler(t).ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, expected 405", w.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := rateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	limited := 0
	for i := 0; i < 30; i++ {
		req := httptest.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited++
		}
	}

	if limited == 0 {
		t.Error("expected burst traffic to be rate limited")
	}
}
