package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fdg312/coach-hub/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		Env:                    "local",
		Port:                   8080,
		AuthMode:               "none",
		PlannedWorkoutsPerWeek: 4,
		RAGIngestMode:          config.IngestModeMock,
		RAGMaxDocumentChars:    4000,
		ReportsDir:             t.TempDir(),
		Blob:                   config.BlobConfig{Mode: config.BlobModeLocal},
		Strava: config.StravaConfig{
			EnvFile:             t.TempDir() + "/.env",
			APIBaseURL:          "http://127.0.0.1:0",
			TokenURL:            "http://127.0.0.1:0",
			ProbeTimeoutSeconds: 1,
		},
	}

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("server init: %v", err)
	}
	return s
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body)
	}
}

func TestListToolsCatalog(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/tools", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Tools []struct {
			Name        string `json:"name"`
			InputSchema struct {
				Type string `json:"type"`
			} `json:"input_schema"`
		} `json:"tools"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Tools) != 12 {
		t.Errorf("expected 12 tools in catalog, got %d", len(body.Tools))
	}
	for _, tool := range body.Tools {
		if tool.InputSchema.Type != "object" {
			t.Errorf("tool %s: expected object schema, got %q", tool.Name, tool.InputSchema.Type)
		}
	}
}

func callTool(t *testing.T, s *Server, name, body string) map[string]any {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/tools/"+name, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("tool %s: expected 200, got %d (%s)", name, rec.Code, rec.Body.String())
	}

	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode tool result: %v", err)
	}
	return result
}

func resultText(t *testing.T, result map[string]any) string {
	t.Helper()
	content, ok := result["content"].([]any)
	if !ok || len(content) == 0 {
		t.Fatalf("expected content blocks, got %v", result)
	}
	block := content[0].(map[string]any)
	return block["text"].(string)
}

func TestCallToolSetupProfile(t *testing.T) {
	s := newTestServer(t)

	result := callTool(t, s, "setup_user_profile", `{"arguments":{
		"age": 30, "gender": "male", "weight_lbs": 180, "height_inches": 70,
		"goal": "lose_weight", "activity_level": "moderately_active"
	}}`)

	if result["is_error"] == true {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}
	if text := resultText(t, result); !strings.Contains(text, "2263") {
		t.Errorf("expected calorie target in response, got: %s", text)
	}
}

func TestCallToolUnknownName(t *testing.T) {
	s := newTestServer(t)

	result := callTool(t, s, "bogus_tool", `{"arguments":{}}`)
	if result["is_error"] != true {
		t.Fatal("expected is_error for unknown tool")
	}
	if text := resultText(t, result); !strings.Contains(text, "Unknown tool") {
		t.Errorf("unexpected message: %s", text)
	}
}

func TestCallToolMissingRequiredArg(t *testing.T) {
	s := newTestServer(t)

	result := callTool(t, s, "get_activity_details", `{"arguments":{}}`)
	if result["is_error"] != true {
		t.Fatal("expected validation error envelope")
	}
	if text := resultText(t, result); !strings.Contains(text, "activity_id") {
		t.Errorf("expected missing argument named, got: %s", text)
	}
}

func TestCallToolMalformedJSON(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/tools/search_knowledge", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestCallToolSearchKnowledgeNoBody(t *testing.T) {
	s := newTestServer(t)

	// search_knowledge без тела — валидационная ошибка в конверте, не 4xx
	req := httptest.NewRequest(http.MethodPost, "/v1/tools/search_knowledge", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result["is_error"] != true {
		t.Error("expected validation error for missing query")
	}
}
