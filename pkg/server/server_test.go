package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mercator-hq/llmsim/pkg/config"
	"mercator-hq/llmsim/pkg/sim"
	"mercator-hq/llmsim/pkg/stats"
)

func testServer(t *testing.T, mutate func(*config.Config)) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	instant := "instant"
	cfg.Latency.Profile = &instant
	cfg.Response.Generator = "fixed:Hello there"
	if mutate != nil {
		mutate(cfg)
	}

	manager := config.NewManager(cfg, "")
	simulator := sim.New(manager, stats.New(), nil)
	srv := httptest.NewServer(NewServer(manager, simulator, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t, nil)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["status"] != "ok" || body["service"] != "llmsim" {
		t.Errorf("body = %v", body)
	}
}

func TestChatCompletionsEndpoint(t *testing.T) {
	srv := testServer(t, nil)

	resp := postJSON(t, srv.URL+"/v1/chat/completions", `{
		"model": "gpt-4o",
		"messages": [{"role": "user", "content": "Hi"}]
	}`)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Request-ID"); got == "" {
		t.Error("missing X-Request-ID header")
	}

	body := decodeBody(t, resp)
	if body["object"] != "chat.completion" {
		t.Errorf("object = %v", body["object"])
	}
	choices := body["choices"].([]interface{})
	msg := choices[0].(map[string]interface{})["message"].(map[string]interface{})
	if msg["content"] != "Hello there" {
		t.Errorf("content = %v", msg["content"])
	}
}

func TestChatCompletionsAlias(t *testing.T) {
	srv := testServer(t, nil)

	resp := postJSON(t, srv.URL+"/openai/v1/chat/completions", `{
		"model": "gpt-4o",
		"messages": [{"role": "user", "content": "Hi"}]
	}`)
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestChatCompletionsStreaming(t *testing.T) {
	srv := testServer(t, nil)

	resp := postJSON(t, srv.URL+"/v1/chat/completions", `{
		"model": "gpt-4o",
		"messages": [{"role": "user", "content": "Hi"}],
		"stream": true
	}`)
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content-type = %q", ct)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	body := string(raw)
	if !strings.HasSuffix(body, "data: [DONE]\n\n") {
		t.Errorf("stream does not end with [DONE]:\n%s", body)
	}
	if !strings.Contains(body, `"chat.completion.chunk"`) {
		t.Errorf("no chunks in stream:\n%s", body)
	}
}

func TestChatCompletionsInvalidJSON(t *testing.T) {
	srv := testServer(t, nil)

	resp := postJSON(t, srv.URL+"/v1/chat/completions", "{not json")
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	errObj := body["error"].(map[string]interface{})
	if errObj["type"] != "invalid_request_error" || errObj["code"] != "invalid_json" {
		t.Errorf("error = %v", errObj)
	}
}

func TestChatCompletionsMissingModel(t *testing.T) {
	srv := testServer(t, nil)

	resp := postJSON(t, srv.URL+"/v1/chat/completions", `{"messages": [{"role": "user", "content": "Hi"}]}`)
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	errObj := body["error"].(map[string]interface{})
	if errObj["param"] != "model" {
		t.Errorf("error = %v", errObj)
	}
}

func TestResponsesMissingModel(t *testing.T) {
	srv := testServer(t, nil)

	resp := postJSON(t, srv.URL+"/v1/responses", `{"input": "Hi"}`)
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	errObj := body["error"].(map[string]interface{})
	if errObj["type"] != "invalid_request_error" || errObj["param"] != "model" {
		t.Errorf("error = %v", errObj)
	}
}

func TestResponsesEndpoint(t *testing.T) {
	srv := testServer(t, nil)

	for _, path := range []string{"/v1/responses", "/openai/v1/responses", "/openresponses/v1/responses"} {
		resp := postJSON(t, srv.URL+path, `{"model": "gpt-4o", "input": "Hi"}`)
		if resp.StatusCode != 200 {
			t.Errorf("%s status = %d", path, resp.StatusCode)
			resp.Body.Close()
			continue
		}
		body := decodeBody(t, resp)
		if body["object"] != "response" || body["status"] != "completed" {
			t.Errorf("%s body = %v", path, body)
		}
	}
}

func TestResponsesStreamingEndpoint(t *testing.T) {
	srv := testServer(t, nil)

	resp := postJSON(t, srv.URL+"/v1/responses", `{"model": "gpt-4o", "input": "Hi", "stream": true}`)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	body := string(raw)
	if !strings.Contains(body, "event: response.created\n") {
		t.Errorf("missing created event:\n%s", body)
	}
	if !strings.Contains(body, "event: response.completed\n") {
		t.Errorf("missing completed event:\n%s", body)
	}
	if strings.Contains(body, "[DONE]") {
		t.Error("responses streams must not carry a [DONE] frame")
	}
}

func TestModelsEndpoints(t *testing.T) {
	srv := testServer(t, nil)

	resp, err := http.Get(srv.URL + "/v1/models")
	if err != nil {
		t.Fatalf("GET /v1/models: %v", err)
	}
	body := decodeBody(t, resp)
	if body["object"] != "list" {
		t.Errorf("object = %v", body["object"])
	}
	if len(body["data"].([]interface{})) == 0 {
		t.Error("empty model catalog")
	}

	resp, err = http.Get(srv.URL + "/v1/models/gpt-4o")
	if err != nil {
		t.Fatalf("GET model: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d", resp.StatusCode)
	}
	model := decodeBody(t, resp)
	if model["id"] != "gpt-4o" || model["owned_by"] != "openai" {
		t.Errorf("model = %v", model)
	}

	resp, err = http.Get(srv.URL + "/v1/models/no-such-model")
	if err != nil {
		t.Fatalf("GET missing model: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	errBody := decodeBody(t, resp)
	if errBody["error"].(map[string]interface{})["type"] != "not_found_error" {
		t.Errorf("error = %v", errBody)
	}
}

func TestModelsRestrictedCatalog(t *testing.T) {
	srv := testServer(t, func(cfg *config.Config) {
		cfg.Models.Available = []string{"gpt-4o", "my-private-model"}
	})

	resp, err := http.Get(srv.URL + "/v1/models")
	if err != nil {
		t.Fatalf("GET /v1/models: %v", err)
	}
	body := decodeBody(t, resp)
	data := body["data"].([]interface{})
	if len(data) != 2 {
		t.Fatalf("models = %d, want 2", len(data))
	}

	// A catalog model outside the configured list is hidden.
	resp, err = http.Get(srv.URL + "/v1/models/gpt-5")
	if err != nil {
		t.Fatalf("GET hidden model: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != 404 {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestStatsEndpoint(t *testing.T) {
	srv := testServer(t, nil)

	postJSON(t, srv.URL+"/v1/chat/completions", `{
		"model": "gpt-4o",
		"messages": [{"role": "user", "content": "Hi"}]
	}`).Body.Close()

	resp, err := http.Get(srv.URL + "/llmsim/stats")
	if err != nil {
		t.Fatalf("GET stats: %v", err)
	}
	body := decodeBody(t, resp)
	if body["total_requests"].(float64) < 1 {
		t.Errorf("stats = %v", body)
	}
	if _, ok := body["model_requests"].(map[string]interface{})["gpt-4o"]; !ok {
		t.Errorf("model_requests = %v", body["model_requests"])
	}
}

func TestInjectedFaultEnvelope(t *testing.T) {
	srv := testServer(t, func(cfg *config.Config) {
		cfg.Errors.RateLimitRate = 1.0
	})

	resp := postJSON(t, srv.URL+"/v1/chat/completions", `{
		"model": "gpt-4o",
		"messages": [{"role": "user", "content": "Hi"}]
	}`)
	if resp.StatusCode != 429 {
		t.Fatalf("status = %d, want 429", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}
	body := decodeBody(t, resp)
	errObj := body["error"].(map[string]interface{})
	if errObj["type"] != "rate_limit_error" || errObj["code"] != "rate_limit_exceeded" {
		t.Errorf("error = %v", errObj)
	}
}
