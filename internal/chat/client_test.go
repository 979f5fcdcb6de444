package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(url string) *Client {
	return &Client{
		url:    url,
		apiKey: "test-key",
		model:  "test-model",
		http:   &http.Client{Timeout: 5 * time.Second},
	}
}

func TestAsk_BuildsConversationAndParsesReply(t *testing.T) {
	var got completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "Try time blocking."}},
			},
		})
	}))
	defer srv.Close()

	history := []Message{
		{Role: "user", Content: "How do I focus?"},
		{Role: "assistant", Content: "Remove distractions."},
	}
	reply, err := testClient(srv.URL).Ask(context.Background(), "What about mornings?", history)
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if reply != "Try time blocking." {
		t.Errorf("unexpected reply %q", reply)
	}

	if len(got.Messages) != 4 {
		t.Fatalf("expected 4 messages (system + 2 history + user), got %d", len(got.Messages))
	}
	if got.Messages[0].Role != "system" {
		t.Errorf("first message should be system, got %s", got.Messages[0].Role)
	}
	if last := got.Messages[3]; last.Role != "user" || last.Content != "What about mornings?" {
		t.Errorf("unexpected final message %+v", last)
	}
	if got.Model != "test-model" {
		t.Errorf("unexpected model %q", got.Model)
	}
}

func TestAsk_UpstreamErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).Ask(context.Background(), "hi", nil); err == nil {
		t.Error("expected error for non-200 upstream status")
	}
}

func TestAsk_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).Ask(context.Background(), "hi", nil); err != ErrEmptyResponse {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestAsk_MissingKey(t *testing.T) {
	c := testClient("http://unused")
	c.apiKey = ""
	if _, err := c.Ask(context.Background(), "hi", nil); err != ErrNotConfigured {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}
