package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newAnthropicServer stubs the Anthropic messages API behind the official SDK.
func newAnthropicServer(t *testing.T, handler http.HandlerFunc) *AnthropicAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewAnthropicAdapter("test-key", WithAnthropicBaseURL(server.URL))
}

func anthropicMessageJSON(text string) string {
	return `{
		"id": "msg_1",
		"type": "message",
		"role": "assistant",
		"model": "claude-3-haiku-20240307",
		"content": [{"type": "text", "text": "` + text + `"}],
		"stop_reason": "end_turn",
		"usage": {"input_tokens": 1, "output_tokens": 1}
	}`
}

func TestAnthropicGenerateText(t *testing.T) {
	adapter := newAnthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/messages") {
			t.Errorf("path = %q, want messages", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(anthropicMessageJSON("Hello from Claude")))
	})

	text, err := adapter.GenerateText(context.Background(), "Say hello", TextOptions{MaxTokens: 100})
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if text != "Hello from Claude" {
		t.Errorf("text = %q", text)
	}
}

func TestAnthropicGenerateTextEmptyContent(t *testing.T) {
	adapter := newAnthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-haiku-20240307",
			"content": [],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 1, "output_tokens": 0}
		}`))
	})

	text, err := adapter.GenerateText(context.Background(), "hi", TextOptions{})
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if text != NoResponsePlaceholder {
		t.Errorf("text = %q, want %q", text, NoResponsePlaceholder)
	}
}

func TestAnthropicGenerateTextAPIError(t *testing.T) {
	adapter := newAnthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"type": "error", "error": {"type": "authentication_error", "message": "invalid x-api-key"}}`))
	})

	_, err := adapter.GenerateText(context.Background(), "hi", TextOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "anthropic API error") {
		t.Errorf("error = %v, want wrapped vendor error", err)
	}
}

func TestAnthropicUnsupportedCapabilities(t *testing.T) {
	adapter := NewAnthropicAdapter("test-key")
	ctx := context.Background()

	if _, err := adapter.GenerateImage(ctx, "hi", ImageOptions{}); !errors.Is(err, ErrNotSupported) {
		t.Errorf("GenerateImage err = %v, want ErrNotSupported", err)
	}
	if _, err := adapter.GenerateVideo(ctx, "hi", VideoOptions{}); !errors.Is(err, ErrNotSupported) {
		t.Errorf("GenerateVideo err = %v, want ErrNotSupported", err)
	}
	if _, err := adapter.TextToSpeech(ctx, "hi", "", SpeechOptions{}); !errors.Is(err, ErrNotSupported) {
		t.Errorf("TextToSpeech err = %v, want ErrNotSupported", err)
	}
}

func TestAnthropicIsAvailable(t *testing.T) {
	healthy := newAnthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(anthropicMessageJSON("ok")))
	})
	if !healthy.IsAvailable(context.Background()) {
		t.Error("IsAvailable = false against healthy server")
	}

	broken := newAnthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	if broken.IsAvailable(context.Background()) {
		t.Error("IsAvailable = true against 401 server")
	}
}
