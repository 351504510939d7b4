package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newOpenAIServer stubs the OpenAI REST surface behind the official SDK.
func newOpenAIServer(t *testing.T, handler http.HandlerFunc) *OpenAIAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewOpenAIAdapter("test-key", WithOpenAIBaseURL(server.URL+"/"))
}

func TestOpenAIGenerateText(t *testing.T) {
	adapter := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("path = %q, want chat/completions", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [
				{"index": 0, "message": {"role": "assistant", "content": "Hello from GPT"}, "finish_reason": "stop"}
			]
		}`))
	})

	text, err := adapter.GenerateText(context.Background(), "Say hello", TextOptions{MaxTokens: 100})
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if text != "Hello from GPT" {
		t.Errorf("text = %q", text)
	}
}

func TestOpenAIGenerateTextEmptyChoices(t *testing.T) {
	adapter := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "chatcmpl-1", "object": "chat.completion", "choices": []}`))
	})

	text, err := adapter.GenerateText(context.Background(), "hi", TextOptions{})
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if text != NoResponsePlaceholder {
		t.Errorf("text = %q, want %q", text, NoResponsePlaceholder)
	}
}

func TestOpenAIGenerateTextAPIError(t *testing.T) {
	adapter := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`))
	})

	_, err := adapter.GenerateText(context.Background(), "hi", TextOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "openai API error") {
		t.Errorf("error = %v, want wrapped vendor error", err)
	}
}

func TestOpenAIGenerateImage(t *testing.T) {
	adapter := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/images/generations") {
			t.Errorf("path = %q, want images/generations", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"created": 0, "data": [{"url": "https://images.example/cat.png"}]}`))
	})

	url, err := adapter.GenerateImage(context.Background(), "a cat", ImageOptions{Size: "512x512"})
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if url != "https://images.example/cat.png" {
		t.Errorf("url = %q", url)
	}
}

func TestOpenAIGenerateImageEmptyData(t *testing.T) {
	adapter := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"created": 0, "data": []}`))
	})

	url, err := adapter.GenerateImage(context.Background(), "a cat", ImageOptions{})
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if url != "Image generation failed" {
		t.Errorf("url = %q", url)
	}
}

func TestOpenAIUnsupportedCapabilities(t *testing.T) {
	adapter := NewOpenAIAdapter("test-key")
	ctx := context.Background()

	if _, err := adapter.GenerateVideo(ctx, "hi", VideoOptions{}); !errors.Is(err, ErrNotSupported) {
		t.Errorf("GenerateVideo err = %v, want ErrNotSupported", err)
	}
	if _, err := adapter.TextToSpeech(ctx, "hi", "", SpeechOptions{}); !errors.Is(err, ErrNotSupported) {
		t.Errorf("TextToSpeech err = %v, want ErrNotSupported", err)
	}
}

func TestOpenAIIsAvailable(t *testing.T) {
	healthy := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object": "list", "data": [{"id": "gpt-3.5-turbo", "object": "model", "created": 0, "owned_by": "openai"}]}`))
	})
	if !healthy.IsAvailable(context.Background()) {
		t.Error("IsAvailable = false against healthy server")
	}

	broken := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	if broken.IsAvailable(context.Background()) {
		t.Error("IsAvailable = true against 401 server")
	}
}

func TestMapImageSize(t *testing.T) {
	tests := []struct {
		size string
		want string
	}{
		{"1792x1024", "1792x1024"},
		{"1024x1792", "1024x1792"},
		{"512x512", "1024x1024"},
		{"", "1024x1024"},
	}

	for _, tt := range tests {
		if got := string(mapImageSize(tt.size)); got != tt.want {
			t.Errorf("mapImageSize(%q) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
