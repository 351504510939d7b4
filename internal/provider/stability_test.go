package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newStabilityServer(t *testing.T, handler http.HandlerFunc) *StabilityAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewStabilityAdapter("test-key",
		WithStabilityBaseURL(server.URL),
		WithStabilityHTTPClient(server.Client()),
	)
}

func TestStabilityGenerateImage(t *testing.T) {
	var gotReq stabilityRequest
	var gotAuth string

	adapter := newStabilityServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if !strings.HasSuffix(r.URL.Path, "/text-to-image") {
			t.Errorf("path = %q, want text-to-image", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"artifacts":[]}`))
	})

	image, err := adapter.GenerateImage(context.Background(), "a castle", ImageOptions{Size: "512x512"})
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if image != "Image generated successfully" {
		t.Errorf("image = %q", image)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if len(gotReq.TextPrompts) != 1 || gotReq.TextPrompts[0].Text != "a castle" {
		t.Errorf("prompts = %+v", gotReq.TextPrompts)
	}
	if gotReq.Width != 512 || gotReq.Height != 512 {
		t.Errorf("dimensions = %dx%d, want 512x512", gotReq.Width, gotReq.Height)
	}
}

func TestStabilityGenerateImageAPIError(t *testing.T) {
	adapter := newStabilityServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid api key"}`))
	})

	_, err := adapter.GenerateImage(context.Background(), "a castle", ImageOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("error = %v, want vendor message surfaced", err)
	}
}

func TestStabilityUnsupportedCapabilities(t *testing.T) {
	adapter := NewStabilityAdapter("test-key")
	ctx := context.Background()

	if _, err := adapter.GenerateText(ctx, "hi", TextOptions{}); !errors.Is(err, ErrNotSupported) {
		t.Errorf("GenerateText err = %v, want ErrNotSupported", err)
	}
	if _, err := adapter.GenerateVideo(ctx, "hi", VideoOptions{}); !errors.Is(err, ErrNotSupported) {
		t.Errorf("GenerateVideo err = %v, want ErrNotSupported", err)
	}
	if _, err := adapter.TextToSpeech(ctx, "hi", "", SpeechOptions{}); !errors.Is(err, ErrNotSupported) {
		t.Errorf("TextToSpeech err = %v, want ErrNotSupported", err)
	}
}

func TestStabilityIsAvailable(t *testing.T) {
	adapter := newStabilityServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/account" {
			t.Errorf("probe path = %q, want /user/account", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"id":"acct"}`))
	})

	if !adapter.IsAvailable(context.Background()) {
		t.Error("IsAvailable = false, want true")
	}
}

func TestParseImageSize(t *testing.T) {
	tests := []struct {
		size       string
		wantWidth  int
		wantHeight int
	}{
		{"512x512", 512, 512},
		{"1024x768", 1024, 768},
		{"", 768, 768},
		{"banana", 768, 768},
		{"0x100", 768, 768},
		{"-1x100", 768, 768},
	}

	for _, tt := range tests {
		w, h := parseImageSize(tt.size)
		if w != tt.wantWidth || h != tt.wantHeight {
			t.Errorf("parseImageSize(%q) = %dx%d, want %dx%d", tt.size, w, h, tt.wantWidth, tt.wantHeight)
		}
	}
}
