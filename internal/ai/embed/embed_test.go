package embed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/KirillKCrypto/Trading-Journal-APP/internal/errors"
)

func TestNewOpenAIEncoderValidation(t *testing.T) {
	if _, err := NewOpenAIEncoder("", "", "m", 384); !errors.Is(err, apperrors.ErrMissingAPIKey) {
		t.Errorf("empty key: err = %v, want ErrMissingAPIKey", err)
	}
	if _, err := NewOpenAIEncoder("key", "", "m", 0); err == nil {
		t.Error("zero dimension should be rejected")
	}
	if _, err := NewOpenAIEncoder("key", "", "m", -1); err == nil {
		t.Error("negative dimension should be rejected")
	}
}

func TestEncodeEmptyText(t *testing.T) {
	enc, err := NewOpenAIEncoder("key", "", "m", 4)
	if err != nil {
		t.Fatalf("NewOpenAIEncoder: %v", err)
	}
	if _, err := enc.Encode(context.Background(), ""); err == nil {
		t.Error("empty text should be rejected before any request")
	}
}

func embeddingsServer(t *testing.T, vector []float32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"object": "list",
			"data": []map[string]any{
				{"object": "embedding", "index": 0, "embedding": vector},
			},
			"model": "m",
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Error(err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEncode(t *testing.T) {
	srv := embeddingsServer(t, []float32{0.1, 0.2, 0.3, 0.4})

	enc, err := NewOpenAIEncoder("key", srv.URL, "m", 4)
	if err != nil {
		t.Fatalf("NewOpenAIEncoder: %v", err)
	}

	vec, err := enc.Encode(context.Background(), "СДЕЛКА: Дата=2025-07-10")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(vec) != enc.Dimension() {
		t.Errorf("vector length = %d, want %d", len(vec), enc.Dimension())
	}
}

func TestEncodeDimensionMismatch(t *testing.T) {
	srv := embeddingsServer(t, []float32{0.1, 0.2})

	enc, err := NewOpenAIEncoder("key", srv.URL, "m", 4)
	if err != nil {
		t.Fatalf("NewOpenAIEncoder: %v", err)
	}
	if _, err := enc.Encode(context.Background(), "text"); err == nil {
		t.Error("mismatched vector length should be rejected")
	}
}
