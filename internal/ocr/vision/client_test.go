package vision_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuk1-kondo/line2notion-receipts/internal/ocr/vision"
)

func newClient(srv *httptest.Server) *vision.Client {
	return vision.New(vision.Config{APIKey: "secret", BaseURL: srv.URL}, nil)
}

func TestClient_ExtractText(t *testing.T) {
	image := []byte{0xff, 0xd8, 0xff}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images:annotate", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))

		var body struct {
			Requests []struct {
				Image struct {
					Content string `json:"content"`
				} `json:"image"`
				Features []struct {
					Type string `json:"type"`
				} `json:"features"`
			} `json:"requests"`
		}

		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Requests, 1)
		assert.Equal(t, base64.StdEncoding.EncodeToString(image), body.Requests[0].Image.Content)
		require.Len(t, body.Requests[0].Features, 1)
		assert.Equal(t, "DOCUMENT_TEXT_DETECTION", body.Requests[0].Features[0].Type)

		_, _ = w.Write([]byte(`{"responses":[{"fullTextAnnotation":{"text":"スーパーマルエツ\n2025年9月28日\n"}}]}`))
	}))
	defer srv.Close()

	text, err := newClient(srv).ExtractText(context.Background(), image)
	require.NoError(t, err)

	assert.Equal(t, "スーパーマルエツ\n2025年9月28日", text)
}

func TestClient_ExtractText_NoText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"responses":[{}]}`))
	}))
	defer srv.Close()

	text, err := newClient(srv).ExtractText(context.Background(), []byte{0x00})
	require.NoError(t, err)

	assert.Empty(t, text)
}

func TestClient_ExtractText_AnnotationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"responses":[{"error":{"message":"image too large"}}]}`))
	}))
	defer srv.Close()

	_, err := newClient(srv).ExtractText(context.Background(), []byte{0x00})

	assert.ErrorContains(t, err, "image too large")
}

func TestClient_DetectLogo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Requests []struct {
				Features []struct {
					Type string `json:"type"`
				} `json:"features"`
			} `json:"requests"`
		}

		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "LOGO_DETECTION", body.Requests[0].Features[0].Type)

		_, _ = w.Write([]byte(`{"responses":[{"logoAnnotations":[
			{"description":"FamilyMart","score":0.71},
			{"description":"株式会社LAWSON","score":0.93}
		]}]}`))
	}))
	defer srv.Close()

	// The highest score wins and the brand name is normalized.
	got := newClient(srv).DetectLogo(context.Background(), []byte{0x00})

	assert.Equal(t, "LAWSON", got)
}

func TestClient_DetectLogo_NeverFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "backend error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	assert.Empty(t, newClient(srv).DetectLogo(context.Background(), []byte{0x00}))
}
