package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuk1-kondo/line2notion-receipts/internal/llm"
)

// newServer fakes the generateContent endpoint, answering every prompt
// with the given text.
func newServer(t *testing.T, answer string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.Equal(t, "secret", r.URL.Query().Get("key"))

		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": answer}}}},
			},
		}

		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func newClient(srv *httptest.Server) *llm.Client {
	return llm.New(llm.Config{APIKey: "secret", BaseURL: srv.URL})
}

func TestClient_ExtractHeader(t *testing.T) {
	srv := newServer(t, "```json\n{\"store_name\":\"株式会社ライフ\",\"purchase_date\":\"2025-09-28\"}\n```")
	defer srv.Close()

	h, err := newClient(srv).ExtractHeader(context.Background(), "適当なOCRテキスト")
	require.NoError(t, err)

	assert.Equal(t, "ライフ", h.StoreName)
	assert.Equal(t, time.Date(2025, time.September, 28, 0, 0, 0, 0, time.UTC), h.PurchaseDate)
}

func TestClient_ExtractHeader_BadDate(t *testing.T) {
	srv := newServer(t, `{"store_name":"ライフ","purchase_date":"不明"}`)
	defer srv.Close()

	h, err := newClient(srv).ExtractHeader(context.Background(), "適当なOCRテキスト")
	require.NoError(t, err)

	assert.Equal(t, "ライフ", h.StoreName)
	assert.True(t, h.PurchaseDate.IsZero())
}

func TestClient_ExtractItemsCSV(t *testing.T) {
	srv := newServer(t, "りんご,198\nパン,120")
	defer srv.Close()

	csv, err := newClient(srv).ExtractItemsCSV(context.Background(), "適当なOCRテキスト")
	require.NoError(t, err)

	assert.Equal(t, "りんご,198\nパン,120", csv)
}

func TestClient_Classify(t *testing.T) {
	srv := newServer(t, `{"category":"食費","confidence":0.82,"reason":"コンビニの食品名"}`)
	defer srv.Close()

	amount := 128.0

	draft, err := newClient(srv).Classify(context.Background(), "セブン-イレブン", "おにぎり", &amount)
	require.NoError(t, err)

	assert.Equal(t, "食費", draft.Category)
	assert.InDelta(t, 0.82, draft.Confidence, 1e-9)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newClient(srv).ExtractItemsCSV(context.Background(), "テキスト")

	assert.ErrorContains(t, err, "status 429")
}
