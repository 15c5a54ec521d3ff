package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepedge/concierge/pkg/adapters/openai"
	"github.com/stepedge/concierge/pkg/domain"
)

// fakeAPI serves minimal OpenAI-compatible responses.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "gpt-4o-mini", req.Model)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "Here are some great picks!"}}]
		}`))
	})
	mux.HandleFunc("/embeddings", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		type item struct {
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}
		items := make([]item, len(req.Input))
		for i := range req.Input {
			items[i] = item{Embedding: []float32{1, 0, 0}, Index: i}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": items})
	})
	return httptest.NewServer(mux)
}

func newProvider(baseURL string) *openai.Provider {
	return openai.NewProvider(&openai.Config{
		BaseURL: baseURL,
		APIKey:  "test-key",
	})
}

func TestProvider_Generate(t *testing.T) {
	srv := fakeAPI(t)
	defer srv.Close()

	p := newProvider(srv.URL)
	text, err := p.Generate(context.Background(), "recommend a laptop", 500, []string{"\n\n"}, 0.7)
	require.NoError(t, err)
	assert.Equal(t, "Here are some great picks!", text)
}

func TestProvider_Embed(t *testing.T) {
	srv := fakeAPI(t)
	defer srv.Close()

	p := newProvider(srv.URL)

	v, err := p.Embed(context.Background(), "Dell XPS 13")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 0}, v)

	vs, err := p.EmbedBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, vs, 2)
}

func TestProvider_ErrorsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := newProvider(srv.URL)

	_, err := p.Generate(context.Background(), "x", 10, nil, 0)
	assert.ErrorIs(t, err, domain.ErrCollaborator)

	_, err = p.Embed(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrCollaborator)
}
