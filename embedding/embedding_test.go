package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIProvider_EmbedQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"phases of mitosis"}, req.Input)
		assert.Equal(t, "text-embedding-ada-002", req.Model)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [{"embedding": [0.1, 0.2, 0.3]}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(OpenAIConfig{BaseURL: srv.URL, APIKey: "sk-test"})

	vec, err := p.EmbedQuery(context.Background(), "phases of mitosis")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, vec)
}

func TestOpenAIProvider_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(OpenAIConfig{BaseURL: srv.URL})
	_, err := p.EmbedQuery(context.Background(), "q")
	assert.Error(t, err)
}

func TestOllamaProvider_EmbedQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)

		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text:v1.5", req.Model)
		assert.Equal(t, "gene expression", req.Prompt)

		w.Write([]byte(`{"embedding": [1.5, -0.5]}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(OllamaConfig{BaseURL: srv.URL})

	vec, err := p.EmbedQuery(context.Background(), "gene expression")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -0.5}, vec)
}

func TestProvider_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewOllamaProvider(OllamaConfig{BaseURL: srv.URL})
	_, err := p.EmbedQuery(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=404")
}

func TestRegistry_ForProject(t *testing.T) {
	openai := NewOpenAIProvider(OpenAIConfig{})
	ollama := NewOllamaProvider(OllamaConfig{})

	r := NewRegistry(openai, map[string]Provider{
		"pubmed":  ollama,
		"patents": ollama,
	}, nil)

	assert.Equal(t, ollama, r.ForProject("pubmed"))
	assert.Equal(t, ollama, r.ForProject("patents"))
	assert.Equal(t, openai, r.ForProject("cs101"))
}

func TestRegistry_NilProjectMap(t *testing.T) {
	openai := NewOpenAIProvider(OpenAIConfig{})
	r := NewRegistry(openai, nil, nil)
	assert.Equal(t, openai, r.ForProject("anything"))
}
