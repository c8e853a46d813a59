package embedding

import (
	"context"
	"fmt"
	"time"
)

// OllamaConfig configures the Ollama embedding provider. Specialized corpora
// are embedded with nomic-embed-text served from a local Ollama instance.
type OllamaConfig struct {
	BaseURL string        `yaml:"base_url" json:"base_url"`
	Model   string        `yaml:"model" json:"model"`
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// OllamaProvider embeds queries via Ollama's /api/embeddings endpoint.
type OllamaProvider struct {
	base baseClient
}

// NewOllamaProvider creates an Ollama embedding provider.
func NewOllamaProvider(cfg OllamaConfig) *OllamaProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "nomic-embed-text:v1.5"
	}
	return &OllamaProvider{
		base: newBaseClient("ollama-embedding", cfg.BaseURL, "", cfg.Model, cfg.Timeout),
	}
}

func (p *OllamaProvider) Name() string { return p.base.Name() }

// EmbedQuery embeds a single query string.
func (p *OllamaProvider) EmbedQuery(ctx context.Context, query string) ([]float64, error) {
	body := struct {
		Model  string `json:"model"`
		Prompt string `json:"prompt"`
	}{
		Model:  p.base.model,
		Prompt: query,
	}

	var resp struct {
		Embedding []float64 `json:"embedding"`
	}

	if err := p.base.doRequest(ctx, "/api/embeddings", body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embedding) == 0 {
		return nil, fmt.Errorf("ollama embedding response was empty")
	}
	return resp.Embedding, nil
}
