package embedding

import (
	"context"
	"fmt"
	"time"
)

// OpenAIConfig configures the OpenAI embedding provider.
type OpenAIConfig struct {
	BaseURL string        `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	APIKey  string        `yaml:"api_key" json:"api_key"`
	Model   string        `yaml:"model" json:"model"`
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// OpenAIProvider embeds queries via OpenAI's embeddings endpoint.
type OpenAIProvider struct {
	base baseClient
}

// NewOpenAIProvider creates an OpenAI embedding provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com"
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-ada-002"
	}
	return &OpenAIProvider{
		base: newBaseClient("openai-embedding", cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout),
	}
}

func (p *OpenAIProvider) Name() string { return p.base.Name() }

// EmbedQuery embeds a single query string.
func (p *OpenAIProvider) EmbedQuery(ctx context.Context, query string) ([]float64, error) {
	body := struct {
		Input []string `json:"input"`
		Model string   `json:"model"`
	}{
		Input: []string{query},
		Model: p.base.model,
	}

	var resp struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}

	if err := p.base.doRequest(ctx, "/v1/embeddings", body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("openai embedding response was empty")
	}
	return resp.Data[0].Embedding, nil
}
