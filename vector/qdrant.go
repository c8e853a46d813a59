package vector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// QdrantConfig configures the Qdrant-backed searcher.
//
// Collections holds per-project overrides: some corpora (pubmed, patents)
// live in dedicated collections with their own embedding space.
type QdrantConfig struct {
	Host        string            `yaml:"host" json:"host"`
	Port        int               `yaml:"port" json:"port"`
	BaseURL     string            `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	APIKey      string            `yaml:"api_key,omitempty" json:"api_key,omitempty"`
	Collection  string            `yaml:"collection" json:"collection"`
	Collections map[string]string `yaml:"collections,omitempty" json:"collections,omitempty"`
	Timeout     time.Duration     `yaml:"timeout,omitempty" json:"timeout,omitempty"`

	PayloadContentField string `yaml:"payload_content_field" json:"payload_content_field"` // default "page_content"
	ProjectField        string `yaml:"project_field" json:"project_field"`                 // default "course_name"
	DocGroupsField      string `yaml:"doc_groups_field" json:"doc_groups_field"`           // default "doc_groups"
}

// QdrantSearcher implements permission-filtered similarity search over
// Qdrant's REST API.
type QdrantSearcher struct {
	cfg     QdrantConfig
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewQdrantSearcher creates a Qdrant-backed searcher.
func NewQdrantSearcher(cfg QdrantConfig, logger *zap.Logger) *QdrantSearcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 6333
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.PayloadContentField == "" {
		cfg.PayloadContentField = "page_content"
	}
	if cfg.ProjectField == "" {
		cfg.ProjectField = "course_name"
	}
	if cfg.DocGroupsField == "" {
		cfg.DocGroupsField = "doc_groups"
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port)
	}

	return &QdrantSearcher{
		cfg:     cfg,
		baseURL: baseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger.With(zap.String("component", "qdrant_searcher")),
	}
}

func (s *QdrantSearcher) collectionFor(projectID string) string {
	if c, ok := s.cfg.Collections[projectID]; ok {
		return c
	}
	return s.cfg.Collection
}

type qdrantMatch struct {
	Key   string `json:"key"`
	Match any    `json:"match"`
}

type qdrantFilter struct {
	Must    []any `json:"must,omitempty"`
	Should  []any `json:"should,omitempty"`
	MustNot []any `json:"must_not,omitempty"`
}

// buildFilter translates the document-group permission model into a Qdrant
// payload filter:
//
//   - the project scope is always required;
//   - disabled groups are excluded unconditionally;
//   - when the caller requested specific groups, a chunk must belong to one
//     of them or to a public group.
func (s *QdrantSearcher) buildFilter(req SearchRequest) qdrantFilter {
	f := qdrantFilter{
		Must: []any{
			qdrantMatch{Key: s.cfg.ProjectField, Match: map[string]any{"value": req.ProjectID}},
		},
	}

	if len(req.DisabledGroups) > 0 {
		f.MustNot = append(f.MustNot, qdrantMatch{
			Key:   s.cfg.DocGroupsField,
			Match: map[string]any{"any": req.DisabledGroups},
		})
	}

	if len(req.DocGroups) > 0 {
		allowed := append([]string{}, req.DocGroups...)
		allowed = append(allowed, req.PublicGroups...)
		f.Must = append(f.Must, qdrantMatch{
			Key:   s.cfg.DocGroupsField,
			Match: map[string]any{"any": allowed},
		})
	}

	return f
}

// Search runs a filtered top-N similarity search and returns chunks in the
// engine's relevance order. An empty result set is valid, not an error.
func (s *QdrantSearcher) Search(ctx context.Context, req SearchRequest) ([]ScoredChunk, error) {
	collection := s.collectionFor(req.ProjectID)
	if strings.TrimSpace(collection) == "" {
		return nil, fmt.Errorf("qdrant collection is required")
	}
	if len(req.Embedding) == 0 {
		return nil, fmt.Errorf("query embedding is required")
	}
	if req.TopN <= 0 {
		return []ScoredChunk{}, nil
	}

	body := struct {
		Vector      []float64    `json:"vector"`
		Limit       int          `json:"limit"`
		Filter      qdrantFilter `json:"filter"`
		WithPayload bool         `json:"with_payload"`
		WithVector  bool         `json:"with_vector"`
	}{
		Vector:      req.Embedding,
		Limit:       req.TopN,
		Filter:      s.buildFilter(req),
		WithPayload: true,
		WithVector:  false,
	}

	var resp struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}

	path := fmt.Sprintf("/collections/%s/points/search", url.PathEscape(collection))
	if err := s.doJSON(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}

	out := make([]ScoredChunk, 0, len(resp.Result))
	for _, r := range resp.Result {
		chunk, ok := s.chunkFromPayload(r.Payload, r.Score)
		if !ok {
			s.logger.Warn("dropping search hit without content",
				zap.Any("point_id", r.ID),
				zap.String("project", req.ProjectID))
			continue
		}
		out = append(out, chunk)
	}

	s.logger.Debug("vector search completed",
		zap.String("project", req.ProjectID),
		zap.Int("hits", len(out)))

	return out, nil
}

// chunkFromPayload lifts the content field out of the payload and keeps the
// rest as metadata. Old points carry "pagenumber_or_timestamp" instead of
// "pagenumber"; normalize to the new key.
func (s *QdrantSearcher) chunkFromPayload(payload map[string]any, score float64) (ScoredChunk, bool) {
	if payload == nil {
		return ScoredChunk{}, false
	}

	content, _ := payload[s.cfg.PayloadContentField].(string)
	if content == "" {
		return ScoredChunk{}, false
	}

	metadata := make(map[string]any, len(payload))
	for k, v := range payload {
		if k == s.cfg.PayloadContentField {
			continue
		}
		metadata[k] = v
	}
	if _, ok := metadata["pagenumber"]; !ok {
		if v, ok := metadata["pagenumber_or_timestamp"]; ok {
			metadata["pagenumber"] = v
		}
	}

	return ScoredChunk{Text: content, Metadata: metadata, Score: score}, true
}

func (s *QdrantSearcher) doJSON(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(s.cfg.APIKey) != "" {
		// Qdrant convention.
		req.Header.Set("api-key", s.cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("qdrant request failed: method=%s path=%s status=%d body=%s", method, path, resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
