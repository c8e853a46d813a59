// Package vector provides similarity search over document embeddings,
// backed by Qdrant's REST API.
package vector

// SearchRequest carries everything one vector search needs: the query text
// (for logging), its embedding, the project scope, and the three document
// group sets that shape the permission filter.
type SearchRequest struct {
	QueryText      string
	ProjectID      string
	DocGroups      []string
	DisabledGroups []string
	PublicGroups   []string
	Embedding      []float64
	TopN           int
}

// ScoredChunk is one vector-indexed fragment returned by search, in the
// engine's relevance order. Metadata holds the payload fields minus the chunk
// text itself.
type ScoredChunk struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Score    float64        `json:"score"`
}
