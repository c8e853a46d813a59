// Package retrieval orchestrates multi-source context retrieval: a vector
// search over the project's document collection fanned out with any
// knowledge-graph paths whose keyword routers accept the query, merged
// vector-first into a single context list.
package retrieval

// SourceKind tags where a context item came from.
type SourceKind string

const (
	// SourceVector marks items produced by vector search over documents.
	SourceVector SourceKind = "vector_document"
	// SourceGraph marks items produced by a knowledge-graph path.
	SourceGraph SourceKind = "graph_result"
)

// Query is one retrieval request.
type Query struct {
	Text      string   `json:"text"`
	ProjectID string   `json:"project_id"`
	DocGroups []string `json:"doc_groups,omitempty"`
	TopN      int      `json:"top_n,omitempty"`
}

// ContextItem is one retrieved context, vector or graph sourced. Vector
// items carry document metadata; graph items carry the winning query and
// the steps that produced the summary.
type ContextItem struct {
	Text         string     `json:"text"`
	SourceKind   SourceKind `json:"source_kind"`
	ReadableName string     `json:"readable_filename,omitempty"`
	ProjectID    string     `json:"course_name,omitempty"`
	S3Path       string     `json:"s3_path,omitempty"`
	PageNumber   any        `json:"pagenumber,omitempty"`
	URL          string     `json:"url,omitempty"`
	BaseURL      string     `json:"base_url,omitempty"`
	DocGroups    []string   `json:"doc_groups,omitempty"`

	GraphQuery        string           `json:"graph_query,omitempty"`
	IntermediateSteps []map[string]any `json:"intermediate_steps,omitempty"`
}
