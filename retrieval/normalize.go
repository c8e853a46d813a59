package retrieval

import (
	"github.com/BaSui01/ragflow/vector"
)

// contextFromChunk maps a scored vector hit onto the shared context shape.
// Chunks with empty text are dropped upstream; metadata keys follow the
// payload schema written at ingest time.
func contextFromChunk(chunk vector.ScoredChunk, projectID string) ContextItem {
	item := ContextItem{
		Text:       chunk.Text,
		SourceKind: SourceVector,
		ProjectID:  projectID,
	}

	md := chunk.Metadata
	if v, ok := md["readable_filename"].(string); ok {
		item.ReadableName = v
	}
	if v, ok := md["course_name"].(string); ok && v != "" {
		item.ProjectID = v
	}
	if v, ok := md["s3_path"].(string); ok {
		item.S3Path = v
	}
	if v, ok := md["pagenumber"]; ok {
		item.PageNumber = v
	}
	if v, ok := md["url"].(string); ok {
		item.URL = v
	}
	if v, ok := md["base_url"].(string); ok {
		item.BaseURL = v
	}
	item.DocGroups = stringSlice(md["doc_groups"])

	return item
}

// contextFromGraph wraps a summarized graph run as a single context item.
func contextFromGraph(run *GraphRun, summary, engineID string) ContextItem {
	item := ContextItem{
		Text:         summary,
		SourceKind:   SourceGraph,
		ReadableName: engineID,
	}
	if run.Result != nil {
		item.GraphQuery = run.Result.Cypher
		item.IntermediateSteps = run.Result.IntermediateSteps
	}
	if len(run.QueriesTried) > 0 && item.GraphQuery == "" {
		item.GraphQuery = run.QueriesTried[len(run.QueriesTried)-1]
	}
	return item
}

func stringSlice(v any) []string {
	switch vs := v.(type) {
	case []string:
		return vs
	case []any:
		out := make([]string, 0, len(vs))
		for _, e := range vs {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}
