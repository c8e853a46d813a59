package graph

import (
	"encoding/json"
	"strings"
)

// Result is the structured outcome of one executed graph query.
//
// Answer holds a textual rendering of the returned rows and is the field the
// retry loop's success predicate inspects. Cypher is the statement that was
// actually executed. IntermediateSteps retains the raw rows for observability.
type Result struct {
	Answer            string           `json:"answer"`
	Cypher            string           `json:"cypher"`
	IntermediateSteps []map[string]any `json:"intermediate_steps,omitempty"`
}

// Empty reports whether the result carries no usable answer. A response that
// executed without error but says "no results found" or "i don't know the
// answer" counts as empty: a non-exceptional miss is still a miss.
func (r *Result) Empty() bool {
	if r == nil {
		return true
	}
	answer := strings.ToLower(strings.TrimSpace(r.Answer))
	if answer == "" {
		return true
	}
	if strings.Contains(answer, "no results found") {
		return true
	}
	if strings.Contains(answer, "i don't know the answer") {
		return true
	}
	return false
}

// renderRows serializes result rows into the Answer text. Rows are rendered
// as a JSON array of objects so downstream summarization sees field names.
func renderRows(rows []map[string]any) string {
	if len(rows) == 0 {
		return ""
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return ""
	}
	return string(data)
}
