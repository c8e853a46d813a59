package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Empty(t *testing.T) {
	tests := []struct {
		name   string
		result *Result
		want   bool
	}{
		{"nil result", nil, true},
		{"blank answer", &Result{Answer: "   "}, true},
		{"no results phrase", &Result{Answer: "No results found."}, true},
		{"dont know phrase", &Result{Answer: "I don't know the answer to that question."}, true},
		{"real answer", &Result{Answer: `[{"drug":"diazoxide"}]`}, false},
		{"short answer", &Result{Answer: "diazoxide"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Empty())
		})
	}
}

func TestRenderRows(t *testing.T) {
	assert.Empty(t, renderRows(nil))
	assert.Empty(t, renderRows([]map[string]any{}))

	out := renderRows([]map[string]any{{"name": "diazoxide"}})
	assert.JSONEq(t, `[{"name":"diazoxide"}]`, out)
}
