package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestKeywordRouter_ShouldRoute(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		query    string
		want     bool
	}{
		{
			name:     "biomedical drug question",
			keywords: BiomedicalKeywords(),
			query:    "What drugs are used to treat hyperinsulinism?",
			want:     true,
		},
		{
			name:     "case insensitive match",
			keywords: BiomedicalKeywords(),
			query:    "Which GENE causes cystic fibrosis?",
			want:     true,
		},
		{
			name:     "multi word keyword",
			keywords: BiomedicalKeywords(),
			query:    "List the side effects of metformin",
			want:     true,
		},
		{
			name:     "no keyword present",
			keywords: BiomedicalKeywords(),
			query:    "Summarize chapter three of the lecture notes",
			want:     false,
		},
		{
			name:     "clinical patient question",
			keywords: ClinicalKeywords(),
			query:    "What was the patient diagnosed with?",
			want:     true,
		},
		{
			name:     "empty query",
			keywords: ClinicalKeywords(),
			query:    "",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewKeywordRouter(tt.keywords)
			assert.Equal(t, tt.want, r.ShouldRoute(tt.query))
		})
	}
}

func TestKeywordRouter_IgnoresBlankKeywords(t *testing.T) {
	r := NewKeywordRouter([]string{"", "  ", "drug"})
	assert.True(t, r.ShouldRoute("drug interactions"))
	assert.False(t, r.ShouldRoute("anything else"))
}

func TestKeywordRouter_Deterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		keywords := rapid.SliceOfN(rapid.StringMatching(`[a-z ]{1,12}`), 0, 8).Draw(t, "keywords")
		query := rapid.String().Draw(t, "query")

		r := NewKeywordRouter(keywords)
		first := r.ShouldRoute(query)
		for i := 0; i < 3; i++ {
			if r.ShouldRoute(query) != first {
				t.Fatalf("routing decision changed between calls")
			}
		}

		// Appending a matching keyword to the query must route.
		for _, kw := range keywords {
			kw = strings.TrimSpace(kw)
			if kw != "" {
				if !r.ShouldRoute(query + " " + kw) {
					t.Fatalf("query containing keyword %q did not route", kw)
				}
				break
			}
		}
	})
}
