package retrieval

import "strings"

// Router decides whether a graph path should run for a query. Routing is a
// pure predicate over the query text: no I/O, no state, deterministic.
type Router interface {
	ShouldRoute(queryText string) bool
}

// KeywordRouter routes when any of its keywords appears in the lowercased
// query as a substring. Multi-word keywords match across word boundaries.
type KeywordRouter struct {
	keywords []string
}

// NewKeywordRouter builds a router over the given keyword set. Keywords are
// matched case-insensitively.
func NewKeywordRouter(keywords []string) *KeywordRouter {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	return &KeywordRouter{keywords: lowered}
}

// ShouldRoute reports whether any keyword occurs in the query.
func (r *KeywordRouter) ShouldRoute(queryText string) bool {
	q := strings.ToLower(queryText)
	for _, kw := range r.keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// BiomedicalKeywords routes general biomedical questions to the PrimeKG
// path.
func BiomedicalKeywords() []string {
	return []string{
		"disease", "drug", "gene", "symptom", "side effect",
		"treatment", "primekg", "cell",
	}
}

// ClinicalKeywords routes patient-centric questions to the clinical
// knowledge graph path.
func ClinicalKeywords() []string {
	return []string{
		"patient", "symptom", "diagnosis", "treatment", "clinical",
		"disease", "drug", "gene", "side effect",
	}
}
