package graph

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// CompletionProvider is the completion surface the generator needs. The llm
// package's client satisfies it; tests supply fakes.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// SchemaKind selects which system prompt a generator uses.
type SchemaKind string

const (
	SchemaBiomedical SchemaKind = "biomedical"
	SchemaClinical   SchemaKind = "clinical"
)

// CypherGenerator translates a natural-language question into a candidate
// Cypher statement. Translation is probabilistic, so the generator varies its
// strategy with the attempt index: later attempts broaden matching instead of
// repeating the same failed translation.
type CypherGenerator struct {
	provider CompletionProvider
	prompt   string
	logger   *zap.Logger
}

// NewCypherGenerator creates a generator for one graph schema. The schema
// description is baked into the system prompt at construction time.
func NewCypherGenerator(provider CompletionProvider, kind SchemaKind, schema string, logger *zap.Logger) *CypherGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if schema == "" {
		schema = "Schema information not available."
	}

	template := biomedicalPromptTemplate
	if kind == SchemaClinical {
		template = clinicalPromptTemplate
	}

	return &CypherGenerator{
		provider: provider,
		prompt:   fmt.Sprintf(template, schema),
		logger:   logger.With(zap.String("component", "cypher_generator"), zap.String("schema", string(kind))),
	}
}

// Generate produces a candidate Cypher statement for the given attempt.
//
// Attempt 0 asks for a direct schema-term translation. Attempt 1 broadens
// relationship matching, or switches to fuzzy partial-name matching when the
// question names exactly two entities. Attempt 2 tries alternative labels and
// synonyms. Attempt 3 and beyond fall back to the most general pattern the
// schema allows.
func (g *CypherGenerator) Generate(ctx context.Context, userQuery string, attempt int) (string, error) {
	instruction := g.strategyInstruction(userQuery, attempt)

	prompt := fmt.Sprintf("%s\n\n%s\n\nQuestion: %s\nCypher:", g.prompt, instruction, userQuery)

	raw, err := g.provider.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("cypher generation failed: %w", err)
	}

	cypher := extractCypher(raw)
	if cypher == "" {
		return "", fmt.Errorf("completion contained no cypher statement")
	}

	g.logger.Debug("cypher generated",
		zap.Int("attempt", attempt),
		zap.String("cypher", cypher))

	return cypher, nil
}

func (g *CypherGenerator) strategyInstruction(userQuery string, attempt int) string {
	switch attempt {
	case 0:
		return "STRATEGY: Map the question's terms directly onto schema labels and relationship types. Use the most specific node types available."
	case 1:
		if entities := detectEntities(userQuery); len(entities) == 2 {
			return fmt.Sprintf("STRATEGY: A previous direct translation returned nothing. The question mentions two entities (%q and %q); match both with toLower(...) CONTAINS partial matching instead of exact equality, and search relationships in both directions.",
				entities[0], entities[1])
		}
		return "STRATEGY: A previous direct translation returned nothing. Broaden relationship matching: use undirected patterns (-[]-) and CONTAINS matching on names, since the question's connective language may not name a relationship type exactly."
	case 2:
		return "STRATEGY: Previous translations returned nothing. Try alternative node labels and relationship types that are synonyms or near-synonyms of the question's terms in this schema."
	default:
		return "STRATEGY: All targeted translations returned nothing. Generate the most general possible pattern: match any node whose name contains the question's key term and return its immediate neighbors with relationship types."
	}
}

var codeFenceRe = regexp.MustCompile("(?s)```(?:cypher)?\\s*(.*?)```")

// extractCypher strips markdown fences and leading prose from a completion.
// Models occasionally wrap statements in fences or prefix an explanation
// despite the prompt's instruction not to.
func extractCypher(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := codeFenceRe.FindStringSubmatch(raw); len(m) == 2 {
		raw = strings.TrimSpace(m[1])
	}

	upper := strings.ToUpper(raw)
	for _, kw := range []string{"MATCH ", "MATCH(", "OPTIONAL MATCH", "CALL ", "WITH "} {
		if idx := strings.Index(upper, kw); idx >= 0 {
			return strings.TrimSpace(raw[idx:])
		}
	}
	return ""
}

var entityRe = regexp.MustCompile(`"([^"]+)"|'([^']+)'|\b([A-Z][A-Za-z0-9-]{2,})\b`)

// detectEntities pulls candidate entity names from a question: quoted phrases
// and capitalized tokens, excluding the leading word. Used only to pick the
// fuzzy two-entity strategy on the second attempt.
func detectEntities(query string) []string {
	query = strings.TrimSpace(query)
	firstWordEnd := strings.IndexAny(query, " \t")

	var entities []string
	seen := make(map[string]bool)
	for _, m := range entityRe.FindAllStringSubmatchIndex(query, -1) {
		for i := 1; i <= 3; i++ {
			start, end := m[2*i], m[2*i+1]
			if start < 0 {
				continue
			}
			// Skip the sentence-initial capital.
			if i == 3 && firstWordEnd > 0 && start < firstWordEnd {
				continue
			}
			val := query[start:end]
			key := strings.ToLower(val)
			if !seen[key] {
				seen[key] = true
				entities = append(entities, val)
			}
		}
	}
	return entities
}
