// Package embedding provides query-embedding clients and the per-project
// routing table that selects one.
package embedding

import "context"

// Provider generates a fixed-length embedding for one query string.
type Provider interface {
	// Name identifies the provider in logs and telemetry.
	Name() string
	// EmbedQuery produces the query embedding.
	EmbedQuery(ctx context.Context, query string) ([]float64, error)
}
