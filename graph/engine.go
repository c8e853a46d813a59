// Package graph provides knowledge-graph query engines: a Neo4j HTTP client,
// schema-aware natural-language-to-Cypher generation, and a structured result
// type whose emptiness is a first-class state rather than an error.
package graph

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Runner executes Cypher statements. Satisfied by Neo4jClient; tests supply
// fakes.
type Runner interface {
	Run(ctx context.Context, cypher string) ([]map[string]any, error)
}

// Engine executes structured queries against one knowledge graph and shapes
// the rows into a Result. Generation of the query string is a separate
// concern (see CypherGenerator): the retry orchestration above this layer
// owns the generate/execute loop.
type Engine struct {
	id     string
	runner Runner
	logger *zap.Logger
}

// NewEngine creates an engine for one graph instance. id names the engine in
// logs and telemetry ("primekg", "clinicalkg").
func NewEngine(id string, runner Runner, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		id:     id,
		runner: runner,
		logger: logger.With(zap.String("component", "graph_engine"), zap.String("engine", id)),
	}
}

// ID returns the engine identifier.
func (e *Engine) ID() string { return e.id }

// Invoke executes a structured query and returns the shaped result. An
// execution error is returned as-is; a query that runs but matches nothing
// yields a Result whose Empty() is true.
func (e *Engine) Invoke(ctx context.Context, structuredQuery string) (*Result, error) {
	start := time.Now()

	rows, err := e.runner.Run(ctx, structuredQuery)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Answer:            renderRows(rows),
		Cypher:            structuredQuery,
		IntermediateSteps: rows,
	}

	e.logger.Debug("graph query executed",
		zap.Int("rows", len(rows)),
		zap.Duration("latency", time.Since(start)))

	return res, nil
}
