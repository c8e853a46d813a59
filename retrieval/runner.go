package retrieval

import (
	"context"

	"go.uber.org/zap"

	"github.com/BaSui01/ragflow/graph"
)

// GraphState is the lifecycle of one graph path execution.
type GraphState string

const (
	StateRunning GraphState = "running"
	StateSuccess GraphState = "success"
	StateFailed  GraphState = "failed"
)

// DefaultMaxAttempts bounds the generate-and-execute loop.
const DefaultMaxAttempts = 3

// QueryGenerator produces a structured graph query for the given attempt.
// Later attempts are expected to loosen the matching strategy.
type QueryGenerator interface {
	Generate(ctx context.Context, userQuery string, attempt int) (string, error)
}

// GraphEngine executes one structured query against a knowledge graph.
type GraphEngine interface {
	ID() string
	Invoke(ctx context.Context, structuredQuery string) (*graph.Result, error)
}

// GraphRun is the final state of one graph path execution.
type GraphRun struct {
	UserQuery    string
	Attempts     int
	QueriesTried []string
	Result       *graph.Result
	State        GraphState
}

// RunGraphQuery drives the bounded retry loop for one graph path. Each
// attempt generates a fresh structured query and executes it; generation
// and execution errors fail only that attempt, never the run as a whole.
// An attempt succeeds when the engine returns a semantically non-empty
// result. The loop stops early only on context cancellation.
func RunGraphQuery(ctx context.Context, gen QueryGenerator, engine GraphEngine, userQuery string, maxAttempts int, logger *zap.Logger) *GraphRun {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("engine", engine.ID()))

	run := &GraphRun{
		UserQuery: userQuery,
		State:     StateRunning,
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if ctx.Err() != nil {
			run.State = StateFailed
			return run
		}
		run.Attempts = attempt + 1

		structured, err := gen.Generate(ctx, userQuery, attempt)
		if err != nil {
			logger.Warn("query generation failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}
		run.QueriesTried = append(run.QueriesTried, structured)

		result, err := engine.Invoke(ctx, structured)
		if err != nil {
			logger.Warn("graph query failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}
		if result.Empty() {
			logger.Debug("graph query returned no results",
				zap.Int("attempt", attempt))
			continue
		}

		run.Result = result
		run.State = StateSuccess
		return run
	}

	run.State = StateFailed
	return run
}
