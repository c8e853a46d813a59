package retrieval

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BaSui01/ragflow/embedding"
	"github.com/BaSui01/ragflow/events"
	"github.com/BaSui01/ragflow/internal/metrics"
	"github.com/BaSui01/ragflow/vector"
)

// EmbedderRegistry selects the embedding provider for a project.
type EmbedderRegistry interface {
	ForProject(projectID string) embedding.Provider
}

// PermissionResolver looks up the project's document group visibility.
type PermissionResolver interface {
	ResolveGroups(ctx context.Context, projectID string) (disabled, public []string, err error)
}

// VectorSearcher runs one similarity search.
type VectorSearcher interface {
	Search(ctx context.Context, req vector.SearchRequest) ([]vector.ScoredChunk, error)
}

// GraphPath is one knowledge-graph retrieval path: a router deciding
// whether it runs, a generator producing structured queries, and the
// engine that executes them.
type GraphPath struct {
	Name      string
	Router    Router
	Generator QueryGenerator
	Engine    GraphEngine
}

// Options tune the orchestrator's timeouts and limits.
type Options struct {
	DefaultTopN     int
	VectorTimeout   time.Duration
	GraphTimeout    time.Duration
	GraphMaxRetries int
}

func (o *Options) applyDefaults() {
	if o.DefaultTopN <= 0 {
		o.DefaultTopN = 80
	}
	if o.VectorTimeout <= 0 {
		o.VectorTimeout = 20 * time.Second
	}
	if o.GraphTimeout <= 0 {
		o.GraphTimeout = 45 * time.Second
	}
	if o.GraphMaxRetries <= 0 {
		o.GraphMaxRetries = DefaultMaxAttempts
	}
}

// Orchestrator fans a query out to vector search and any routed graph
// paths, then merges results vector-first.
type Orchestrator struct {
	embedders  EmbedderRegistry
	perms      PermissionResolver
	searcher   VectorSearcher
	paths      []GraphPath
	summarizer Summarizer
	sink       events.Sink
	collector  *metrics.Collector
	tracer     trace.Tracer
	logger     *zap.Logger
	opts       Options
}

// NewOrchestrator wires the retrieval pipeline. The sink, collector and
// logger may be nil; graph paths and the summarizer may be absent when no
// graph retrieval is configured.
func NewOrchestrator(
	embedders EmbedderRegistry,
	perms PermissionResolver,
	searcher VectorSearcher,
	paths []GraphPath,
	summarizer Summarizer,
	sink events.Sink,
	collector *metrics.Collector,
	logger *zap.Logger,
	opts Options,
) *Orchestrator {
	if sink == nil {
		sink = events.NopSink{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	opts.applyDefaults()
	return &Orchestrator{
		embedders:  embedders,
		perms:      perms,
		searcher:   searcher,
		paths:      paths,
		summarizer: summarizer,
		sink:       sink,
		collector:  collector,
		tracer:     otel.Tracer("ragflow/retrieval"),
		logger:     logger.With(zap.String("component", "retrieval_orchestrator")),
		opts:       opts,
	}
}

// graphOutcome carries one finished graph branch back to the join point.
type graphOutcome struct {
	pathName string
	item     ContextItem
	ok       bool
}

// Retrieve runs the full pipeline for one query. Embedding and permission
// lookups must both succeed; the vector search must succeed; graph paths
// degrade to absence on failure.
func (o *Orchestrator) Retrieve(ctx context.Context, q Query) ([]ContextItem, error) {
	start := time.Now()
	ctx, span := o.tracer.Start(ctx, "retrieval.Retrieve",
		trace.WithAttributes(
			attribute.String("project_id", q.ProjectID),
			attribute.Int("top_n", q.TopN),
		))
	defer span.End()

	topN := q.TopN
	if topN <= 0 {
		topN = o.opts.DefaultTopN
	}

	o.capture(ctx, events.New("retrieval_invoked", map[string]any{
		"project_id": q.ProjectID,
		"query":      q.Text,
		"top_n":      topN,
	}))

	emb, disabled, public, err := o.prepare(ctx, q)
	if err != nil {
		o.observeRequest(q.ProjectID, "dependency_failure", start, 0)
		return nil, err
	}

	// Fan out: vector search and every routed graph path run concurrently.
	// Graph branches report outcomes as values; only the vector branch can
	// fail the request.
	routed := o.routedPaths(q.Text)
	outcomes := make(chan graphOutcome, len(routed))
	for _, path := range routed {
		go o.runGraphBranch(ctx, path, q, outcomes)
	}

	vecStart := time.Now()
	chunks, err := o.searchVector(ctx, q, emb, disabled, public, topN)
	if err != nil {
		// Graph branches observe ctx and exit on their own.
		o.observeRequest(q.ProjectID, "vector_failure", start, 0)
		span.RecordError(err)
		return nil, err
	}

	o.capture(ctx, events.New("vector_search_succeeded", map[string]any{
		"project_id": q.ProjectID,
		"hits":       len(chunks),
		"elapsed_ms": time.Since(vecStart).Milliseconds(),
	}))

	items := make([]ContextItem, 0, len(chunks)+len(routed))
	for _, chunk := range chunks {
		items = append(items, contextFromChunk(chunk, q.ProjectID))
	}

	// Join: collect each branch outcome, preserving configured path order
	// in the merged list.
	collected := make(map[string]ContextItem, len(routed))
	for range routed {
		out := <-outcomes
		if out.ok {
			collected[out.pathName] = out.item
		}
	}
	for _, path := range routed {
		if item, ok := collected[path.Name]; ok {
			items = append(items, item)
		}
	}

	o.observeRequest(q.ProjectID, "success", start, len(items))
	o.capture(ctx, events.New("retrieval_succeeded", map[string]any{
		"project_id":    q.ProjectID,
		"query":         q.Text,
		"context_count": len(items),
		"graph_paths":   len(routed),
		"elapsed_ms":    time.Since(start).Milliseconds(),
	}))
	return items, nil
}

// capture hands an event to the sink in its own goroutine so sink latency
// never reaches the retrieval path.
func (o *Orchestrator) capture(ctx context.Context, e events.Event) {
	go o.sink.Capture(ctx, e)
}

// prepare runs the required pre-stages concurrently and fails fast.
func (o *Orchestrator) prepare(ctx context.Context, q Query) (emb []float64, disabled, public []string, err error) {
	stageStart := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		provider := o.embedders.ForProject(q.ProjectID)
		vec, embErr := provider.EmbedQuery(gctx, q.Text)
		if embErr != nil {
			return NewDependencyError("embedding", embErr)
		}
		emb = vec
		return nil
	})
	g.Go(func() error {
		d, p, permErr := o.perms.ResolveGroups(gctx, q.ProjectID)
		if permErr != nil {
			return NewDependencyError("permissions", permErr)
		}
		disabled, public = d, p
		return nil
	})

	if err = g.Wait(); err != nil {
		o.logger.Error("pre-stage failed",
			zap.String("project_id", q.ProjectID),
			zap.Error(err))
		return nil, nil, nil, err
	}
	o.observeStage("prepare", stageStart)
	return emb, disabled, public, nil
}

func (o *Orchestrator) searchVector(ctx context.Context, q Query, emb []float64, disabled, public []string, topN int) ([]vector.ScoredChunk, error) {
	stageStart := time.Now()
	vctx, cancel := context.WithTimeout(ctx, o.opts.VectorTimeout)
	defer cancel()

	chunks, err := o.searcher.Search(vctx, vector.SearchRequest{
		QueryText:      q.Text,
		ProjectID:      q.ProjectID,
		DocGroups:      q.DocGroups,
		DisabledGroups: disabled,
		PublicGroups:   public,
		Embedding:      emb,
		TopN:           topN,
	})
	if err != nil {
		o.logger.Error("vector search failed",
			zap.String("project_id", q.ProjectID),
			zap.Error(err))
		return nil, NewVectorSearchError(err)
	}
	o.observeStage("vector_search", stageStart)
	return chunks, nil
}

func (o *Orchestrator) routedPaths(queryText string) []GraphPath {
	if o.summarizer == nil {
		return nil
	}
	var routed []GraphPath
	for _, path := range o.paths {
		if path.Router != nil && path.Router.ShouldRoute(queryText) {
			routed = append(routed, path)
		}
	}
	return routed
}

// runGraphBranch executes one graph path under its own timeout and always
// delivers exactly one outcome.
func (o *Orchestrator) runGraphBranch(ctx context.Context, path GraphPath, q Query, outcomes chan<- graphOutcome) {
	stageStart := time.Now()
	gctx, cancel := context.WithTimeout(ctx, o.opts.GraphTimeout)
	defer cancel()

	run := RunGraphQuery(gctx, path.Generator, path.Engine, q.Text, o.opts.GraphMaxRetries, o.logger)
	if o.collector != nil {
		o.collector.GraphAttempts.WithLabelValues(path.Name).Add(float64(run.Attempts))
		o.collector.GraphRunOutcomes.WithLabelValues(path.Name, string(run.State)).Inc()
	}
	o.capture(ctx, events.New("graph_path_completed", map[string]any{
		"project_id": q.ProjectID,
		"path":       path.Name,
		"state":      string(run.State),
		"attempts":   run.Attempts,
		"elapsed_ms": time.Since(stageStart).Milliseconds(),
	}))

	if run.State != StateSuccess {
		outcomes <- graphOutcome{pathName: path.Name}
		return
	}

	summary, err := o.summarizer.Summarize(gctx, q.Text, run.Result.Answer)
	if err != nil {
		o.logger.Warn("graph summary failed",
			zap.String("path", path.Name),
			zap.Error(err))
		outcomes <- graphOutcome{pathName: path.Name}
		return
	}

	o.observeStage("graph_"+path.Name, stageStart)
	outcomes <- graphOutcome{
		pathName: path.Name,
		item:     contextFromGraph(run, summary, path.Engine.ID()),
		ok:       true,
	}
}

func (o *Orchestrator) observeRequest(projectID, status string, start time.Time, contexts int) {
	if o.collector == nil {
		return
	}
	o.collector.RequestsTotal.WithLabelValues(projectID, status).Inc()
	o.collector.RequestDuration.WithLabelValues(projectID).Observe(time.Since(start).Seconds())
	if status == "success" {
		o.collector.ContextsReturned.WithLabelValues(projectID).Observe(float64(contexts))
	}
}

func (o *Orchestrator) observeStage(stage string, start time.Time) {
	if o.collector == nil {
		return
	}
	o.collector.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
