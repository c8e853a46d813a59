package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BaSui01/ragflow/api/handlers"
	"github.com/BaSui01/ragflow/config"
	"github.com/BaSui01/ragflow/embedding"
	"github.com/BaSui01/ragflow/events"
	"github.com/BaSui01/ragflow/graph"
	"github.com/BaSui01/ragflow/internal/metrics"
	"github.com/BaSui01/ragflow/internal/telemetry"
	"github.com/BaSui01/ragflow/llm"
	"github.com/BaSui01/ragflow/retrieval"
	"github.com/BaSui01/ragflow/store"
	"github.com/BaSui01/ragflow/vector"
)

// Server wires the retrieval pipeline and runs the HTTP and metrics
// listeners.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	otel   *telemetry.Providers

	httpServer    *http.Server
	metricsServer *http.Server

	db          *gorm.DB
	redis       *redis.Client
	mongoClient *mongo.Client

	healthHandler *handlers.HealthHandler
}

// NewServer creates the server shell; wiring happens in Start.
func NewServer(cfg *config.Config, logger *zap.Logger, otel *telemetry.Providers) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		otel:   otel,
	}
}

// Start connects backends, builds the pipeline, and starts both listeners.
func (s *Server) Start() error {
	collector := metrics.NewCollector(prometheus.DefaultRegisterer)

	db, err := gorm.Open(postgres.Open(s.cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	s.db = db
	projectStore := store.NewProjectStore(db, s.logger)

	s.redis = redis.NewClient(&redis.Options{
		Addr:     s.cfg.Redis.Addr,
		Password: s.cfg.Redis.Password,
		DB:       s.cfg.Redis.DB,
		PoolSize: s.cfg.Redis.PoolSize,
	})
	resolver := store.NewCachedResolver(projectStore, s.redis, s.cfg.Redis.CacheTTL, collector, s.logger)

	sink := s.buildSink()
	registry := s.buildEmbedders()
	searcher := vector.NewQdrantSearcher(vector.QdrantConfig{
		BaseURL:     s.cfg.Qdrant.BaseURL,
		APIKey:      s.cfg.Qdrant.APIKey,
		Collection:  s.cfg.Qdrant.Collection,
		Collections: s.cfg.Qdrant.Collections,
		Timeout:     s.cfg.Qdrant.Timeout,
	}, s.logger)

	completions := llm.NewOpenAIClient(llm.OpenAIConfig{
		BaseURL:           s.cfg.LLM.BaseURL,
		APIKey:            s.cfg.LLM.APIKey,
		Model:             s.cfg.LLM.Model,
		MaxTokens:         s.cfg.LLM.MaxTokens,
		Temperature:       s.cfg.LLM.Temperature,
		Timeout:           s.cfg.LLM.Timeout,
		RequestsPerSecond: s.cfg.LLM.RequestsPerSecond,
	}, s.logger)

	summarizer, err := retrieval.NewLLMSummarizer(completions, s.cfg.LLM.SummaryMaxTokens)
	if err != nil {
		return fmt.Errorf("create summarizer: %w", err)
	}

	orchestrator := retrieval.NewOrchestrator(
		registry,
		resolver,
		searcher,
		s.buildGraphPaths(completions),
		summarizer,
		sink,
		collector,
		s.logger,
		retrieval.Options{
			DefaultTopN:     s.cfg.Retrieval.DefaultTopN,
			VectorTimeout:   s.cfg.Retrieval.VectorTimeout,
			GraphTimeout:    s.cfg.Retrieval.GraphTimeout,
			GraphMaxRetries: s.cfg.Graph.MaxAttempts,
		},
	)

	s.healthHandler = handlers.NewHealthHandler(s.logger)
	retrievalHandler := handlers.NewRetrievalHandler(orchestrator, s.logger)
	materialsHandler := handlers.NewMaterialsHandler(projectStore, s.logger)
	statsHandler := handlers.NewStatsHandler(projectStore, s.logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthHandler.Health)
	mux.HandleFunc("/ready", s.healthHandler.Ready)
	mux.HandleFunc("/getTopContexts", retrievalHandler.GetTopContexts)
	mux.HandleFunc("/materials", materialsHandler.List)
	mux.HandleFunc("/stats", statsHandler.ProjectStats)
	mux.HandleFunc("/stats/models", statsHandler.ModelUsage)
	mux.HandleFunc("/stats/conversations", statsHandler.ConversationActivity)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Server.HTTPPort),
		Handler:      mux,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	s.metricsServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Server.MetricsPort),
		Handler: metricsMux,
	}

	go s.listen(s.httpServer, "http")
	go s.listen(s.metricsServer, "metrics")

	s.healthHandler.SetReady(true)
	s.logger.Info("All servers started",
		zap.Int("http_port", s.cfg.Server.HTTPPort),
		zap.Int("metrics_port", s.cfg.Server.MetricsPort),
	)
	return nil
}

func (s *Server) buildSink() events.Sink {
	if !s.cfg.Events.Enabled {
		return events.NewLogSink(s.logger)
	}
	client, err := mongo.Connect(options.Client().ApplyURI(s.cfg.Events.MongoURI))
	if err != nil {
		s.logger.Warn("analytics sink unavailable, falling back to log sink", zap.Error(err))
		return events.NewLogSink(s.logger)
	}
	s.mongoClient = client
	return events.NewMongoSink(client, events.MongoConfig{
		Database:   s.cfg.Events.Database,
		Collection: s.cfg.Events.Collection,
		Timeout:    s.cfg.Events.Timeout,
	}, s.logger)
}

func (s *Server) buildEmbedders() *embedding.Registry {
	openai := embedding.NewOpenAIProvider(embedding.OpenAIConfig{
		BaseURL: s.cfg.Embedding.OpenAIBaseURL,
		APIKey:  s.cfg.Embedding.OpenAIAPIKey,
		Model:   s.cfg.Embedding.OpenAIModel,
		Timeout: s.cfg.Embedding.Timeout,
	})
	ollama := embedding.NewOllamaProvider(embedding.OllamaConfig{
		BaseURL: s.cfg.Embedding.OllamaBaseURL,
		Model:   s.cfg.Embedding.OllamaModel,
		Timeout: s.cfg.Embedding.Timeout,
	})

	byProject := make(map[string]embedding.Provider, len(s.cfg.Embedding.OllamaProjects))
	for _, project := range s.cfg.Embedding.OllamaProjects {
		byProject[project] = ollama
	}
	return embedding.NewRegistry(openai, byProject, s.logger)
}

func (s *Server) buildGraphPaths(completions llm.Provider) []retrieval.GraphPath {
	var paths []retrieval.GraphPath

	if s.cfg.Graph.Biomedical.Enabled {
		paths = append(paths, s.buildGraphPath(
			"biomedical", s.cfg.Graph.Biomedical, graph.SchemaBiomedical,
			retrieval.BiomedicalKeywords(), completions))
	}
	if s.cfg.Graph.Clinical.Enabled {
		paths = append(paths, s.buildGraphPath(
			"clinical", s.cfg.Graph.Clinical, graph.SchemaClinical,
			retrieval.ClinicalKeywords(), completions))
	}
	return paths
}

func (s *Server) buildGraphPath(name string, cfg config.GraphBackendConfig, schema graph.SchemaKind, keywords []string, completions llm.Provider) retrieval.GraphPath {
	client := graph.NewNeo4jClient(graph.Neo4jConfig{
		BaseURL:  cfg.BaseURL,
		Username: cfg.Username,
		Password: cfg.Password,
		Database: cfg.Database,
		Timeout:  cfg.Timeout,
	}, s.logger)

	return retrieval.GraphPath{
		Name:      name,
		Router:    retrieval.NewKeywordRouter(keywords),
		Generator: graph.NewCypherGenerator(completions, schema, cfg.Schema, s.logger),
		Engine:    graph.NewEngine(name, client, s.logger),
	}
}

func (s *Server) listen(srv *http.Server, name string) {
	s.logger.Info("listener starting", zap.String("server", name), zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("listener failed", zap.String("server", name), zap.Error(err))
	}
}

// WaitForShutdown blocks until SIGINT or SIGTERM, then drains connections.
func (s *Server) WaitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	s.logger.Info("shutting down")
	s.healthHandler.SetReady(false)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Warn("http shutdown incomplete", zap.Error(err))
	}
	if err := s.metricsServer.Shutdown(ctx); err != nil {
		s.logger.Warn("metrics shutdown incomplete", zap.Error(err))
	}
	if s.mongoClient != nil {
		if err := s.mongoClient.Disconnect(ctx); err != nil {
			s.logger.Warn("analytics client disconnect failed", zap.Error(err))
		}
	}
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.otel != nil {
		if err := s.otel.Shutdown(ctx); err != nil {
			s.logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}
}
