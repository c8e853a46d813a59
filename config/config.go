// Package config loads service configuration from defaults, an optional
// YAML file, and environment variable overrides, in that order.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" env:"SERVER"`
	Database  DatabaseConfig  `yaml:"database" env:"DATABASE"`
	Redis     RedisConfig     `yaml:"redis" env:"REDIS"`
	Qdrant    QdrantConfig    `yaml:"qdrant" env:"QDRANT"`
	Embedding EmbeddingConfig `yaml:"embedding" env:"EMBEDDING"`
	LLM       LLMConfig       `yaml:"llm" env:"LLM"`
	Graph     GraphConfig     `yaml:"graph" env:"GRAPH"`
	Retrieval RetrievalConfig `yaml:"retrieval" env:"RETRIEVAL"`
	Events    EventsConfig    `yaml:"events" env:"EVENTS"`
	Log       LogConfig       `yaml:"log" env:"LOG"`
	Telemetry TelemetryConfig `yaml:"telemetry" env:"TELEMETRY"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	HTTPPort        int           `yaml:"http_port" env:"HTTP_PORT"`
	MetricsPort     int           `yaml:"metrics_port" env:"METRICS_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig configures the relational store.
type DatabaseConfig struct {
	Host            string        `yaml:"host" env:"HOST"`
	Port            int           `yaml:"port" env:"PORT"`
	User            string        `yaml:"user" env:"USER"`
	Password        string        `yaml:"password" env:"PASSWORD"`
	Name            string        `yaml:"name" env:"NAME"`
	SSLMode         string        `yaml:"ssl_mode" env:"SSL_MODE"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME"`
}

// DSN returns the postgres connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// MigrateURL returns the connection URL used by schema migrations.
func (d *DatabaseConfig) MigrateURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// RedisConfig configures the permission cache.
type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"ADDR"`
	Password string        `yaml:"password" env:"PASSWORD"`
	DB       int           `yaml:"db" env:"DB"`
	PoolSize int           `yaml:"pool_size" env:"POOL_SIZE"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"CACHE_TTL"`
}

// QdrantConfig configures the vector search backend.
type QdrantConfig struct {
	BaseURL    string `yaml:"base_url" env:"BASE_URL"`
	APIKey     string `yaml:"api_key" env:"API_KEY"`
	Collection string `yaml:"collection" env:"COLLECTION"`
	// Collections routes the listed projects to dedicated collections
	// instead of the default one. Env form: "proj=collection,proj2=other".
	Collections map[string]string `yaml:"collections" env:"COLLECTIONS"`
	Timeout     time.Duration     `yaml:"timeout" env:"TIMEOUT"`
}

// EmbeddingConfig configures the embedding providers and their routing.
type EmbeddingConfig struct {
	OpenAIBaseURL string        `yaml:"openai_base_url" env:"OPENAI_BASE_URL"`
	OpenAIAPIKey  string        `yaml:"openai_api_key" env:"OPENAI_API_KEY"`
	OpenAIModel   string        `yaml:"openai_model" env:"OPENAI_MODEL"`
	OllamaBaseURL string        `yaml:"ollama_base_url" env:"OLLAMA_BASE_URL"`
	OllamaModel   string        `yaml:"ollama_model" env:"OLLAMA_MODEL"`
	Timeout       time.Duration `yaml:"timeout" env:"TIMEOUT"`
	// OllamaProjects routes these projects to the Ollama provider.
	OllamaProjects []string `yaml:"ollama_projects" env:"OLLAMA_PROJECTS"`
}

// LLMConfig configures the completion provider used for Cypher generation
// and summarization.
type LLMConfig struct {
	BaseURL           string        `yaml:"base_url" env:"BASE_URL"`
	APIKey            string        `yaml:"api_key" env:"API_KEY"`
	Model             string        `yaml:"model" env:"MODEL"`
	MaxTokens         int           `yaml:"max_tokens" env:"MAX_TOKENS"`
	Temperature       float64       `yaml:"temperature" env:"TEMPERATURE"`
	Timeout           time.Duration `yaml:"timeout" env:"TIMEOUT"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"REQUESTS_PER_SECOND"`
	SummaryMaxTokens  int           `yaml:"summary_max_tokens" env:"SUMMARY_MAX_TOKENS"`
}

// GraphBackendConfig configures one Neo4j backend.
type GraphBackendConfig struct {
	Enabled  bool          `yaml:"enabled" env:"ENABLED"`
	BaseURL  string        `yaml:"base_url" env:"BASE_URL"`
	Username string        `yaml:"username" env:"USERNAME"`
	Password string        `yaml:"password" env:"PASSWORD"`
	Database string        `yaml:"database" env:"DATABASE"`
	Timeout  time.Duration `yaml:"timeout" env:"TIMEOUT"`
	// Schema is the node and relationship description interpolated into
	// the Cypher generation prompt.
	Schema string `yaml:"schema" env:"SCHEMA"`
}

// GraphConfig configures the knowledge-graph paths.
type GraphConfig struct {
	Biomedical  GraphBackendConfig `yaml:"biomedical" env:"BIOMEDICAL"`
	Clinical    GraphBackendConfig `yaml:"clinical" env:"CLINICAL"`
	MaxAttempts int                `yaml:"max_attempts" env:"MAX_ATTEMPTS"`
}

// RetrievalConfig tunes the orchestrator.
type RetrievalConfig struct {
	DefaultTopN   int           `yaml:"default_top_n" env:"DEFAULT_TOP_N"`
	VectorTimeout time.Duration `yaml:"vector_timeout" env:"VECTOR_TIMEOUT"`
	GraphTimeout  time.Duration `yaml:"graph_timeout" env:"GRAPH_TIMEOUT"`
}

// EventsConfig configures the analytics event sink.
type EventsConfig struct {
	Enabled    bool          `yaml:"enabled" env:"ENABLED"`
	MongoURI   string        `yaml:"mongo_uri" env:"MONGO_URI"`
	Database   string        `yaml:"database" env:"DATABASE"`
	Collection string        `yaml:"collection" env:"COLLECTION"`
	Timeout    time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level        string `yaml:"level" env:"LEVEL"`
	Format       string `yaml:"format" env:"FORMAT"`
	EnableCaller bool   `yaml:"enable_caller" env:"ENABLE_CALLER"`
}

// TelemetryConfig configures OpenTelemetry export.
type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled" env:"ENABLED"`
	OTLPEndpoint string  `yaml:"otlp_endpoint" env:"OTLP_ENDPOINT"`
	ServiceName  string  `yaml:"service_name" env:"SERVICE_NAME"`
	SampleRate   float64 `yaml:"sample_rate" env:"SAMPLE_RATE"`
}

// Validate checks the configuration for obvious misconfiguration.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, "invalid HTTP port")
	}
	if c.Qdrant.BaseURL == "" {
		errs = append(errs, "qdrant base_url is required")
	}
	if c.Qdrant.Collection == "" {
		errs = append(errs, "qdrant collection is required")
	}
	if c.Retrieval.DefaultTopN <= 0 {
		errs = append(errs, "default_top_n must be positive")
	}
	if c.Graph.MaxAttempts <= 0 {
		errs = append(errs, "graph max_attempts must be positive")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, "llm temperature must be between 0 and 2")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors: %s", strings.Join(errs, "; "))
	}
	return nil
}
