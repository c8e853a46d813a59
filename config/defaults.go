package config

import "time"

// DefaultConfig returns the configuration used when no file or environment
// overrides are present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			MetricsPort:     9090,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "ragflow",
			Name:            "ragflow",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			PoolSize: 10,
			CacheTTL: 5 * time.Minute,
		},
		Qdrant: QdrantConfig{
			BaseURL:    "http://localhost:6333",
			Collection: "documents",
			Timeout:    20 * time.Second,
		},
		Embedding: EmbeddingConfig{
			OpenAIModel:   "text-embedding-ada-002",
			OllamaBaseURL: "http://localhost:11434",
			OllamaModel:   "nomic-embed-text:v1.5",
			Timeout:       30 * time.Second,
		},
		LLM: LLMConfig{
			BaseURL:           "https://api.openai.com",
			Model:             "gpt-4o-mini",
			MaxTokens:         1024,
			Temperature:       0.1,
			Timeout:           60 * time.Second,
			RequestsPerSecond: 5,
			SummaryMaxTokens:  6000,
		},
		Graph: GraphConfig{
			Biomedical: GraphBackendConfig{
				Database: "neo4j",
				Timeout:  30 * time.Second,
			},
			Clinical: GraphBackendConfig{
				Database: "neo4j",
				Timeout:  30 * time.Second,
			},
			MaxAttempts: 3,
		},
		Retrieval: RetrievalConfig{
			DefaultTopN:   80,
			VectorTimeout: 20 * time.Second,
			GraphTimeout:  45 * time.Second,
		},
		Events: EventsConfig{
			Database:   "ragflow",
			Collection: "events",
			Timeout:    5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "ragflow",
			SampleRate:  1.0,
		},
	}
}
