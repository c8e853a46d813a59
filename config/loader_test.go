package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Defaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 80, cfg.Retrieval.DefaultTopN)
	assert.Equal(t, 3, cfg.Graph.MaxAttempts)
	assert.Equal(t, "documents", cfg.Qdrant.Collection)
	assert.NoError(t, cfg.Validate())
}

func TestLoader_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  http_port: 9000
qdrant:
  base_url: http://qdrant.internal:6333
  collection: chunks
  collections:
    pubmed: pubmed_vectors
    patents: patent_vectors
graph:
  biomedical:
    enabled: true
    base_url: http://neo4j.internal:7474
  max_attempts: 5
retrieval:
  default_top_n: 40
  vector_timeout: 10s
`), 0o644))

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.HTTPPort)
	assert.Equal(t, "chunks", cfg.Qdrant.Collection)
	assert.Equal(t, map[string]string{
		"pubmed":  "pubmed_vectors",
		"patents": "patent_vectors",
	}, cfg.Qdrant.Collections)
	assert.True(t, cfg.Graph.Biomedical.Enabled)
	assert.Equal(t, 5, cfg.Graph.MaxAttempts)
	assert.Equal(t, 40, cfg.Retrieval.DefaultTopN)
	assert.Equal(t, 10*time.Second, cfg.Retrieval.VectorTimeout)
	// Untouched keys keep defaults.
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
}

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := NewLoader().WithConfigPath("/nonexistent/config.yaml").Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
}

func TestLoader_EnvOverrides(t *testing.T) {
	t.Setenv("RAGFLOW_SERVER_HTTP_PORT", "8888")
	t.Setenv("RAGFLOW_QDRANT_COLLECTION", "env_chunks")
	t.Setenv("RAGFLOW_RETRIEVAL_GRAPH_TIMEOUT", "90s")
	t.Setenv("RAGFLOW_EMBEDDING_OLLAMA_PROJECTS", "pubmed, patents")
	t.Setenv("RAGFLOW_QDRANT_COLLECTIONS", "pubmed=pubmed_vectors, patents=patent_vectors")
	t.Setenv("RAGFLOW_TELEMETRY_ENABLED", "true")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, 8888, cfg.Server.HTTPPort)
	assert.Equal(t, "env_chunks", cfg.Qdrant.Collection)
	assert.Equal(t, 90*time.Second, cfg.Retrieval.GraphTimeout)
	assert.Equal(t, []string{"pubmed", "patents"}, cfg.Embedding.OllamaProjects)
	assert.Equal(t, map[string]string{
		"pubmed":  "pubmed_vectors",
		"patents": "patent_vectors",
	}, cfg.Qdrant.Collections)
	assert.True(t, cfg.Telemetry.Enabled)
}

func TestLoader_EnvMapRejectsMalformedEntry(t *testing.T) {
	t.Setenv("RAGFLOW_QDRANT_COLLECTIONS", "pubmed-without-value")

	_, err := NewLoader().Load()
	assert.Error(t, err)
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  http_port: 9000\n"), 0o644))
	t.Setenv("RAGFLOW_SERVER_HTTP_PORT", "9100")

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.HTTPPort)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.HTTPPort = -1
	cfg.Qdrant.Collection = ""
	cfg.Graph.MaxAttempts = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP port")
	assert.Contains(t, err.Error(), "collection")
	assert.Contains(t, err.Error(), "max_attempts")
}

func TestLoader_ValidatorRuns(t *testing.T) {
	_, err := NewLoader().
		WithValidator(func(c *Config) error {
			c.Server.HTTPPort = 0
			return c.Validate()
		}).
		Load()
	assert.Error(t, err)
}
