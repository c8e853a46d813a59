package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Neo4jConfig configures the HTTP transaction API client for one graph
// database.
type Neo4jConfig struct {
	BaseURL  string        `yaml:"base_url" json:"base_url"`
	Username string        `yaml:"username" json:"username"`
	Password string        `yaml:"password" json:"password"`
	Database string        `yaml:"database" json:"database"`
	Timeout  time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// Neo4jClient executes Cypher statements against Neo4j's HTTP transaction
// endpoint (/db/{name}/tx/commit). Rows come back as column/value pairs and
// are reshaped into one map per row.
type Neo4jClient struct {
	cfg    Neo4jConfig
	client *http.Client
	logger *zap.Logger
}

// NewNeo4jClient creates a Neo4j HTTP client.
func NewNeo4jClient(cfg Neo4jConfig, logger *zap.Logger) *Neo4jClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Database == "" {
		cfg.Database = "neo4j"
	}
	return &Neo4jClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.With(zap.String("component", "neo4j_client")),
	}
}

type neo4jStatement struct {
	Statement string `json:"statement"`
}

type neo4jTxRequest struct {
	Statements []neo4jStatement `json:"statements"`
}

type neo4jTxResponse struct {
	Results []struct {
		Columns []string `json:"columns"`
		Data    []struct {
			Row []any `json:"row"`
		} `json:"data"`
	} `json:"results"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// Run executes a single Cypher statement and returns the result rows.
func (c *Neo4jClient) Run(ctx context.Context, cypher string) ([]map[string]any, error) {
	endpoint := fmt.Sprintf("%s/db/%s/tx/commit",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Database)

	body, err := json.Marshal(neo4jTxRequest{
		Statements: []neo4jStatement{{Statement: cypher}},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.Username != "" {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("neo4j request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("neo4j request failed: status=%d body=%s", resp.StatusCode, string(raw))
	}

	var txResp neo4jTxResponse
	if err := json.NewDecoder(resp.Body).Decode(&txResp); err != nil {
		return nil, fmt.Errorf("neo4j response decode failed: %w", err)
	}

	if len(txResp.Errors) > 0 {
		first := txResp.Errors[0]
		return nil, fmt.Errorf("neo4j query error: code=%s message=%s", first.Code, first.Message)
	}

	if len(txResp.Results) == 0 {
		return nil, nil
	}

	res := txResp.Results[0]
	rows := make([]map[string]any, 0, len(res.Data))
	for _, d := range res.Data {
		row := make(map[string]any, len(res.Columns))
		for i, col := range res.Columns {
			if i < len(d.Row) {
				row[col] = d.Row[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
