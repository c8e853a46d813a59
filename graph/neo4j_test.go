package graph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeo4jClient_Run(t *testing.T) {
	var gotPath, gotStatement string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "neo4j", user)
		assert.Equal(t, "secret", pass)

		var req struct {
			Statements []struct {
				Statement string `json:"statement"`
			} `json:"statements"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Statements, 1)
		gotStatement = req.Statements[0].Statement

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"results": [{
				"columns": ["drug", "disease"],
				"data": [
					{"row": ["diazoxide", "hyperinsulinism"]},
					{"row": ["octreotide", "hyperinsulinism"]}
				]
			}],
			"errors": []
		}`))
	}))
	defer srv.Close()

	client := NewNeo4jClient(Neo4jConfig{
		BaseURL:  srv.URL,
		Username: "neo4j",
		Password: "secret",
		Database: "primekg",
	}, nil)

	rows, err := client.Run(context.Background(), "MATCH (d:Drug)-[:TREATS]->(x:Disease) RETURN d.name AS drug, x.name AS disease")

	require.NoError(t, err)
	assert.Equal(t, "/db/primekg/tx/commit", gotPath)
	assert.Contains(t, gotStatement, "MATCH (d:Drug)")
	require.Len(t, rows, 2)
	assert.Equal(t, "diazoxide", rows[0]["drug"])
	assert.Equal(t, "hyperinsulinism", rows[0]["disease"])
}

func TestNeo4jClient_QueryError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"results": [],
			"errors": [{"code": "Neo.ClientError.Statement.SyntaxError", "message": "Invalid input"}]
		}`))
	}))
	defer srv.Close()

	client := NewNeo4jClient(Neo4jConfig{BaseURL: srv.URL}, nil)

	_, err := client.Run(context.Background(), "MATCH oops")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SyntaxError")
}

func TestNeo4jClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewNeo4jClient(Neo4jConfig{BaseURL: srv.URL}, nil)

	_, err := client.Run(context.Background(), "MATCH (n) RETURN n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=503")
}

func TestNeo4jClient_EmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [{"columns": ["n"], "data": []}], "errors": []}`))
	}))
	defer srv.Close()

	client := NewNeo4jClient(Neo4jConfig{BaseURL: srv.URL}, nil)

	rows, err := client.Run(context.Background(), "MATCH (n:Nothing) RETURN n")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
