package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	rows []map[string]any
	err  error
}

func (f *fakeRunner) Run(context.Context, string) ([]map[string]any, error) {
	return f.rows, f.err
}

func TestEngine_Invoke(t *testing.T) {
	eng := NewEngine("primekg", &fakeRunner{
		rows: []map[string]any{{"drug": "diazoxide"}},
	}, nil)

	res, err := eng.Invoke(context.Background(), "MATCH (d:Drug) RETURN d.name AS drug")

	require.NoError(t, err)
	assert.Equal(t, "primekg", eng.ID())
	assert.False(t, res.Empty())
	assert.Equal(t, "MATCH (d:Drug) RETURN d.name AS drug", res.Cypher)
	assert.JSONEq(t, `[{"drug":"diazoxide"}]`, res.Answer)
	assert.Len(t, res.IntermediateSteps, 1)
}

func TestEngine_InvokeNoRows(t *testing.T) {
	eng := NewEngine("primekg", &fakeRunner{}, nil)

	res, err := eng.Invoke(context.Background(), "MATCH (n:Nothing) RETURN n")

	require.NoError(t, err)
	assert.True(t, res.Empty())
}

func TestEngine_InvokeError(t *testing.T) {
	eng := NewEngine("primekg", &fakeRunner{err: errors.New("connection refused")}, nil)

	_, err := eng.Invoke(context.Background(), "MATCH (n) RETURN n")
	assert.Error(t, err)
}
