package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/jason-s-yu/gangoffour/service/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAnalyze(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"analyze", "-hand", "6Y 9R PG", "-trick", "5G"}, &stdout, &stderr)
	require.NoError(t, err)

	var res analysis.Result
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &res))
	assert.Equal(t, []string{"PASS", "6Y", "9R", "PhoenixG"}, res.Actions)
	assert.False(t, res.Leading)
	assert.Nil(t, res.State)
}

func TestRunAnalyzeFull(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"analyze", "-full", "-hand", "7R", "-played", "", "-opponents", "3, 4"}, &stdout, &stderr)
	require.NoError(t, err)

	var res analysis.Result
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &res))
	require.Len(t, res.State, 328)
	assert.Equal(t, float32(1), res.State[192])  // opponent region filled: played supplied
	assert.Equal(t, float32(0.1875), res.State[297])
	assert.Equal(t, float32(0.25), res.State[298])
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Error(t, run(context.Background(), nil, &stdout, &stderr))
	assert.ErrorContains(t, run(context.Background(), []string{"deal"}, &stdout, &stderr), "unknown command")
	assert.ErrorContains(t, run(context.Background(), []string{"analyze", "-hand", "11G"}, &stdout, &stderr), "cannot parse card")
	assert.Error(t, run(context.Background(), []string{"analyze", "-opponents", "x"}, &stdout, &stderr))
	assert.NoError(t, run(context.Background(), []string{"help"}, &stdout, &stderr))
}

func TestIntList(t *testing.T) {
	var l intList
	require.NoError(t, l.Set("16, 9,2"))
	assert.Equal(t, intList{16, 9, 2}, l)
	assert.Equal(t, "16,9,2", l.String())
	assert.Error(t, l.Set("1,,2"))
}
