package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunText(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"--text", "convert 20 dollars to cedis"}, &stdout, &stderr)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"found": true,
		"result": {"amount": "20", "currency": "USD", "targetCurrency": "GHS"},
		"detected_currencies": ["USD", "GHS"]
	}`, stdout.String())
}

func TestRunTextFromEnv(t *testing.T) {
	t.Setenv("AMOUNTSCAN_TEXT", "hello world")
	var stdout, stderr bytes.Buffer

	require.NoError(t, run(context.Background(), nil, &stdout, &stderr))
	assert.JSONEq(t, `{"found": false, "result": null, "detected_currencies": []}`, stdout.String())
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"nothing to scan", nil},
		{"text and file", []string{"--text", "5 EUR", "receipt.png"}},
		{"two files", []string{"a.png", "b.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), tt.args, &stdout, &stderr)
			assert.ErrorIs(t, err, errUsage)
			assert.Empty(t, stdout.String())
		})
	}
}

func TestRunMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{filepath.Join(t.TempDir(), "missing.png")}, &stdout, &stderr)
	assert.ErrorContains(t, err, "missing.png")
}
