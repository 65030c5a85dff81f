package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"DEBUG", log.DebugLevel},
		{" Error ", log.ErrorLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.level))
			assert.Equal(t, tt.expected, New(tt.level).GetLevel())
		})
	}
}

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("rewrite rejected", FieldPath, "a.js", FieldOriginal, "o-50 x")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "rewrite rejected")
	assert.Contains(t, out, "path=a.js")
}

func TestDefaultAndSetDefault(t *testing.T) {
	original := Default()
	require.NotNil(t, original)
	t.Cleanup(func() { SetDefault(original) })

	replacement := New("error")
	SetDefault(replacement)
	assert.Same(t, replacement, Default())
}

func TestContext(t *testing.T) {
	logger := New("debug")
	ctx := WithLogger(context.Background(), logger)

	assert.Same(t, logger, FromContext(ctx))
	assert.Same(t, Default(), FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled
	assert.Same(t, Default(), FromContext(nil))
}
