package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		" info ":  zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestLogger_WithAddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core)).With("component", "parser")

	log.Info("extracted", "skills", 3)
	log.Debug("detail")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "extracted", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "parser", fields["component"])
	assert.EqualValues(t, 3, fields["skills"])
}

func TestLogger_LevelFilters(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := FromZap(zap.New(core))

	log.Info("dropped")
	log.Warn("kept")
	log.Error("kept too")

	assert.Equal(t, 2, logs.Len())
}

func TestNop(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.With("k", "v").Error("nothing", "err", assert.AnError)
		_ = log.Sync()
	})
}
