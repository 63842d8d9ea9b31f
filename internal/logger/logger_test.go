package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New(tt.level)
			assert.NotNil(t, l)
			assert.True(t, l.Desugar().Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, l.Desugar().Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestLogger_KeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core)).With("component", "test")

	l.Info("Token service: issued", "principal_id", "p1")
	l.Error("Token service: failed", "error", "boom")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "Token service: issued", entries[0].Message)
		assert.Equal(t, "p1", entries[0].ContextMap()["principal_id"])
		assert.Equal(t, "test", entries[0].ContextMap()["component"])
		assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	}
}
