package telemetry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/voxforge/launcher-core/src/events"
	"github.com/voxforge/launcher-core/src/telemetry"
)

func TestAttachAll_LogsEveryKnownEventAtTheRightLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	bridge := telemetry.NewBridge(zap.New(core))

	e := events.New()
	bridge.AttachAll(e)

	e.Emit("vanilla_install_start", "1.20.1")
	e.Emit("error", "boom")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "vanilla_install_start", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "error", entries[1].Message)
}

func TestNewBridge_NilLoggerIsSafe(t *testing.T) {
	bridge := telemetry.NewBridge(nil)
	e := events.New()
	bridge.AttachAll(e)
	assert.NotPanics(t, func() { e.Emit("library_done", "x") })
}
