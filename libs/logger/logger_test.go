package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestInit(t *testing.T) {
	previous := Logger
	t.Cleanup(func() { Logger = previous })

	assert.NoError(t, Init("debug"))
	assert.True(t, Logger.Core().Enabled(zap.DebugLevel))

	assert.Error(t, Init("loud"))
}

func TestFromContext(t *testing.T) {
	fallback := zap.NewNop()
	scoped := zap.NewExample()

	assert.Same(t, fallback, FromContext(context.Background(), fallback))
	assert.Same(t, scoped, FromContext(WithContext(context.Background(), scoped), fallback))
}
