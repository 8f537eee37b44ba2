package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func Test_OnKnownEnv_ShouldBuildLogger(t *testing.T) {
	for _, env := range []string{"dev", "prod", "test"} {
		l, err := newLogger(env)
		require.NoError(t, err, env)
		assert.NotNil(t, l, env)
	}
}

func Test_OnUnknownEnv_ShouldFallBackToDevLogger(t *testing.T) {
	l, err := newLogger("staging")
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}
