package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	cases := map[string]zapcore.Level{
		"production":  zapcore.InfoLevel,
		"development": zapcore.DebugLevel,
		"local":       zapcore.DebugLevel,
	}
	for env, lvl := range cases {
		l, err := New(env)
		assert.NoError(t, err, env)
		assert.True(t, l.Core().Enabled(lvl), env)
	}

	l, err := New("production")
	assert.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}
