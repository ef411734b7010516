package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want LogLevel
	}{
		{"trace", TRACE},
		{"debug", DEBUG},
		{"info", INFO},
		{"warn", WARN},
		{"error", ERROR},
		{"ERROR", ERROR},
		{"Info", INFO},
	}
	for _, tt := range tests {
		level, err := ParseLevel(tt.name)
		require.NoError(t, err, "уровень %q должен разбираться", tt.name)
		assert.Equal(t, tt.want, level)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err, "неизвестный уровень должен отклоняться")
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "TRACE", TRACE.String())
	assert.Equal(t, "DEBUG", DEBUG.String())
	assert.Equal(t, "INFO", INFO.String())
	assert.Equal(t, "WARN", WARN.String())
	assert.Equal(t, "ERROR", ERROR.String())
}

func TestLoggerManager_ReusesComponentLogger(t *testing.T) {
	lm := GetLoggerManager()
	defer lm.CloseAll()

	first := lm.MustGetLogger("world")
	second := lm.MustGetLogger("world")
	assert.Same(t, first, second, "повторный запрос должен возвращать тот же логгер")
}

func TestLoggerManager_SetLevelUnknownComponent(t *testing.T) {
	lm := GetLoggerManager()
	defer lm.CloseAll()

	err := lm.SetLevel("несуществующий", DEBUG)
	assert.Error(t, err)
}
