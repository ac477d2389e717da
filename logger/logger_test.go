package logger

import (
	"strings"
	"testing"

	"github.com/healthai/riskpanel/config"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetBuffer() {
	bufMu.Lock()
	logBuffer = nil
	bufMu.Unlock()
}

func TestGetLogsFiltersBySeverity(t *testing.T) {
	resetBuffer()

	Debug("debug line")
	Info("info line")
	Warningf("warn %d", 1)
	Error("error line")

	warn := GetLogs(10, "WARNING")
	require.Len(t, warn, 2)
	assert.True(t, strings.HasSuffix(warn[0], "error line"))
	assert.True(t, strings.HasSuffix(warn[1], "warn 1"))

	all := GetLogs(10, "DEBUG")
	assert.Len(t, all, 4)
}

func TestGetLogsRespectsCount(t *testing.T) {
	resetBuffer()
	for i := 0; i < 5; i++ {
		Infof("line %d", i)
	}

	out := GetLogs(2, "INFO")
	require.Len(t, out, 2)
	assert.True(t, strings.HasSuffix(out[0], "line 4"))
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel(config.Warn)
	require.NoError(t, err)
	assert.Equal(t, logging.WARNING, lvl)

	_, err = ParseLevel(config.LogLevel("loud"))
	assert.Error(t, err)
}
