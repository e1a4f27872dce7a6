package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"local", "remote", "seed", "alert-probability", "refresh", "timeout", "log-file", "log-level"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}

	local, err := cmd.Flags().GetBool("local")
	require.NoError(t, err)
	assert.True(t, local)
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tui.log")

	logger, closeLog, err := newLogger(path, "info")
	require.NoError(t, err)
	logger.Info("hello", "widget", "alerts")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "widget=alerts")
}

func TestNewLogger_Discard(t *testing.T) {
	logger, closeLog, err := newLogger("", "debug")
	require.NoError(t, err)
	defer closeLog()
	logger.Info("dropped")
}
