package logger_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonesrussell/north-cloud/ercwiki/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEntries(t *testing.T, path string) []map[string]any {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestNew_JSONFieldsAndLevels(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.log")
	log, err := logger.New(&logger.Config{
		Level:       logger.InfoLevel,
		Encoding:    "json",
		OutputPaths: []string{path},
	})
	require.NoError(t, err)

	log.Debug("hidden")
	log.WithComponent("publisher").WithRunID("run-1").Info("Created page", "title", "A Study", "labels", 3)
	log.Warn("Invalid URL", "error", errors.New("not a url"))
	require.NoError(t, log.Sync())

	entries := readEntries(t, path)
	require.Len(t, entries, 2)

	assert.Equal(t, "Created page", entries[0]["msg"])
	assert.Equal(t, "publisher", entries[0]["component"])
	assert.Equal(t, "run-1", entries[0]["run_id"])
	assert.Equal(t, "A Study", entries[0]["title"])
	assert.InDelta(t, 3, entries[0]["labels"], 0)

	assert.Equal(t, "WARN", entries[1]["level"])
	assert.Equal(t, "not a url", entries[1]["error"])
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := logger.New(&logger.Config{Level: "loud"})
	require.ErrorIs(t, err, logger.ErrInvalidLevel)

	_, err = logger.New(&logger.Config{Encoding: "xml"})
	require.ErrorIs(t, err, logger.ErrInvalidEncoding)
}

func TestNew_DefaultsWhenNil(t *testing.T) {
	t.Parallel()

	log, err := logger.New(nil)
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestNoOpLogger(t *testing.T) {
	t.Parallel()

	log := logger.NewNoOp()
	log.Info("ignored", "key", "value")
	assert.Same(t, log, log.With("k", "v"))
	assert.Same(t, log, log.WithComponent("x"))
	assert.NoError(t, log.Sync())
}
