package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/pkg/logger"
)

func TestRunReturnsStorageErrors(t *testing.T) {
	// A regular file where the storage directory should be.
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	cfg := &config.Config{
		Server:  config.ServerConfig{Port: "0"},
		API:     config.APIConfig{BaseURL: "http://127.0.0.1:1"},
		Storage: config.StorageConfig{Provider: config.StorageFile, FilePath: filepath.Join(blocker, "localstorage.json"), CartKey: "cart"},
	}

	err := run(cfg, logger.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open storage")
}

func TestOpenStorageMemory(t *testing.T) {
	b, err := openStorage(&config.Config{Storage: config.StorageConfig{Provider: config.StorageMemory}}, logger.Discard())
	require.NoError(t, err)
	assert.NoError(t, b.health())
	assert.NoError(t, b.close())
}
