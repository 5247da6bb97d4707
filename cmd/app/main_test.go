package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRunConfig(t *testing.T, feedsDir, outputDir string) string {
	t.Helper()

	body := fmt.Sprintf(`
logging:
  level: error
  dir: %q
feeds:
  dir: %q
output:
  dir: %q
  console: false
storage:
  enabled: false
`, t.TempDir(), feedsDir, outputDir)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRun_MissingConfig(t *testing.T) {
	assert.Equal(t, 1, run(filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestRun_SetupFailureReturnsCode(t *testing.T) {
	// Output dir is a regular file, so the history files cannot be opened.
	blocker := filepath.Join(t.TempDir(), "output")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	assert.Equal(t, 1, run(writeRunConfig(t, t.TempDir(), blocker)))
}

func TestRun_WritesHistoryBeforeExit(t *testing.T) {
	feeds := t.TempDir()
	out := t.TempDir()
	trade := "91282CFX4,T1,99-160,TRSY1,1000000,BUY\n"
	require.NoError(t, os.WriteFile(filepath.Join(feeds, "trades.txt"), []byte(trade), 0644))

	require.Equal(t, 0, run(writeRunConfig(t, feeds, out)))

	b, err := os.ReadFile(filepath.Join(out, "positions.txt"))
	require.NoError(t, err)
	assert.Equal(t, "91282CFX4,1000000,0,0,1000000\n", string(b))
}
