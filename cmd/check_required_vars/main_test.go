package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validVars = `cluster_name: CLUS1
cluster_ip: 10.0.0.5
cluster_nodes:
  - n1
  - n2
`
	validInventory = `[windows_cluster_nodes]
n1
n2
`
)

func setupRepo(t *testing.T, vars, inv string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "group_vars"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "inventory"), 0o755))
	if vars != "" {
		require.NoError(t, os.WriteFile(filepath.Join(root, "group_vars", "windows_cluster_nodes.yml"), []byte(vars), 0o644))
	}
	if inv != "" {
		require.NoError(t, os.WriteFile(filepath.Join(root, "inventory", "hosts.ini"), []byte(inv), 0o644))
	}
	t.Setenv("WINCLUSTER_ROOT", root)
	t.Setenv("WINCLUSTER_LOG_LEVEL", "")
	t.Setenv("WINCLUSTER_METRICS_TEXTFILE", "")
	return root
}

func TestExecuteSuccess(t *testing.T) {
	setupRepo(t, validVars, validInventory)
	var stdout, stderr bytes.Buffer

	code := execute(nil, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "Validation succeeded — required variables and inventory look good.\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestExecuteFailureReport(t *testing.T) {
	setupRepo(t, "cluster_ip: 10.0.0.5\ncluster_nodes: [n1]\nquorum_mode: FileShareWitness\n",
		"[windows_cluster_nodes]\nn1\n# n3\n")
	var stdout, stderr bytes.Buffer

	code := execute(nil, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Equal(t, `Validation FAILED:

 - cluster_name must be set to a non-empty string in group_vars/windows_cluster_nodes.yml
 - cluster_nodes must be a list with at least two hostnames in group_vars/windows_cluster_nodes.yml
 - quorum_witness_path must be set (non-empty string) when quorum_mode requires a file share witness
 - inventory/hosts.ini must contain at least two hosts in the [windows_cluster_nodes] section
`, stdout.String())
}

func TestExecuteParseError(t *testing.T) {
	setupRepo(t, "cluster_name: [oops\n", validInventory)
	var stdout, stderr bytes.Buffer

	code := execute(nil, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "parse yaml")
}

func TestExecuteRejectsArguments(t *testing.T) {
	setupRepo(t, validVars, validInventory)
	var stdout, stderr bytes.Buffer

	code := execute([]string{"extra"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, stderr.String())
}

func TestMissingDependencyExitCode(t *testing.T) {
	setupRepo(t, validVars, validInventory)
	var stdout, stderr bytes.Buffer
	a, err := newApp(&stdout, &stderr)
	require.NoError(t, err)
	defer a.close()
	a.runner.Decode = nil

	assert.Equal(t, 2, a.check())
	assert.Equal(t, "Missing dependency: YAML decoder is not available\n", stdout.String())
}

func TestMetricsTextfile(t *testing.T) {
	setupRepo(t, validVars, validInventory)
	textfile := filepath.Join(t.TempDir(), "wincluster.prom")
	t.Setenv("WINCLUSTER_METRICS_TEXTFILE", textfile)
	var stdout, stderr bytes.Buffer

	require.Equal(t, 0, execute(nil, &stdout, &stderr))
	raw, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "wincluster_validation_success 1")
}

func TestVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, execute([]string{"version"}, &stdout, &stderr))
	assert.True(t, strings.HasPrefix(stdout.String(), "check_required_vars dev\n"))
}

// syncBuffer guards a buffer written from the reloader goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestWatchRevalidatesOnChange(t *testing.T) {
	root := setupRepo(t, validVars, "[windows_cluster_nodes]\nn1\n")
	var stdout, stderr syncBuffer
	a, err := newApp(&stdout, &stderr)
	require.NoError(t, err)
	defer a.close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.watch(ctx, 10*time.Millisecond, 10*time.Millisecond) }()

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "Validation FAILED:")
	}, 2*time.Second, 10*time.Millisecond)

	// give the watcher a moment to register before the fix lands
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "inventory", "hosts.ini"), []byte(validInventory), 0o644))

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "Validation succeeded")
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestRunnerLoggerCarriesRoot(t *testing.T) {
	setupRepo(t, validVars, validInventory)
	a, err := newApp(&bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)
	defer a.close()

	require.NotNil(t, a.runner.Logger)
	assert.NotSame(t, a.log.Logger, a.runner.Logger, "runner logs through a child logger with the root field")
}
