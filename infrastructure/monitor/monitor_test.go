package monitor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"wincluster-go/validate"
)

func TestRecordRun(t *testing.T) {
	m := New(DefaultConfig())
	m.now = func() time.Time { return time.Unix(1700000000, 0) }

	m.RecordRun(validate.Result{Errors: []string{"a", "b"}, Hosts: []string{"n1"}})
	if got := testutil.ToFloat64(m.errors); got != 2 {
		t.Errorf("Expected errors to be 2, got %f", got)
	}
	if got := testutil.ToFloat64(m.success); got != 0 {
		t.Errorf("Expected success to be 0, got %f", got)
	}
	if got := testutil.ToFloat64(m.hosts); got != 1 {
		t.Errorf("Expected hosts to be 1, got %f", got)
	}

	m.RecordRun(validate.Result{Hosts: []string{"n1", "n2"}})
	if got := testutil.ToFloat64(m.runs); got != 2 {
		t.Errorf("Expected runs to be 2, got %f", got)
	}
	if got := testutil.ToFloat64(m.success); got != 1 {
		t.Errorf("Expected success to be 1, got %f", got)
	}
	if got := testutil.ToFloat64(m.lastRunSec); got != 1700000000 {
		t.Errorf("Expected last run timestamp, got %f", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New(DefaultConfig())
	m.RecordRun(validate.Result{Hosts: []string{"n1", "n2"}})

	path := filepath.Join(t.TempDir(), "wincluster.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	for _, name := range []string{"wincluster_validation_runs_total 1", "wincluster_inventory_hosts 2", "wincluster_validation_success 1"} {
		if !strings.Contains(string(raw), name) {
			t.Errorf("textfile missing %q:\n%s", name, raw)
		}
	}
}

func TestWriteTextfileBadDir(t *testing.T) {
	m := New(DefaultConfig())
	if err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
