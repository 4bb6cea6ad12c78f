package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	log, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("hello")
	_ = log.Sync()

	b, err := os.ReadFile(filepath.Join(dir, "urlmonitor.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(b) == 0 {
		t.Fatalf("expected log output in file")
	}
}
