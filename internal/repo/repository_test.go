package repo_test

import (
	"testing"

	"urlmonitor/internal/repo"
	"urlmonitor/internal/repo/memory"
	pg "urlmonitor/internal/repo/postgres"
	sq "urlmonitor/internal/repo/sqlite"
)

// Compile-time interface satisfaction checks.
// Using an external test package avoids an import cycle.
func TestInterfaceSatisfaction(t *testing.T) {
	var _ repo.ResultStore = memory.New()
	var _ repo.ResultStore = (*sq.Store)(nil)
	var _ repo.ResultStore = (*pg.Store)(nil)
}
