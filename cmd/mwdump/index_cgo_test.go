//go:build cgo

package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	db := filepath.Join(t.TempDir(), "pages.sqlite")
	path := writeDump(t, testDump)

	res := execute(t, t.Context(), "index", "--db", db, path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "2 pages, 3 revisions")

	// Re-indexing replaces rows instead of duplicating them.
	res = execute(t, t.Context(), "index", "--db", db, path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "2 pages, 3 revisions")
}

func TestIndexFromEnvironment(t *testing.T) {
	db := filepath.Join(t.TempDir(), "env.sqlite")
	t.Setenv("MWDUMP_INDEX_DB", db)

	res := execute(t, t.Context(), "index", writeDump(t, testDump))
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, db)
}
