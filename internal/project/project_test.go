// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestLayout(t *testing.T) {
	l := NewLayout("/proj")
	assert.Equal(t, filepath.Join("/proj", "school"), l.School())
	assert.Equal(t, filepath.Join("/proj", "templates", "standard_preamble.tex"), l.DefaultTemplate())

	assert.Equal(t, ".", NewLayout("").Root)
}

func TestFindTexFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.tex"))
	touch(t, filepath.Join(dir, "a.tex"))
	touch(t, filepath.Join(dir, "notes.md"))
	touch(t, filepath.Join(dir, "sub", "deep.tex"))

	// Single file.
	files, err := FindTexFiles(filepath.Join(dir, "a.tex"), false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.tex")}, files)

	// Non-tex file rejected.
	_, err = FindTexFiles(filepath.Join(dir, "notes.md"), false)
	assert.Error(t, err)

	// Directory, non-recursive: sorted, subtree excluded.
	files, err = FindTexFiles(dir, false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.tex"), filepath.Join(dir, "b.tex")}, files)

	// Recursive includes the subtree.
	files, err = FindTexFiles(dir, true)
	require.NoError(t, err)
	assert.Len(t, files, 3)
	assert.Contains(t, files, filepath.Join(dir, "sub", "deep.tex"))

	_, err = FindTexFiles(filepath.Join(dir, "missing"), false)
	assert.Error(t, err)
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "tpl.tex")
	require.NoError(t, os.WriteFile(good, []byte(`\documentclass{article}`), 0o644))
	tpl, err := LoadTemplate(good)
	require.NoError(t, err)
	assert.Equal(t, `\documentclass{article}`, tpl)

	empty := filepath.Join(dir, "empty.tex")
	require.NoError(t, os.WriteFile(empty, []byte("  \n\t\n"), 0o644))
	_, err = LoadTemplate(empty)
	assert.Error(t, err)

	_, err = LoadTemplate(filepath.Join(dir, "missing.tex"))
	assert.Error(t, err)
}
