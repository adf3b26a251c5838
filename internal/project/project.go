// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package project knows the on-disk layout of a lecture-notes project and
// finds the documents the toolchain operates on.
package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Layout resolves the fixed directories of a notes project relative to its
// root: school/ holds sources, templates/ the shared preamble, output/ the
// finished PDFs and run history.
type Layout struct {
	Root string
}

// NewLayout builds a layout rooted at root, or the working directory when
// root is empty.
func NewLayout(root string) Layout {
	if root == "" {
		root = "."
	}
	return Layout{Root: root}
}

func (l Layout) School() string { return filepath.Join(l.Root, "school") }

func (l Layout) Templates() string { return filepath.Join(l.Root, "templates") }

func (l Layout) Output() string { return filepath.Join(l.Root, "output") }

// DefaultTemplate is the conventional location of the shared preamble.
func (l Layout) DefaultTemplate() string {
	return filepath.Join(l.Templates(), "standard_preamble.tex")
}

// FindTexFiles resolves a path argument into the .tex files to process. A
// file path must name a .tex file. A directory yields its .tex entries, or
// the whole subtree when recursive is set. Results are sorted so batch runs
// are deterministic.
func FindTexFiles(path string, recursive bool) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		if !strings.EqualFold(filepath.Ext(path), ".tex") {
			return nil, fmt.Errorf("%s is not a .tex file", path)
		}
		return []string{path}, nil
	}

	var files []string
	if recursive {
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".tex") {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", path, err)
		}
	} else {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".tex") {
				files = append(files, filepath.Join(path, e.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// LoadTemplate reads the shared preamble template and rejects an empty file;
// splicing an empty template would silently strip every document's preamble.
func LoadTemplate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return "", fmt.Errorf("template %s is empty", path)
	}
	return string(data), nil
}
