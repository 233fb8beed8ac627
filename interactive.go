package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	gitignore "github.com/monochromegane/go-gitignore"
)

// loadIgnoreMatcher reads root/.gitignore. It returns nil when there is none.
func loadIgnoreMatcher(root string) gitignore.IgnoreMatcher {
	gitIgnorePath := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(gitIgnorePath); err != nil {
		return nil
	}
	matcher, err := gitignore.NewGitIgnore(gitIgnorePath, root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not parse .gitignore file %s: %v\n", gitIgnorePath, err)
		return nil
	}
	return matcher
}

// findCandidates lists regular, non-hidden files under root, skipping
// anything matched by root/.gitignore unless noIgnore is set.
func findCandidates(root string, noIgnore bool) ([]string, error) {
	var ignoreMatcher gitignore.IgnoreMatcher
	if !noIgnore {
		ignoreMatcher = loadIgnoreMatcher(root)
	}

	candidates := []string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Unreadable entries are simply not offered
		}
		if path == root {
			return nil
		}
		if isHidden(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		// Walk paths share root as prefix, which is the matcher's base.
		if ignoreMatcher != nil && ignoreMatcher.Match(path, d.IsDir()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			candidates = append(candidates, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning for files: %w", err)
	}
	return candidates, nil
}

// runInteractiveFinder lets the user pick input files with a fuzzy finder.
// It returns nil, nil when the user aborts.
func runInteractiveFinder(noIgnore bool) ([]string, error) {
	candidates, err := findCandidates(".", noIgnore)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no files found to select from")
	}

	idx, err := fuzzyfinder.FindMulti(
		candidates,
		func(i int) string {
			return candidates[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select files to count. Press Tab to multi-select, Enter to confirm."
			}
			path := candidates[i]
			info, statErr := os.Stat(path)
			if statErr != nil {
				return fmt.Sprintf("Path: %s\nError getting info: %v", path, statErr)
			}
			return fmt.Sprintf("Path: %s\nSize: %d bytes", path, info.Size())
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, fmt.Errorf("fuzzy finder error: %w", err)
	}

	selected := make([]string, len(idx))
	for i, index := range idx {
		selected[i] = candidates[index]
	}
	return selected, nil
}

// isHidden reports whether a base name starts with '.'.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return len(name) > 0 && name[0] == '.'
}
