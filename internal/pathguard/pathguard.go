// Package pathguard validates and normalizes filesystem paths used during
// generation, rejecting anything that would escape the project root.
//
// Every path the store mutates, and every working directory handed to a
// subprocess, must pass through this package first. It is the sole defense
// against a crafted project name or template path writing outside the
// target directory.
package pathguard

import (
	"fmt"
	"path/filepath"
	"strings"
)

// TraversalError indicates a path that escapes the intended root after
// normalization.
type TraversalError struct {
	Path string
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("path %q escapes the project root", e.Path)
}

// Normalize cleans a root-relative path and rejects it if it is absolute or
// still reaches outside the root after resolving "." and ".." segments.
// The returned path is slash-separated by the OS convention and safe to
// join onto a root directory.
func Normalize(rel string) (string, error) {
	if rel == "" {
		return "", &TraversalError{Path: rel}
	}
	if filepath.IsAbs(rel) {
		return "", &TraversalError{Path: rel}
	}

	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", &TraversalError{Path: rel}
	}
	return cleaned, nil
}

// Within normalizes rel and joins it onto root, guaranteeing the result
// stays confined to root. Returns the absolute joined path.
func Within(root, rel string) (string, error) {
	cleaned, err := Normalize(rel)
	if err != nil {
		return "", err
	}

	joined := filepath.Join(root, cleaned)

	// Belt and braces: verify the join really is under root.
	inside, err := filepath.Rel(root, joined)
	if err != nil {
		return "", &TraversalError{Path: rel}
	}
	if inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return "", &TraversalError{Path: rel}
	}
	return joined, nil
}
