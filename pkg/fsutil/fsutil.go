// SPDX-License-Identifier: MPL-2.0

package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempFile creates a new temporary file in dir (os.TempDir() when dir is
// empty) named by pattern, per os.CreateTemp's own "*" placeholder rules,
// and returns its path alongside the still-open handle. Callers that only
// need the path should Close it immediately; Script factories that want
// to stream into it can keep writing before closing.
func TempFile(dir, pattern string) (path string, f *os.File, err error) {
	f, err = os.CreateTemp(dir, pattern)
	if err != nil {
		return "", nil, fmt.Errorf("fsutil: create temp file: %w", err)
	}
	return f.Name(), f, nil
}

// TempDir creates a new temporary directory under dir (os.TempDir() when
// dir is empty) named by pattern and returns its path.
func TempDir(dir, pattern string) (string, error) {
	path, err := os.MkdirTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("fsutil: create temp dir: %w", err)
	}
	return path, nil
}

// WriteTempFile creates a temporary file under dir named by pattern,
// writes data to it, and closes it, returning the final path. It exists
// for Scripts that need to hand a subprocess a path to pre-seeded
// content — a redirect target, an env file — rather than a stream.
func WriteTempFile(dir, pattern string, data []byte) (string, error) {
	path, f, err := TempFile(dir, pattern)
	if err != nil {
		return "", err
	}
	if _, werr := f.Write(data); werr != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("fsutil: write temp file: %w", werr)
	}
	if cerr := f.Close(); cerr != nil {
		os.Remove(path)
		return "", fmt.Errorf("fsutil: close temp file: %w", cerr)
	}
	return path, nil
}

// EnsureDir creates dir and any missing parents, matching the working
// directory a process spawner is handed needing to exist up front rather
// than failing deep inside exec.Cmd.Start.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("fsutil: ensure dir %q: %w", dir, err)
	}
	return nil
}

// ReadFile reads the whole file at path, resolving it against base first
// when path is relative — the same small convenience
// internal/runtime/dotenv.go used for locating an optional .env file next
// to a working directory.
func ReadFile(base, path string) ([]byte, error) {
	full := path
	if !filepath.IsAbs(path) {
		full = filepath.Join(base, path)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("fsutil: read %q: %w", full, err)
	}
	return data, nil
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
