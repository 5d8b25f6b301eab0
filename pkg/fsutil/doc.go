// SPDX-License-Identifier: MPL-2.0

// Package fsutil supplies tempfile and directory helpers for loading
// small configuration-shaped files off disk, built on os.ReadFile and
// filepath.
package fsutil
