// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build nogpu

package probe

// Default always fails in builds without GPU support.
func Default() ([]Adapter, error) {
	return nil, ErrNoBackend
}
