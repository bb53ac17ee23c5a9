// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package probe

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Register the Vulkan HAL backend.
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// Default enumerates adapters through the Vulkan backend.
func Default() ([]Adapter, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, ErrNoBackend
	}
	return Enumerate(backend)
}
