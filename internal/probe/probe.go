// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package probe lists the GPU adapters visible through the wgpu HAL.
//
// The result is diagnostic: cubecap prints the adapters in verbose mode and
// only refuses to run when the user asks for a GPU explicitly.
package probe

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Errors returned by Enumerate and Default.
var (
	// ErrNoBackend is returned when no HAL backend is compiled in or the
	// platform backend is unavailable.
	ErrNoBackend = errors.New("probe: no GPU backend available")

	// ErrNoAdapters is returned when a backend reports zero adapters.
	ErrNoAdapters = errors.New("probe: no GPU adapters found")
)

// Adapter describes one physical or virtual GPU.
type Adapter struct {
	Name       string
	DeviceType gputypes.DeviceType
}

// String returns the adapter name and its device class.
func (a Adapter) String() string {
	return fmt.Sprintf("%s (%s)", a.Name, deviceTypeName(a.DeviceType))
}

// InstanceFactory creates HAL instances. hal.Backend implementations and
// noop.API satisfy it.
type InstanceFactory interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// Enumerate creates a short-lived instance from f and lists its adapters.
// The instance is destroyed before returning.
func Enumerate(f InstanceFactory) ([]Adapter, error) {
	if f == nil {
		return nil, ErrNoBackend
	}
	instance, err := f.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("probe: create instance: %w", err)
	}
	defer instance.Destroy()

	exposed := instance.EnumerateAdapters(nil)
	if len(exposed) == 0 {
		return nil, ErrNoAdapters
	}

	adapters := make([]Adapter, 0, len(exposed))
	for i := range exposed {
		adapters = append(adapters, Adapter{
			Name:       exposed[i].Info.Name,
			DeviceType: exposed[i].Info.DeviceType,
		})
	}
	return adapters, nil
}

// Choose picks the adapter a renderer would use: the first discrete GPU,
// else the first integrated GPU, else the first adapter listed.
func Choose(adapters []Adapter) (Adapter, bool) {
	if len(adapters) == 0 {
		return Adapter{}, false
	}
	for _, want := range []gputypes.DeviceType{gputypes.DeviceTypeDiscreteGPU, gputypes.DeviceTypeIntegratedGPU} {
		for _, a := range adapters {
			if a.DeviceType == want {
				return a, true
			}
		}
	}
	return adapters[0], true
}

func deviceTypeName(t gputypes.DeviceType) string {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return "discrete"
	case gputypes.DeviceTypeIntegratedGPU:
		return "integrated"
	default:
		return "other"
	}
}
