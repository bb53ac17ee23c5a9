// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package probe

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

func TestEnumerate_Noop(t *testing.T) {
	adapters, err := Enumerate(&noop.API{})
	if err != nil {
		t.Fatalf("Enumerate() error = %v", err)
	}
	if len(adapters) == 0 {
		t.Fatal("Enumerate() returned no adapters")
	}
	if _, ok := Choose(adapters); !ok {
		t.Error("Choose() should pick an adapter from a non-empty list")
	}
}

func TestEnumerate_Nil(t *testing.T) {
	if _, err := Enumerate(nil); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Enumerate(nil) error = %v, want ErrNoBackend", err)
	}
}

type failingFactory struct{}

var errNoDriver = errors.New("no driver")

func (failingFactory) CreateInstance(*hal.InstanceDescriptor) (hal.Instance, error) {
	return nil, errNoDriver
}

func TestEnumerate_CreateInstanceError(t *testing.T) {
	_, err := Enumerate(failingFactory{})
	if !errors.Is(err, errNoDriver) {
		t.Errorf("Enumerate() error = %v, want wrapped errNoDriver", err)
	}
}

// otherDeviceType returns a device type that is neither discrete nor
// integrated.
func otherDeviceType() gputypes.DeviceType {
	for d := gputypes.DeviceType(0); ; d++ {
		if d != gputypes.DeviceTypeDiscreteGPU && d != gputypes.DeviceTypeIntegratedGPU {
			return d
		}
	}
}

func TestChoose(t *testing.T) {
	cpu := Adapter{Name: "llvmpipe", DeviceType: otherDeviceType()}
	igpu := Adapter{Name: "Intel UHD", DeviceType: gputypes.DeviceTypeIntegratedGPU}
	dgpu := Adapter{Name: "Radeon", DeviceType: gputypes.DeviceTypeDiscreteGPU}

	tests := []struct {
		name     string
		adapters []Adapter
		want     Adapter
		wantOK   bool
	}{
		{"empty", nil, Adapter{}, false},
		{"only other", []Adapter{cpu}, cpu, true},
		{"integrated over other", []Adapter{cpu, igpu}, igpu, true},
		{"discrete over integrated", []Adapter{igpu, cpu, dgpu}, dgpu, true},
		{"first discrete wins", []Adapter{dgpu, {Name: "second", DeviceType: gputypes.DeviceTypeDiscreteGPU}}, dgpu, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Choose(tt.adapters)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Choose() = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestAdapterString(t *testing.T) {
	a := Adapter{Name: "Radeon", DeviceType: gputypes.DeviceTypeDiscreteGPU}
	if got := a.String(); got != "Radeon (discrete)" {
		t.Errorf("String() = %q, want %q", got, "Radeon (discrete)")
	}
	b := Adapter{Name: "Intel", DeviceType: gputypes.DeviceTypeIntegratedGPU}
	if !strings.Contains(b.String(), "integrated") {
		t.Errorf("String() = %q, want integrated", b.String())
	}
	if c := (Adapter{Name: "soft", DeviceType: otherDeviceType()}); !strings.Contains(c.String(), "other") {
		t.Errorf("String() = %q, want other", c.String())
	}
}
