// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cube renders a lit, rotating cube into an offscreen gg context.
//
// The scene is a deterministic function of the frame index: the cube sits
// 8 units in front of the eye and turns about X, Y and Z at 0.25, -0.5 and
// 0.15 degrees per frame. Faces are shaded with a single diffuse point
// light, back faces are culled and the rest are painted far to near.
//
// Rasterization uses gg's analytic CPU filler. WithAccelerator(true) lets
// gg hand fills to a registered GPU accelerator (blank import of
// github.com/gogpu/gg/gpu); the accelerator is flushed before every
// readback, and a failed flush moves the scene back to the CPU for the
// current and all later frames.
//
// Scene implements cubecap.Renderer:
//
//	scene := cube.New(cube.WithLabel(false))
//	if err := scene.Initialize(); err != nil {
//	    return err
//	}
//	defer scene.Close()
//	if err := scene.ConfigureViewport(800, 800); err != nil {
//	    return err
//	}
package cube
