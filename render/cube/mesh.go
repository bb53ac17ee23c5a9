// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cube

import "github.com/gogpu/gg"

// face is one side of the unit cube. Corners wind counter-clockwise when
// seen from outside.
type face struct {
	normal  vec3
	corners [4]vec3
	color   gg.RGBA
}

// faces is the cube spanning [-1, 1] on every axis.
var faces = [6]face{
	{ // front
		normal:  vec3{0, 0, 1},
		corners: [4]vec3{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},
		color:   gg.RGB(0, 0, 1),
	},
	{ // back
		normal:  vec3{0, 0, -1},
		corners: [4]vec3{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}},
		color:   gg.RGB(1, 0, 1),
	},
	{ // right
		normal:  vec3{1, 0, 0},
		corners: [4]vec3{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}},
		color:   gg.RGB(0, 1, 1),
	},
	{ // left
		normal:  vec3{-1, 0, 0},
		corners: [4]vec3{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}},
		color:   gg.RGB(1, 1, 0),
	},
	{ // top
		normal:  vec3{0, 1, 0},
		corners: [4]vec3{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}},
		color:   gg.RGB(0, 1, 0),
	},
	{ // bottom
		normal:  vec3{0, -1, 0},
		corners: [4]vec3{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}},
		color:   gg.RGB(1, 0, 0),
	},
}

// center returns the midpoint of the face.
func (f *face) center() vec3 {
	var c vec3
	for _, p := range f.corners {
		c = c.add(p)
	}
	return c.scale(0.25)
}
