// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cube

import "math"

// vec3 is a point or direction in object or eye space.
type vec3 struct {
	X, Y, Z float64
}

func (a vec3) add(b vec3) vec3      { return vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a vec3) sub(b vec3) vec3      { return vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a vec3) scale(s float64) vec3 { return vec3{a.X * s, a.Y * s, a.Z * s} }
func (a vec3) dot(b vec3) float64   { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a vec3) length() float64      { return math.Sqrt(a.dot(a)) }

func (a vec3) normalize() vec3 {
	l := a.length()
	if l == 0 {
		return a
	}
	return a.scale(1 / l)
}

// mat4 is a 4x4 matrix indexed [row][col] acting on column vectors.
type mat4 [4][4]float64

func identity() mat4 {
	return mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// mul returns m*n, so that (m*n)v == m(nv).
func (m mat4) mul(n mat4) mat4 {
	var r mat4
	for i := range 4 {
		for j := range 4 {
			var s float64
			for k := range 4 {
				s += m[i][k] * n[k][j]
			}
			r[i][j] = s
		}
	}
	return r
}

func translate(x, y, z float64) mat4 {
	m := identity()
	m[0][3] = x
	m[1][3] = y
	m[2][3] = z
	return m
}

func rotateX(deg float64) mat4 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return mat4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

func rotateY(deg float64) mat4 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

func rotateZ(deg float64) mat4 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return mat4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// frustum returns a perspective projection for the given clip planes,
// matching glFrustum.
func frustum(left, right, bottom, top, near, far float64) mat4 {
	return mat4{
		{2 * near / (right - left), 0, (right + left) / (right - left), 0},
		{0, 2 * near / (top - bottom), (top + bottom) / (top - bottom), 0},
		{0, 0, -(far + near) / (far - near), -2 * far * near / (far - near)},
		{0, 0, -1, 0},
	}
}

// point transforms p as a position (w = 1) and returns x, y, z, w.
func (m mat4) point(p vec3) (x, y, z, w float64) {
	x = m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y = m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z = m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	w = m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]
	return x, y, z, w
}

// transformPoint transforms p as a position, dropping w. Only valid for
// affine matrices.
func (m mat4) transformPoint(p vec3) vec3 {
	x, y, z, _ := m.point(p)
	return vec3{x, y, z}
}

// transformDir transforms d by the upper 3x3 block.
func (m mat4) transformDir(d vec3) vec3 {
	return vec3{
		m[0][0]*d.X + m[0][1]*d.Y + m[0][2]*d.Z,
		m[1][0]*d.X + m[1][1]*d.Y + m[1][2]*d.Z,
		m[2][0]*d.X + m[2][1]*d.Y + m[2][2]*d.Z,
	}
}

// modelView returns the cube's pose for frame index: pushed 8 units into
// the screen and spun about all three axes at different rates.
func modelView(index int) mat4 {
	i := float64(index)
	return translate(0, 0, -8).
		mul(rotateX(45 + 0.25*i)).
		mul(rotateY(45 - 0.5*i)).
		mul(rotateZ(10 + 0.15*i))
}

// projection returns the perspective for a width x height viewport.
func projection(width, height int) mat4 {
	aspect := float64(height) / float64(width)
	return frustum(-2.8, 2.8, -2.8*aspect, 2.8*aspect, 6, 10)
}
