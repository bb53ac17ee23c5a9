// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cube

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/cubecap"
	"github.com/gogpu/cubecap/pixbuf"
)

// Errors returned by Scene.
var (
	// ErrNotInitialized is returned when a Scene is used before Initialize
	// or after Close.
	ErrNotInitialized = errors.New("cube: scene not initialized")

	// ErrNoViewport is returned when rendering before ConfigureViewport.
	ErrNoViewport = errors.New("cube: viewport not configured")

	// ErrBufferMismatch is returned by ReadPixels when the destination does
	// not match the viewport size or is not RGBA8.
	ErrBufferMismatch = errors.New("cube: buffer does not match framebuffer")
)

// readbackFormat is the layout of the gg pixmap handed to ReadPixels.
const readbackFormat = gputypes.TextureFormatRGBA8Unorm

// lightPos is the diffuse light position in eye space.
var lightPos = vec3{2, 2, 20}

var _ cubecap.Renderer = (*Scene)(nil)

// Option configures a Scene during creation.
type Option func(*Scene)

// WithLabel enables or disables the frame counter drawn along the bottom
// edge. Enabled by default.
func WithLabel(enabled bool) Option {
	return func(s *Scene) {
		s.label = enabled
	}
}

// WithAccelerator lets gg route face fills to its registered GPU
// accelerator. Disabled by default: every frame is rasterized on the CPU.
// When a GPU flush fails the scene re-renders the frame on the CPU and
// stays there for the rest of its life.
func WithAccelerator(enabled bool) Option {
	return func(s *Scene) {
		s.useAccelerator = enabled
	}
}

// WithBackground sets the clear color. The default is mid gray.
func WithBackground(c gg.RGBA) Option {
	return func(s *Scene) {
		s.background = c
	}
}

// Scene is an offscreen cube renderer. It is not safe for concurrent use.
type Scene struct {
	label          bool
	background     gg.RGBA
	useAccelerator bool

	initialized bool
	font        *text.FontSource
	accel       string
	cpuOnly     bool

	// flush pushes pending accelerator work into the pixmap.
	flush     func() error
	lastIndex int

	dc         *gg.Context
	width      int
	height     int
	projection mat4
}

// New creates a scene. Call Initialize before use.
func New(opts ...Option) *Scene {
	s := &Scene{
		label:      true,
		background: gg.RGB(0.5, 0.5, 0.5),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the label font and records which accelerator gg will
// use. Calling it again after success is a no-op.
func (s *Scene) Initialize() error {
	if s.initialized {
		return nil
	}

	if s.label {
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			return fmt.Errorf("cube: load label font: %w", err)
		}
		s.font = src
	}

	s.accel = "none"
	if a := gg.Accelerator(); a != nil {
		s.accel = a.Name()
	}
	s.cpuOnly = !s.useAccelerator || s.accel == "none"
	s.initialized = true

	cubecap.Logger().Debug("cube: initialized",
		"accelerator", s.accel, "gpu", !s.cpuOnly, "label", s.label)
	return nil
}

// ConfigureViewport sizes the framebuffer and recomputes the projection.
func (s *Scene) ConfigureViewport(width, height int) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("cube: invalid viewport %dx%d", width, height)
	}

	if s.dc == nil {
		s.dc = gg.NewContext(width, height)
		s.flush = s.dc.FlushGPU
	} else if err := s.dc.Resize(width, height); err != nil {
		return fmt.Errorf("cube: %w", err)
	}
	s.applyRasterizer()
	if s.font != nil {
		s.dc.SetFont(s.font.Face(labelSize(height)))
	}

	s.width, s.height = width, height
	s.projection = projection(width, height)
	cubecap.Logger().Debug("cube: viewport", "width", width, "height", height)
	return nil
}

// projectedFace is a visible face ready to be filled.
type projectedFace struct {
	points [4][2]float64
	depth  float64
	color  gg.RGBA
}

// RenderFrame draws frame index.
func (s *Scene) RenderFrame(index int) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if s.dc == nil {
		return ErrNoViewport
	}

	s.lastIndex = index
	return s.draw(index)
}

// draw rasterizes frame index into the context.
func (s *Scene) draw(index int) error {
	s.dc.ClearWithColor(s.background)

	visible := s.project(modelView(index))
	for i := range visible {
		f := &visible[i]
		s.dc.SetRGBA(f.color.R, f.color.G, f.color.B, 1)
		s.dc.MoveTo(f.points[0][0], f.points[0][1])
		for _, p := range f.points[1:] {
			s.dc.LineTo(p[0], p[1])
		}
		s.dc.ClosePath()
		if err := s.dc.Fill(); err != nil {
			return fmt.Errorf("cube: fill face: %w", err)
		}
	}

	if s.label && s.font != nil {
		s.dc.SetRGBA(1, 1, 1, 1)
		s.dc.DrawStringAnchored("frame "+strconv.Itoa(index),
			float64(s.width)/2, float64(s.height)-labelSize(s.height), 0.5, 0)
	}
	return nil
}

// project returns the front-facing faces in screen space, farthest first.
func (s *Scene) project(mv mat4) []projectedFace {
	out := make([]projectedFace, 0, 3)
	for i := range faces {
		f := &faces[i]
		center := mv.transformPoint(f.center())
		normal := mv.transformDir(f.normal)

		// The eye is at the origin; faces whose normal points away are hidden.
		if normal.dot(center) >= 0 {
			continue
		}

		diffuse := math.Max(0, normal.dot(lightPos.sub(center).normalize()))
		pf := projectedFace{
			depth: center.Z,
			color: gg.RGB(f.color.R*diffuse, f.color.G*diffuse, f.color.B*diffuse),
		}
		for j, c := range f.corners {
			pf.points[j] = s.toScreen(mv.transformPoint(c))
		}
		out = append(out, pf)
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].depth < out[b].depth })
	return out
}

// toScreen projects an eye-space point to pixel coordinates with y down.
func (s *Scene) toScreen(p vec3) [2]float64 {
	x, y, _, w := s.projection.point(p)
	ndcX, ndcY := x/w, y/w
	return [2]float64{
		(ndcX + 1) * 0.5 * float64(s.width),
		(1 - ndcY) * 0.5 * float64(s.height),
	}
}

// ReadPixels copies the framebuffer into buf, honoring buf's row origin.
func (s *Scene) ReadPixels(buf *pixbuf.Buffer) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if s.dc == nil {
		return ErrNoViewport
	}
	if buf.Format() != pixbuf.FormatRGBA8 || buf.Width() != s.width || buf.Height() != s.height {
		return fmt.Errorf("%w: got %s %dx%d, framebuffer is %s %dx%d", ErrBufferMismatch,
			buf.Format(), buf.Width(), buf.Height(), formatName(readbackFormat), s.width, s.height)
	}

	if !s.cpuOnly {
		if err := s.flush(); err != nil {
			cubecap.Logger().Warn("cube: GPU flush failed, continuing on CPU",
				"accelerator", s.accel, "frame", s.lastIndex, "err", err)
			s.fallbackToCPU()
			if err := s.draw(s.lastIndex); err != nil {
				return err
			}
		}
	}

	src := s.dc.ResizeTarget().Data()
	stride := s.width * 4
	for y := range s.height {
		copy(buf.ImageRow(y), src[y*stride:(y+1)*stride])
	}
	return nil
}

// DescribeCapabilities reports the rasterizer, accelerator, readback format
// and viewport.
func (s *Scene) DescribeCapabilities() string {
	viewport := "unset"
	if s.dc != nil {
		viewport = fmt.Sprintf("%dx%d", s.width, s.height)
	}
	accel := s.accel
	switch {
	case accel == "" || accel == "none":
		accel = "none"
	case s.cpuOnly:
		accel += " (registered by gg, not used)"
	default:
		accel += " (in use)"
	}
	return fmt.Sprintf("Rasterizer: gg software\nAccelerator: %s\nReadback format: %s\nViewport: %s",
		accel, formatName(readbackFormat), viewport)
}

// applyRasterizer pins fills to the analytic CPU filler and the label to
// the CPU bitmap text path unless the accelerator is in use.
func (s *Scene) applyRasterizer() {
	if s.cpuOnly {
		s.dc.SetRasterizerMode(gg.RasterizerAnalytic)
		s.dc.SetTextMode(gg.TextModeBitmap)
	} else {
		s.dc.SetRasterizerMode(gg.RasterizerAuto)
		s.dc.SetTextMode(gg.TextModeAuto)
	}
}

// fallbackToCPU abandons the accelerator after a failed flush. Whatever
// the accelerator still holds is drained and discarded.
func (s *Scene) fallbackToCPU() {
	_ = s.flush()
	s.cpuOnly = true
	s.applyRasterizer()
}

// Close releases the context and font. It is safe to call more than once.
func (s *Scene) Close() error {
	var errs []error
	if s.dc != nil {
		errs = append(errs, s.dc.Close())
		s.dc = nil
	}
	if s.font != nil {
		errs = append(errs, s.font.Close())
		s.font = nil
	}
	s.initialized = false
	return errors.Join(errs...)
}

// labelSize returns the label font size in points for a viewport height.
func labelSize(height int) float64 {
	return math.Max(10, float64(height)/40)
}

// formatName returns the WebGPU spelling of the formats gg can read back.
func formatName(f gputypes.TextureFormat) string {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm:
		return "rgba8unorm"
	case gputypes.TextureFormatBGRA8Unorm:
		return "bgra8unorm"
	default:
		return "unknown"
	}
}
