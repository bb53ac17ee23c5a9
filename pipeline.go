package cubecap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/cubecap/imagefile"
	"github.com/gogpu/cubecap/pixbuf"
)

// FrameResult is the outcome of capturing one frame.
type FrameResult struct {
	// Index is the 1-based frame index.
	Index int

	// Path is the file the frame was written to, or would have been.
	Path string

	// Bytes is the size of the written file. Zero when Err is set.
	Bytes int64

	// Err is the encoder error for this frame, if any.
	Err error
}

// Report summarizes a capture run.
type Report struct {
	// Frames holds one entry per captured frame in index order. After a
	// renderer failure it only covers the frames attempted before it.
	Frames []FrameResult

	// Elapsed is the wall time spent in Run.
	Elapsed time.Duration
}

// Failed returns the number of frames that could not be written.
func (r *Report) Failed() int {
	n := 0
	for _, f := range r.Frames {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// BytesWritten returns the total size of all written files.
func (r *Report) BytesWritten() int64 {
	var n int64
	for _, f := range r.Frames {
		n += f.Bytes
	}
	return n
}

// Pipeline captures a fixed sequence of frames from a Renderer.
//
// Pipeline is not safe for concurrent use.
type Pipeline struct {
	renderer Renderer
	cfg      Config
	encoder  imagefile.Encoder
	pool     *pixbuf.Pool
	console  io.Writer
	printer  *message.Printer
}

// New creates a pipeline for r. The renderer must already be initialized
// and configured for cfg.Width x cfg.Height.
func New(r Renderer, cfg Config, opts ...Option) (*Pipeline, error) {
	if r == nil {
		return nil, ErrNilRenderer
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o pipelineOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.console == nil {
		o.console = os.Stdout
	}
	if o.pool == nil {
		o.pool = pixbuf.NewPool(1)
	}
	if o.encoder == nil {
		enc, err := imagefile.Lookup(cfg.Format)
		if err != nil {
			return nil, fmt.Errorf("cubecap: %w", err)
		}
		o.encoder = enc
	}

	return &Pipeline{
		renderer: r,
		cfg:      cfg,
		encoder:  o.encoder,
		pool:     o.pool,
		console:  o.console,
		printer:  message.NewPrinter(language.English),
	}, nil
}

// Run captures frames 1..FrameCount in order.
//
// A frame that cannot be written is recorded in the report and the run
// continues. A renderer error stops the run; the partial report is
// returned together with the error.
func (p *Pipeline) Run() (*Report, error) {
	start := time.Now()
	report := &Report{Frames: make([]FrameResult, 0, p.cfg.FrameCount)}

	Logger().Info("capture started",
		"frames", p.cfg.FrameCount,
		"width", p.cfg.Width,
		"height", p.cfg.Height,
		"format", p.encoder.Name(),
		"origin", p.cfg.Origin.String())

	for index := 1; index <= p.cfg.FrameCount; index++ {
		res, err := p.capture(index)
		if err != nil {
			report.Elapsed = time.Since(start)
			return report, err
		}
		report.Frames = append(report.Frames, res)
	}

	report.Elapsed = time.Since(start)
	Logger().Info("capture finished",
		"frames", len(report.Frames),
		"failed", report.Failed(),
		"bytes", report.BytesWritten(),
		"elapsed", report.Elapsed)
	return report, nil
}

// capture renders, reads back and writes a single frame. The returned
// error is non-nil only for renderer failures.
func (p *Pipeline) capture(index int) (FrameResult, error) {
	res := FrameResult{
		Index: index,
		Path:  filepath.Join(p.cfg.OutputDir, FrameName(p.cfg.Prefix, index, p.encoder.Extension())),
	}

	frameStart := time.Now()
	if err := p.renderer.RenderFrame(index); err != nil {
		return res, fmt.Errorf("cubecap: render frame %d: %w", index, err)
	}

	buf, err := p.pool.Get(p.cfg.Width, p.cfg.Height, pixbuf.FormatRGBA8, p.cfg.Origin)
	if err != nil {
		return res, fmt.Errorf("cubecap: frame %d buffer: %w", index, err)
	}
	defer p.pool.Put(buf)

	if err := p.renderer.ReadPixels(buf); err != nil {
		return res, fmt.Errorf("cubecap: read frame %d: %w", index, err)
	}
	rendered := time.Since(frameStart)

	n, err := p.encoder.WriteFile(res.Path, buf)
	if err != nil {
		res.Err = err
		p.printer.Fprintf(p.console, "Couldn't create a %s file: %v\n", strings.ToUpper(p.encoder.Name()), err)
		Logger().Warn("frame not written", "index", index, "path", res.Path, "err", err)
		return res, nil
	}

	res.Bytes = n
	p.printer.Fprintf(p.console, "Wrote %s (%d bytes)\n", res.Path, n)
	Logger().Debug("frame written",
		"index", index,
		"path", res.Path,
		"bytes", n,
		"render", rendered,
		"total", time.Since(frameStart))
	return res, nil
}
