package cubecap

import (
	"io"

	"github.com/gogpu/cubecap/imagefile"
	"github.com/gogpu/cubecap/pixbuf"
)

// Option configures a Pipeline during creation.
//
// Example:
//
//	// Status lines to stdout, frames as TGA (the defaults)
//	p, _ := cubecap.New(scene, cfg)
//
//	// Quiet run with a custom writer
//	p, _ := cubecap.New(scene, cfg, cubecap.WithConsole(io.Discard))
type Option func(*pipelineOptions)

// pipelineOptions holds optional configuration for Pipeline creation.
type pipelineOptions struct {
	console io.Writer
	encoder imagefile.Encoder
	pool    *pixbuf.Pool
}

// WithConsole sets where per-frame status lines are printed.
// The default is os.Stdout.
func WithConsole(w io.Writer) Option {
	return func(o *pipelineOptions) {
		o.console = w
	}
}

// WithEncoder overrides the encoder looked up from Config.Format.
// Config.Format is still validated; the override only replaces the lookup.
func WithEncoder(enc imagefile.Encoder) Option {
	return func(o *pipelineOptions) {
		o.encoder = enc
	}
}

// WithPool sets the buffer pool frames are captured into. Sharing a pool
// between pipelines lets consecutive runs reuse the same storage.
func WithPool(p *pixbuf.Pool) Option {
	return func(o *pipelineOptions) {
		o.pool = p
	}
}
