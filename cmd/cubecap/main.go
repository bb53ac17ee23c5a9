// Command cubecap renders a rotating cube offscreen and writes every frame
// to an image file.
//
// Usage:
//
//	cubecap [flags]
//
// With no flags it writes frame0001.tga and frame0002.tga (800x800, 32-bit)
// to the current directory and prints the renderer diagnostics first.
//
// Exit status is 0 when the run completes, even if some frames could not be
// written; 1 when setup or rendering fails; 2 with --strict when at least
// one frame could not be written.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/gogpu/cubecap"
	"github.com/gogpu/cubecap/internal/probe"
	"github.com/gogpu/cubecap/pixbuf"
	"github.com/gogpu/cubecap/render/cube"
)

var version = "dev"

// exitStrict is the exit status for --strict runs with failed frames.
const exitStrict = 2

// CLI holds the command line. Every flag can also come from the JSON file
// named by --config.
type CLI struct {
	Frames  int    `short:"n" default:"2" env:"CUBECAP_FRAMES" help:"Number of frames to capture."`
	Width   int    `default:"800" env:"CUBECAP_WIDTH" help:"Frame width in pixels."`
	Height  int    `default:"800" env:"CUBECAP_HEIGHT" help:"Frame height in pixels."`
	Verbose bool   `short:"v" default:"true" negatable:"" help:"Print adapter and renderer diagnostics."`
	Output  string `short:"o" default:"." env:"CUBECAP_OUTPUT" type:"path" help:"Directory frames are written to."`
	Prefix  string `default:"frame" help:"File name prefix."`
	Format  string `default:"tga" enum:"tga,png,bmp,tiff" env:"CUBECAP_FORMAT" help:"Output format (${enum})."`

	TopLeft    bool `name:"top-left" help:"Store rows top first instead of bottom first."`
	Label      bool `default:"true" negatable:"" help:"Draw the frame number on each frame."`
	GPU        bool `name:"gpu" help:"Let gg hand fills to its GPU accelerator when one is registered."`
	RequireGPU bool `name:"require-gpu" help:"Fail when no Vulkan adapter is found."`
	Strict     bool `help:"Exit with status 2 if any frame could not be written."`
	Debug      bool `help:"Enable debug logging on stderr."`

	Config  kong.ConfigFlag  `help:"Load flags from a JSON file."`
	Version kong.VersionFlag `help:"Print version and exit."`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("cubecap"),
		kong.Description("Render a rotating cube offscreen and capture each frame to a file."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON),
		kong.Vars{"version": version},
	)

	cubecap.SetLogger(newLogger(os.Stderr, cli.Debug))

	code, err := cli.run(os.Stdout)
	kctx.FatalIfErrorf(err)
	os.Exit(code)
}

// newLogger returns a text logger at info level, or debug when debug is set.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// config maps the flags onto a capture configuration.
func (c *CLI) config() cubecap.Config {
	cfg := cubecap.DefaultConfig()
	cfg.FrameCount = c.Frames
	cfg.Width = c.Width
	cfg.Height = c.Height
	cfg.OutputDir = c.Output
	cfg.Prefix = c.Prefix
	cfg.Format = c.Format
	if c.TopLeft {
		cfg.Origin = pixbuf.OriginTopLeft
	}
	return cfg
}

// run performs one capture and returns the exit status. A non-nil error
// always comes with status 1.
func (c *CLI) run(stdout io.Writer) (int, error) {
	cfg := c.config()
	if err := cfg.Validate(); err != nil {
		return 1, err
	}

	if c.Verbose || c.RequireGPU {
		if err := c.reportAdapters(stdout, probe.Default); err != nil {
			return 1, err
		}
	}

	scene := cube.New(cube.WithLabel(c.Label), cube.WithAccelerator(c.GPU))
	if err := scene.Initialize(); err != nil {
		return 1, fmt.Errorf("initialize renderer: %w", err)
	}
	defer func() {
		if err := scene.Close(); err != nil {
			cubecap.Logger().Warn("close renderer", "err", err)
		}
	}()

	if err := scene.ConfigureViewport(cfg.Width, cfg.Height); err != nil {
		return 1, fmt.Errorf("configure viewport: %w", err)
	}
	if c.Verbose {
		fmt.Fprintln(stdout, scene.DescribeCapabilities())
	}

	p, err := cubecap.New(scene, cfg, cubecap.WithConsole(stdout))
	if err != nil {
		return 1, err
	}
	report, err := p.Run()
	if err != nil {
		return 1, err
	}

	if failed := report.Failed(); failed > 0 && c.Strict {
		cubecap.Logger().Warn("frames not written", "failed", failed, "total", len(report.Frames))
		return exitStrict, nil
	}
	return 0, nil
}

// reportAdapters lists the Vulkan adapters returned by list in verbose
// mode. This is independent of gg's accelerator, which the renderer
// diagnostics report. Listing failures are only fatal with --require-gpu.
func (c *CLI) reportAdapters(stdout io.Writer, list func() ([]probe.Adapter, error)) error {
	adapters, err := list()
	if err != nil {
		if c.RequireGPU {
			return fmt.Errorf("enumerate Vulkan adapters: %w", err)
		}
		cubecap.Logger().Debug("Vulkan adapter enumeration failed", "err", err)
		if c.Verbose {
			fmt.Fprintln(stdout, "Vulkan adapters: none")
		}
		return nil
	}

	preferred, _ := probe.Choose(adapters)
	if c.Verbose {
		fmt.Fprintln(stdout, "Vulkan adapters:")
		for i, a := range adapters {
			fmt.Fprintf(stdout, "  %d: %s\n", i, a)
		}
		fmt.Fprintf(stdout, "Preferred Vulkan adapter: %s\n", preferred)
	}
	return nil
}
