// Package cubecap renders a rotating cube offscreen and captures each frame
// to an image file.
//
// # Overview
//
// A [Pipeline] drives a [Renderer] through a fixed number of frames. For
// every frame it renders, reads the framebuffer back into a
// [pixbuf.Buffer], writes the buffer with an [imagefile.Encoder] and prints
// one status line:
//
//	Wrote frame0001.tga (2,560,018 bytes)
//	Couldn't create a TGA file: tga: open out/frame0002.tga: no such file or directory
//
// A frame that cannot be written is reported and skipped; the loop carries
// on with the next index. A renderer failure ends the run.
//
// # Quick Start
//
//	scene := cube.New()
//	if err := scene.Initialize(); err != nil {
//	    log.Fatal(err)
//	}
//	defer scene.Close()
//
//	cfg := cubecap.DefaultConfig()
//	if err := scene.ConfigureViewport(cfg.Width, cfg.Height); err != nil {
//	    log.Fatal(err)
//	}
//
//	p, err := cubecap.New(scene, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := p.Run()
//
// # Output
//
// Files are named <prefix><index>.<ext> with a four-digit, 1-based index,
// e.g. frame0001.tga. The default format is uncompressed 32-bit TGA with
// rows stored bottom first; see package [github.com/gogpu/cubecap/tga].
//
// # Logging
//
// cubecap is silent by default. Call [SetLogger] to route structured logs
// from the pipeline, the cube renderer and the gg rasterizer to a
// [log/slog] handler.
package cubecap
