package cubecap

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gogpu/cubecap/imagefile"
	"github.com/gogpu/cubecap/pixbuf"
	"github.com/gogpu/cubecap/tga"
)

// fakeRenderer fills each frame with its index and records the call order.
type fakeRenderer struct {
	rendered  []int
	read      []int
	failOn    int
	readErrOn int
	current   int
}

var errFakeRender = errors.New("fake render failure")

func (f *fakeRenderer) Initialize() error                { return nil }
func (f *fakeRenderer) ConfigureViewport(w, h int) error { return nil }
func (f *fakeRenderer) DescribeCapabilities() string     { return "fake" }
func (f *fakeRenderer) Close() error                     { return nil }

func (f *fakeRenderer) RenderFrame(index int) error {
	if index == f.failOn {
		return errFakeRender
	}
	f.rendered = append(f.rendered, index)
	f.current = index
	return nil
}

func (f *fakeRenderer) ReadPixels(buf *pixbuf.Buffer) error {
	if f.current == f.readErrOn {
		return errFakeRender
	}
	f.read = append(f.read, f.current)
	data := buf.Data()
	for i := 0; i < len(data); i += 4 {
		data[i+0] = byte(f.current)
		data[i+1] = 0x10
		data[i+2] = 0x20
		data[i+3] = 0xFF
	}
	return nil
}

// flakyEncoder fails on the given call numbers and delegates otherwise.
type flakyEncoder struct {
	imagefile.Encoder
	calls  int
	failOn map[int]bool
}

var errDiskFull = errors.New("disk full")

func (e *flakyEncoder) WriteFile(path string, buf *pixbuf.Buffer) (int64, error) {
	e.calls++
	if e.failOn[e.calls] {
		return 0, errDiskFull
	}
	return e.Encoder.WriteFile(path, buf)
}

func smallConfig(t *testing.T, frames int) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.FrameCount = frames
	cfg.Width = 2
	cfg.Height = 2
	cfg.OutputDir = t.TempDir()
	return cfg
}

func TestRun_FrameSequence(t *testing.T) {
	r := &fakeRenderer{}
	p, err := New(r, smallConfig(t, 2), WithConsole(&bytes.Buffer{}))
	if err != nil {
		t.Fatal(err)
	}

	report, err := p.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if want := []int{1, 2}; !reflect.DeepEqual(r.rendered, want) {
		t.Errorf("rendered = %v, want %v", r.rendered, want)
	}
	if !reflect.DeepEqual(r.read, r.rendered) {
		t.Errorf("read = %v, want %v", r.read, r.rendered)
	}
	if len(report.Frames) != 2 || report.Failed() != 0 {
		t.Errorf("report = %+v, want 2 frames, 0 failed", report)
	}
}

func TestRun_WritesOneFilePerFrame(t *testing.T) {
	var console bytes.Buffer
	cfg := smallConfig(t, 3)
	p, err := New(&fakeRenderer{}, cfg, WithConsole(&console))
	if err != nil {
		t.Fatal(err)
	}

	report, err := p.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	const fileSize = tga.HeaderSize + 2*2*4
	for i, name := range []string{"frame0001.tga", "frame0002.tga", "frame0003.tga"} {
		path := filepath.Join(cfg.OutputDir, name)
		fi, err := os.Stat(path)
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if fi.Size() != fileSize {
			t.Errorf("%s size = %d, want %d", name, fi.Size(), fileSize)
		}
		if report.Frames[i].Path != path || report.Frames[i].Bytes != fileSize {
			t.Errorf("Frames[%d] = %+v", i, report.Frames[i])
		}
		if line := "Wrote " + path + " (34 bytes)"; !strings.Contains(console.String(), line) {
			t.Errorf("console missing %q:\n%s", line, console.String())
		}
	}
	if report.BytesWritten() != 3*fileSize {
		t.Errorf("BytesWritten() = %d, want %d", report.BytesWritten(), 3*fileSize)
	}

	entries, _ := os.ReadDir(cfg.OutputDir)
	if len(entries) != 3 {
		t.Errorf("output dir has %d entries, want 3", len(entries))
	}
}

func TestRun_FramePayload(t *testing.T) {
	cfg := smallConfig(t, 1)
	p, err := New(&fakeRenderer{}, cfg, WithConsole(&bytes.Buffer{}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Run(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(filepath.Join(cfg.OutputDir, "frame0001.tga"))
	if err != nil {
		t.Fatal(err)
	}
	if b[16] != 32 || b[17] != 0 {
		t.Errorf("depth/descriptor = %d/%#x, want 32/0", b[16], b[17])
	}
	// Renderer wrote R=1 G=0x10 B=0x20; the file stores B G R A.
	if got := b[tga.HeaderSize : tga.HeaderSize+4]; !bytes.Equal(got, []byte{0x20, 0x10, 1, 0xFF}) {
		t.Errorf("first pixel = %v, want [32 16 1 255]", got)
	}
}

func TestRun_EncodeFailureIsLocal(t *testing.T) {
	var console bytes.Buffer
	cfg := smallConfig(t, 3)
	enc := &flakyEncoder{Encoder: imagefile.TGA{}, failOn: map[int]bool{2: true}}
	r := &fakeRenderer{}

	p, err := New(r, cfg, WithConsole(&console), WithEncoder(enc))
	if err != nil {
		t.Fatal(err)
	}
	report, err := p.Run()
	if err != nil {
		t.Fatalf("Run() error = %v, want nil for encode failures", err)
	}

	if want := []int{1, 2, 3}; !reflect.DeepEqual(r.rendered, want) {
		t.Errorf("rendered = %v, want %v", r.rendered, want)
	}
	if report.Failed() != 1 || !errors.Is(report.Frames[1].Err, errDiskFull) {
		t.Errorf("report = %+v, want frame 2 failed with disk full", report.Frames)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "frame0002.tga")); !os.IsNotExist(err) {
		t.Error("frame0002.tga should not exist")
	}
	for _, name := range []string{"frame0001.tga", "frame0003.tga"} {
		if _, err := os.Stat(filepath.Join(cfg.OutputDir, name)); err != nil {
			t.Errorf("%s should exist: %v", name, err)
		}
	}
	if !strings.Contains(console.String(), "Couldn't create a TGA file: disk full") {
		t.Errorf("console = %q, want failure line", console.String())
	}
}

func TestRun_MissingOutputDirectory(t *testing.T) {
	var console bytes.Buffer
	cfg := smallConfig(t, 2)
	cfg.OutputDir = filepath.Join(cfg.OutputDir, "does-not-exist")

	p, err := New(&fakeRenderer{}, cfg, WithConsole(&console))
	if err != nil {
		t.Fatal(err)
	}
	report, err := p.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Failed() != 2 {
		t.Errorf("Failed() = %d, want 2", report.Failed())
	}
	for _, f := range report.Frames {
		var pathErr *os.PathError
		if !errors.As(f.Err, &pathErr) {
			t.Errorf("frame %d error = %v, want *os.PathError", f.Index, f.Err)
		}
	}
	if n := strings.Count(console.String(), "Couldn't create a TGA file: "); n != 2 {
		t.Errorf("console has %d failure lines, want 2:\n%s", n, console.String())
	}
}

func TestRun_RendererFailureAborts(t *testing.T) {
	tests := []struct {
		name string
		r    *fakeRenderer
	}{
		{"render", &fakeRenderer{failOn: 2}},
		{"readback", &fakeRenderer{readErrOn: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig(t, 3)
			p, err := New(tt.r, cfg, WithConsole(&bytes.Buffer{}))
			if err != nil {
				t.Fatal(err)
			}

			report, err := p.Run()
			if !errors.Is(err, errFakeRender) {
				t.Fatalf("Run() error = %v, want errFakeRender", err)
			}
			if len(report.Frames) != 1 || report.Frames[0].Index != 1 {
				t.Errorf("report.Frames = %+v, want only frame 1", report.Frames)
			}
			if _, err := os.Stat(filepath.Join(cfg.OutputDir, "frame0003.tga")); !os.IsNotExist(err) {
				t.Error("frames after the failure must not be written")
			}
		})
	}
}

func TestRun_ReleasesBuffers(t *testing.T) {
	pool := pixbuf.NewPool(1)
	p, err := New(&fakeRenderer{}, smallConfig(t, 4), WithConsole(&bytes.Buffer{}), WithPool(pool))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Run(); err != nil {
		t.Fatal(err)
	}
	if n := pool.Outstanding(); n != 0 {
		t.Errorf("Outstanding() = %d after Run, want 0", n)
	}
}

func TestRun_OtherFormats(t *testing.T) {
	for _, format := range []string{"png", "bmp", "tiff"} {
		t.Run(format, func(t *testing.T) {
			cfg := smallConfig(t, 2)
			cfg.Format = format
			p, err := New(&fakeRenderer{}, cfg, WithConsole(&bytes.Buffer{}))
			if err != nil {
				t.Fatal(err)
			}
			report, err := p.Run()
			if err != nil || report.Failed() != 0 {
				t.Fatalf("Run() = %+v, %v", report, err)
			}
			if _, err := os.Stat(filepath.Join(cfg.OutputDir, "frame0002."+format)); err != nil {
				t.Error(err)
			}
		})
	}
}
