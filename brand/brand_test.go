package brand

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"testing"
	"testing/fstest"

	"golang.org/x/image/bmp"

	"github.com/Jontyellis1212/policysprint-ai-sub000/logging"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadFirstDecodableWins(t *testing.T) {
	fsys := fstest.MapFS{
		"brand/logo.png": {Data: []byte("corrupt")},
		"logo.png":       {Data: encodePNG(t, solid(40, 20, color.RGBA{0, 128, 128, 255}))},
		"logo.jpg":       {Data: []byte("never reached")},
	}
	h := logging.NewBufferedHandler(slog.LevelDebug)

	m := Load(fsys, nil, slog.New(h))
	if m == nil {
		t.Fatal("expected a mark")
	}
	if m.Name != "logo.png" || m.Format != "png" {
		t.Errorf("loaded %s (%s), want logo.png (png)", m.Name, m.Format)
	}
	if m.Width != 40 || m.Height != 20 || m.Aspect() != 0.5 {
		t.Errorf("unexpected size %dx%d", m.Width, m.Height)
	}
	if !h.Contains("brand candidate skipped") {
		t.Errorf("expected the corrupt candidate to be logged, got %q", h.String())
	}
}

func TestLoadNothing(t *testing.T) {
	if m := Load(nil, nil, nil); m != nil {
		t.Errorf("expected nil for a nil filesystem, got %+v", m)
	}
	if m := Load(fstest.MapFS{}, []string{"a.png", "b.png"}, nil); m != nil {
		t.Errorf("expected nil when no candidate exists, got %+v", m)
	}
	bad := fstest.MapFS{"logo.png": {Data: []byte{0x89, 'P', 'N', 'G'}}}
	if m := Load(bad, []string{"logo.png"}, nil); m != nil {
		t.Errorf("expected nil for an undecodable candidate, got %+v", m)
	}
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, solid(8, 8, color.White)); err != nil {
		t.Fatal(err)
	}
	m, err := Decode("logo.bmp", buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if m.Format != "bmp" {
		t.Errorf("format = %q, want bmp", m.Format)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(m.PNG))
	if err != nil || format != "png" {
		t.Fatalf("expected PNG output, got %q: %v", format, err)
	}
	if cfg.Width != 8 || cfg.Height != 8 {
		t.Errorf("unexpected output size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestDecodeDownscales(t *testing.T) {
	m, err := Decode("wide.png", encodePNG(t, solid(MaxSide*2, 100, color.Black)))
	if err != nil {
		t.Fatal(err)
	}
	if m.Width != MaxSide || m.Height != 50 {
		t.Errorf("expected %dx50, got %dx%d", MaxSide, m.Width, m.Height)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, limit, wantW, wantH int
	}{
		{100, 50, 200, 100, 50},
		{400, 100, 200, 200, 50},
		{100, 400, 200, 50, 200},
		{1000, 1, 10, 10, 1},
	}
	for _, tt := range tests {
		w, h := fit(tt.w, tt.h, tt.limit)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("fit(%d, %d, %d) = %d, %d; want %d, %d", tt.w, tt.h, tt.limit, w, h, tt.wantW, tt.wantH)
		}
	}
}
