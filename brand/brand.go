// Package brand locates and decodes the optional brand mark drawn on cover
// pages. A missing or unreadable mark is never an error for the caller:
// Load returns nil and the cover falls back to a text wordmark.
package brand

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io/fs"
	"log/slog"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Jontyellis1212/policysprint-ai-sub000/logging"
)

// MaxSide bounds the longest side of a decoded mark in pixels. Larger
// images are downscaled before they reach the PDF.
const MaxSide = 1200

// DefaultCandidates is the ordered list of file names tried by Load when
// the caller does not supply one.
var DefaultCandidates = []string{
	"brand/logo.png",
	"brand/logo.jpg",
	"brand/logo.jpeg",
	"brand/logo.webp",
	"brand/logo.gif",
	"logo.png",
	"logo.jpg",
	"logo.webp",
	"logo.bmp",
	"logo.tiff",
}

// ErrEmpty is returned by Decode for zero-sized images.
var ErrEmpty = errors.New("brand: empty image")

// Mark is a decoded brand image, re-encoded as an 8-bit PNG the drawing
// library accepts.
type Mark struct {
	// Name is the candidate path the mark was loaded from.
	Name string
	// Format is the source format reported by the decoder.
	Format string
	PNG    []byte
	Width  int
	Height int
}

// Aspect returns height divided by width.
func (m *Mark) Aspect() float64 {
	if m == nil || m.Width == 0 {
		return 0
	}
	return float64(m.Height) / float64(m.Width)
}

// Load returns the first candidate in fsys that decodes, or nil when none
// does. Failures are logged at debug level.
func Load(fsys fs.FS, candidates []string, log *slog.Logger) *Mark {
	log = logging.Or(log)
	if fsys == nil {
		return nil
	}
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	for _, name := range candidates {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Debug("brand candidate unreadable", slog.String("name", name), slog.Any("error", err))
			}
			continue
		}
		m, err := Decode(name, data)
		if err != nil {
			log.Debug("brand candidate skipped", slog.String("name", name), slog.Any("error", err))
			continue
		}
		log.Debug("brand mark loaded", slog.String("name", name), slog.String("format", m.Format),
			slog.Int("width", m.Width), slog.Int("height", m.Height))
		return m
	}
	log.Debug("no brand mark found", slog.Int("candidates", len(candidates)))
	return nil
}

// Decode decodes any registered image format and normalizes it to an
// 8-bit non-interlaced PNG no larger than MaxSide on either axis.
func Decode(name string, data []byte) (*Mark, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("brand: decode %s: %w", name, err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("brand: decode %s: %w", name, ErrEmpty)
	}

	w, h := fit(b.Dx(), b.Dy(), MaxSide)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("brand: encode %s: %w", name, err)
	}
	return &Mark{Name: name, Format: format, PNG: buf.Bytes(), Width: w, Height: h}, nil
}

func fit(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}
