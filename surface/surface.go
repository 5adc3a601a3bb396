// Package surface adapts gofpdf to the small set of drawing primitives the
// renderer needs. Every coordinate is in points with the origin at the top
// left of the page, and every string is UTF-8; the adapter converts text to
// the core fonts' code page on the way in.
package surface

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/boombuler/barcode"
	"github.com/lvillar/gofpdf"
	fpdfbarcode "github.com/lvillar/gofpdf/contrib/barcode"

	"github.com/Jontyellis1212/policysprint-ai-sub000/theme"
)

// Options configures a new Surface.
type Options struct {
	// Compress enables stream compression in the output.
	Compress bool
	// Created pins the creation and modification dates. Zero leaves the
	// library default (the wall clock).
	Created time.Time

	Title   string
	Author  string
	Subject string
	Creator string
}

// Surface is a single-use drawing target backed by one gofpdf document.
// It is not safe for concurrent use.
type Surface struct {
	pdf        *gofpdf.Fpdf
	alpha      float64
	letterhead *letterhead
}

// New returns an empty A4 portrait surface measured in points, with
// automatic page breaks disabled.
func New(opts Options) *Surface {
	pdf := gofpdf.NewDocument(
		gofpdf.WithUnit(gofpdf.UnitPoint),
		gofpdf.WithPageSize(gofpdf.PageSizeA4),
		gofpdf.WithOrientation(gofpdf.OrientationPortrait),
	)
	pdf.SetMargins(theme.Margin, theme.Margin, theme.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	pdf.SetCompression(opts.Compress)
	pdf.SetCatalogSort(true)
	if !opts.Created.IsZero() {
		pdf.SetCreationDate(opts.Created)
		pdf.SetModificationDate(opts.Created)
	}
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	if opts.Author != "" {
		pdf.SetAuthor(opts.Author, true)
	}
	if opts.Subject != "" {
		pdf.SetSubject(opts.Subject, true)
	}
	if opts.Creator != "" {
		pdf.SetCreator(opts.Creator, true)
	}

	s := &Surface{pdf: pdf, alpha: 1}
	s.ResetStyle()
	return s
}

// AddPage appends a page, makes it current and resets the text style.
func (s *Surface) AddPage() {
	s.pdf.AddPage()
	s.ResetStyle()
}

// SetPage makes an existing page current. Page numbers are one-based.
func (s *Surface) SetPage(n int) {
	s.pdf.SetPage(n)
}

// PageCount returns the number of pages created so far.
func (s *Surface) PageCount() int {
	return s.pdf.PageCount()
}

// PageNo returns the current page number.
func (s *Surface) PageNo() int {
	return s.pdf.PageNo()
}

// SetStyle applies a complete text style.
func (s *Surface) SetStyle(st theme.TextStyle) {
	s.pdf.SetFont(st.Family, st.Style, st.Size)
	s.pdf.SetTextColor(st.Color.R, st.Color.G, st.Color.B)
}

// ResetStyle restores the default text style, the default fill and draw
// colors, the default line width and full opacity.
func (s *Surface) ResetStyle() {
	s.SetStyle(theme.Default)
	s.SetFill(theme.White)
	s.SetDraw(theme.Border)
	s.pdf.SetLineWidth(0.5)
	if s.alpha != 1 {
		s.pdf.SetAlpha(1, "Normal")
		s.alpha = 1
	}
}

// Scoped runs fn and resets the style afterwards, even if fn panics.
func (s *Surface) Scoped(fn func()) {
	defer s.ResetStyle()
	fn()
}

// SetFill sets the fill color for shapes.
func (s *Surface) SetFill(c theme.Color) {
	s.pdf.SetFillColor(c.R, c.G, c.B)
}

// SetDraw sets the stroke color for lines and outlines.
func (s *Surface) SetDraw(c theme.Color) {
	s.pdf.SetDrawColor(c.R, c.G, c.B)
}

// SetLineWidth sets the stroke width.
func (s *Surface) SetLineWidth(w float64) {
	s.pdf.SetLineWidth(w)
}

// Text draws s with its baseline at y, starting at x.
func (s *Surface) Text(x, y float64, txt string) {
	s.pdf.Text(x, y, Encode(txt))
}

// TextRight draws txt so that it ends at x.
func (s *Surface) TextRight(x, y float64, txt string) {
	enc := Encode(txt)
	s.pdf.Text(x-s.pdf.GetStringWidth(enc), y, enc)
}

// TextCenter draws txt centered on cx.
func (s *Surface) TextCenter(cx, y float64, txt string) {
	enc := Encode(txt)
	s.pdf.Text(cx-s.pdf.GetStringWidth(enc)/2, y, enc)
}

// Width measures txt in the current font.
func (s *Surface) Width(txt string) float64 {
	return s.pdf.GetStringWidth(Encode(txt))
}

// Wrap breaks txt into rows no wider than w in the current font. Words
// longer than w are split. An empty string yields no rows.
func (s *Surface) Wrap(txt string, w float64) []string {
	enc := Encode(strings.TrimSpace(txt))
	if enc == "" {
		return nil
	}
	raw := s.pdf.SplitLines([]byte(enc), w)
	rows := make([]string, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, Decode(strings.TrimRight(string(r), " ")))
	}
	return rows
}

// FillRect paints a filled rectangle in the current fill color.
func (s *Surface) FillRect(x, y, w, h float64) {
	s.pdf.Rect(x, y, w, h, "F")
}

// RoundedRect paints a rounded rectangle. style is "F", "D" or "FD".
func (s *Surface) RoundedRect(x, y, w, h, r float64, style string) {
	s.pdf.RoundedRect(x, y, w, h, r, "1234", style)
}

// HLine strokes a horizontal line from x1 to x2 at y.
func (s *Surface) HLine(x1, x2, y float64) {
	s.pdf.Line(x1, y, x2, y)
}

// WithAlpha runs fn with the given opacity and restores full opacity.
func (s *Surface) WithAlpha(alpha float64, fn func()) {
	s.pdf.SetAlpha(alpha, "Normal")
	s.alpha = alpha
	defer func() {
		s.pdf.SetAlpha(1, "Normal")
		s.alpha = 1
	}()
	fn()
}

// Rotated runs fn with the coordinate system rotated counter-clockwise by
// angle degrees around (cx, cy).
func (s *Surface) Rotated(angle, cx, cy float64, fn func()) {
	s.pdf.TransformBegin()
	s.pdf.TransformRotate(angle, cx, cy)
	defer s.pdf.TransformEnd()
	fn()
}

// RegisterPNG registers PNG data under name for later use with Image.
// A failure leaves the surface usable.
func (s *Surface) RegisterPNG(name string, data []byte) error {
	if err := s.Err(); err != nil {
		return err
	}
	info := s.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(data))
	if s.pdf.Err() {
		err := s.pdf.Error()
		s.pdf.ClearError()
		return fmt.Errorf("surface: register image %q: %w", name, err)
	}
	if info == nil {
		return fmt.Errorf("surface: register image %q: no image info", name)
	}
	return nil
}

// Image draws a registered image into the given box.
func (s *Surface) Image(name string, x, y, w, h float64) {
	s.pdf.ImageOptions(name, x, y, w, h, false, gofpdf.ImageOptions{}, 0, "")
}

// Barcode draws a two-dimensional code so that it fits inside the w×h box
// at (x, y), preserving its aspect ratio. It returns the drawn size.
func (s *Surface) Barcode(code barcode.Barcode, x, y, w, h float64) (float64, float64) {
	b := code.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return 0, 0
	}
	scale := min(w/float64(b.Dx()), h/float64(b.Dy()))
	dw, dh := float64(b.Dx())*scale, float64(b.Dy())*scale
	key := fpdfbarcode.Register(code)
	fpdfbarcode.Barcode(s.pdf, key, x, y, dw, dh, false)
	return dw, dh
}

// Err returns the first error the underlying document recorded, if any.
func (s *Surface) Err() error {
	if !s.pdf.Err() {
		return nil
	}
	return s.pdf.Error()
}

// Output closes the document and writes it to w. The surface must not be
// drawn on afterwards.
func (s *Surface) Output(w io.Writer) error {
	return s.pdf.Output(w)
}

// Bytes closes the document and returns the encoded PDF.
func (s *Surface) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
