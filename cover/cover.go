// Package cover draws the title page of a rendered document. The layout is
// fixed: every element has a precomputed position and nothing flows onto a
// second page.
package cover

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	pdf417 "github.com/ruudk/golang-pdf417"

	"github.com/Jontyellis1212/policysprint-ai-sub000/brand"
	"github.com/Jontyellis1212/policysprint-ai-sub000/paginate"
	"github.com/Jontyellis1212/policysprint-ai-sub000/surface"
	"github.com/Jontyellis1212/policysprint-ai-sub000/theme"
)

// CodeKind selects the machine-readable reference printed on the cover.
type CodeKind string

const (
	CodeQR     CodeKind = "qr"
	CodePDF417 CodeKind = "pdf417"
	CodeNone   CodeKind = "none"
)

// ParseCodeKind maps a configuration string to a CodeKind. Empty means QR.
func ParseCodeKind(s string) (CodeKind, error) {
	switch k := CodeKind(strings.ToLower(strings.TrimSpace(s))); k {
	case "", CodeQR:
		return CodeQR, nil
	case CodePDF417, CodeNone:
		return k, nil
	default:
		return "", fmt.Errorf("cover: unknown code kind %q", s)
	}
}

// DefaultBrandName is the wordmark drawn when no brand image is available.
const DefaultBrandName = "PolicySprint"

// Fact is one labelled value in the summary card.
type Fact struct {
	Label string
	Value string
}

// Info is the content of a cover page.
type Info struct {
	// Kind is the document type shown in the header strip, e.g.
	// "AI Acceptable Use Policy".
	Kind     string
	Title    string
	Business string
	Industry string
	Country  string
	// Subtitle is an optional line under the title.
	Subtitle string
	Facts    []Fact
	// Generated is printed in the summary card.
	Generated time.Time
	// Reference is encoded in the cover code and printed under it.
	Reference string
	// Disclaimer is the small print at the bottom of the page.
	Disclaimer string
}

// Options controls cover decoration.
type Options struct {
	// Mark is the brand image. Nil selects the wordmark.
	Mark *brand.Mark
	// BrandName is the wordmark text. Empty means DefaultBrandName.
	BrandName string
	// Code selects the reference code. Empty means CodeQR.
	Code CodeKind
}

const (
	markName      = "brand-mark"
	markMaxHeight = 56.0
	markMaxWidth  = 200.0

	heroTop  = 222.0
	cardTop  = 470.0
	cardH    = 190.0
	cardPad  = 20.0
	codeSide = 104.0

	maxNameRows       = 2
	maxTitleRows      = 3
	maxDisclaimerRows = 3
)

// Compose creates the cover page of d and draws info on it. In preview
// mode the document watermark goes over the finished cover.
func Compose(d *paginate.Document, info Info, opts Options) {
	d.NewPage()
	s := d.Surface()
	log := d.Logger()

	s.Scoped(func() { strip(s, info, opts, log) })
	s.Scoped(func() { hero(s, info) })
	s.Scoped(func() { card(s, info, opts.Code, log) })
	s.Scoped(func() { disclaimer(s, info.Disclaimer) })
	d.Watermark()
}

// strip draws the header band with the brand mark or wordmark.
func strip(s *surface.Surface, info Info, opts Options, log *slog.Logger) {
	s.SetFill(theme.Navy)
	s.FillRect(0, 0, theme.PageWidth, theme.CoverStripHeight)

	if !drawMark(s, opts.Mark, log) {
		name := opts.BrandName
		if name == "" {
			name = DefaultBrandName
		}
		s.SetStyle(theme.Wordmark)
		s.Text(theme.Margin, 80, name)
	}

	if info.Kind != "" {
		s.SetStyle(theme.StripTag)
		s.Text(theme.Margin, theme.CoverStripHeight-24, strings.ToUpper(info.Kind))
	}
}

// drawMark places the brand image and reports whether it did.
func drawMark(s *surface.Surface, m *brand.Mark, log *slog.Logger) bool {
	if m == nil || m.Width == 0 {
		return false
	}
	if err := s.RegisterPNG(markName, m.PNG); err != nil {
		log.Debug("brand mark rejected, using wordmark", slog.String("name", m.Name), slog.Any("error", err))
		return false
	}
	h := markMaxHeight
	w := h / m.Aspect()
	if w > markMaxWidth {
		w = markMaxWidth
		h = w * m.Aspect()
	}
	s.Image(markName, theme.Margin, 36+(markMaxHeight-h)/2, w, h)
	return true
}

// hero draws the "prepared for" block.
func hero(s *surface.Surface, info Info) {
	y := heroTop
	s.SetStyle(theme.Label)
	s.Text(theme.Margin, y, "PREPARED FOR")
	y += 14

	business := info.Business
	if business == "" {
		business = "Your organisation"
	}
	s.SetStyle(theme.HeroName)
	for _, r := range limit(s.Wrap(business, theme.ContentWidth), maxNameRows) {
		y += theme.HeroName.Size * 1.15
		s.Text(theme.Margin, y, r)
	}

	y += 12
	s.SetStyle(theme.HeroTitle)
	for _, r := range limit(s.Wrap(info.Title, theme.ContentWidth), maxTitleRows) {
		y += theme.LineHeight(theme.HeroTitle)
		s.Text(theme.Margin, y, r)
	}

	if info.Subtitle != "" {
		s.SetStyle(theme.Body)
		y += theme.LineHeight(theme.Body) + 2
		s.Text(theme.Margin, y, firstRow(s, info.Subtitle))
	}

	if meta := metaLine(info.Industry, info.Country); meta != "" {
		s.SetStyle(theme.Footer)
		y += theme.LineHeight(theme.Footer) + 6
		s.Text(theme.Margin, y, meta)
	}

	s.SetDraw(theme.Accent)
	s.SetLineWidth(2)
	s.HLine(theme.Margin, theme.Margin+48, y+14)
}

// metaLine joins industry and country, skipping blanks.
func metaLine(industry, country string) string {
	var parts []string
	for _, p := range []string{industry, country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " · ")
}

// card draws the rounded summary panel with facts and the reference code.
func card(s *surface.Surface, info Info, kind CodeKind, log *slog.Logger) {
	s.SetFill(theme.Panel)
	s.SetDraw(theme.Border)
	s.RoundedRect(theme.Margin, cardTop, theme.ContentWidth, cardH, theme.CardRadius, "FD")

	textW := theme.ContentWidth - 2*cardPad
	if kind != CodeNone && info.Reference != "" {
		textW -= codeSide + cardPad
	}

	facts := info.Facts
	if !info.Generated.IsZero() {
		facts = append(facts[:len(facts):len(facts)], Fact{"Generated", info.Generated.Format("2 January 2006")})
	}

	x := theme.Margin + cardPad
	y := cardTop + cardPad
	for _, f := range facts {
		if y+30 > cardTop+cardH-cardPad/2 {
			break
		}
		s.SetStyle(theme.Label)
		y += theme.Label.Size
		s.Text(x, y, strings.ToUpper(f.Label))
		s.SetStyle(theme.CardValue)
		y += theme.LineHeight(theme.CardValue)
		s.Text(x, y, firstRow(s, f.Value, textW))
		y += 8
	}

	if kind == CodeNone || info.Reference == "" {
		return
	}
	code, err := encode(kind, info.Reference)
	if err != nil {
		log.Debug("reference code skipped", slog.String("kind", string(kind)), slog.Any("error", err))
		return
	}
	cx := theme.Margin + theme.ContentWidth - cardPad - codeSide
	boxH := codeSide
	if kind == CodePDF417 {
		boxH = codeSide / 2
	}
	_, h := s.Barcode(code, cx, cardTop+cardPad, codeSide, boxH)
	s.SetStyle(theme.Small)
	s.TextCenter(cx+codeSide/2, cardTop+cardPad+h+theme.Small.Size+4, info.Reference)
}

func encode(kind CodeKind, ref string) (barcode.Barcode, error) {
	switch kind {
	case CodePDF417:
		var bc barcode.Barcode = pdf417.Encode(ref, 4, 2)
		return bc, nil
	default:
		return qr.Encode(ref, qr.M, qr.Auto)
	}
}

// disclaimer draws the small print so that its last row sits on the bottom
// margin.
func disclaimer(s *surface.Surface, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	s.SetStyle(theme.Small)
	rows := limit(s.Wrap(text, theme.ContentWidth), maxDisclaimerRows)
	lh := theme.LineHeight(theme.Small)
	y := theme.PageHeight - theme.Margin - lh*float64(len(rows)-1)
	for _, r := range rows {
		s.Text(theme.Margin, y, r)
		y += lh
	}
}

// firstRow returns the first wrapped row of text, with an ellipsis when
// the text did not fit. The width defaults to the content width.
func firstRow(s *surface.Surface, text string, width ...float64) string {
	w := theme.ContentWidth
	if len(width) > 0 {
		w = width[0]
	}
	rows := s.Wrap(text, w)
	if len(rows) == 0 {
		return ""
	}
	if len(rows) > 1 {
		return strings.TrimRight(rows[0], " .,;:") + "…"
	}
	return rows[0]
}

// limit keeps the first n rows, marking the cut with an ellipsis.
func limit(rows []string, n int) []string {
	if len(rows) <= n {
		return rows
	}
	rows = rows[:n:n]
	rows[n-1] = strings.TrimRight(rows[n-1], " .,;:") + "…"
	return rows
}
