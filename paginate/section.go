package paginate

import (
	"iter"
	"log/slog"
	"strings"

	"github.com/Jontyellis1212/policysprint-ai-sub000/theme"
)

// LineStyle selects the typography of a Line.
type LineStyle int

const (
	StyleBody LineStyle = iota
	StyleStrong
	StyleOption
	StyleNote
)

func (ls LineStyle) text() theme.TextStyle {
	switch ls {
	case StyleStrong:
		return theme.Strong
	case StyleNote:
		return theme.Small
	default:
		return theme.Body
	}
}

func (ls LineStyle) indent() float64 {
	if ls == StyleOption {
		return theme.OptionIndent
	}
	return 0
}

// Line is one logical line of text. It may wrap onto several rows.
type Line struct {
	Text  string
	Style LineStyle
}

// Block is the unit the engine keeps together on one page when it can.
// A block with no lines is a vertical gap.
type Block struct {
	Lines []Line
	Gap   float64
}

// Text returns a block holding a single line.
func Text(style LineStyle, text string) Block {
	return Block{Lines: []Line{{Text: text, Style: style}}}
}

// Group returns a block whose lines are placed together.
func Group(lines ...Line) Block {
	return Block{Lines: lines}
}

// Spacer returns a vertical gap of height h.
func Spacer(h float64) Block {
	return Block{Gap: h}
}

// Section is a headed run of blocks that starts on a fresh page.
type Section struct {
	Heading string
	Body    iter.Seq[Block]
	// Uncapped sections ignore the per-section page cap. The document cap
	// still applies.
	Uncapped bool
}

// Blocks adapts a slice to a Section body.
func Blocks(bs ...Block) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		for _, b := range bs {
			if !yield(b) {
				return
			}
		}
	}
}

// Outcome reports how a section ended.
type Outcome int

const (
	// OutcomeComplete means every block was placed.
	OutcomeComplete Outcome = iota
	// OutcomeTruncatedTotal means the document page cap stopped the section.
	OutcomeTruncatedTotal
	// OutcomeTruncatedSection means the section's own page cap stopped it.
	OutcomeTruncatedSection
	// OutcomeSkipped means the document cap was spent before the section
	// could start.
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeComplete:
		return "complete"
	case OutcomeTruncatedTotal:
		return "truncated-total"
	case OutcomeTruncatedSection:
		return "truncated-section"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Truncated reports whether content was dropped.
func (o Outcome) Truncated() bool {
	return o != OutcomeComplete
}

// run is the per-section cursor.
type run struct {
	sec     Section
	pages   int
	outcome Outcome
}

type row struct {
	text   string
	style  theme.TextStyle
	x      float64
	height float64
}

// RenderSection places sec on one or more fresh pages and reports how it
// ended.
func (d *Document) RenderSection(sec Section) Outcome {
	log := d.log.With(slog.String("section", sec.Heading))
	if d.Truncated() {
		d.stampNotice()
		log.Warn("section skipped", slog.Int("total_pages", d.state.TotalPages),
			slog.Int("max_total_pages", d.cfg.MaxTotalPages))
		return OutcomeSkipped
	}

	d.NewPage()
	d.decorate(sec, false)
	r := &run{sec: sec, pages: 1}

	if sec.Body != nil {
		for b := range sec.Body {
			if !d.place(r, b) {
				break
			}
		}
	}

	if r.outcome.Truncated() {
		log.Warn("section truncated", slog.String("outcome", r.outcome.String()),
			slog.Int("section_pages", r.pages), slog.Int("total_pages", d.state.TotalPages))
	} else {
		log.Debug("section rendered", slog.Int("section_pages", r.pages))
	}
	return r.outcome
}

// place draws b and reports whether the section may continue.
func (d *Document) place(r *run, b Block) bool {
	if len(b.Lines) == 0 {
		if d.y+b.Gap <= theme.ContentBottom {
			d.y += b.Gap
		}
		return true
	}

	rows := d.layout(b)
	if len(rows) == 0 {
		return true
	}
	var total float64
	for _, rw := range rows {
		total += rw.height
	}

	if d.y+total > theme.ContentBottom && total <= theme.ContentBottom-theme.ContentTop {
		if !d.continuePage(r) {
			return false
		}
	}
	for _, rw := range rows {
		if d.y+rw.height > theme.ContentBottom {
			if !d.continuePage(r) {
				return false
			}
		}
		d.drawRow(rw)
	}
	return true
}

// layout wraps every line of b into rows using the surface's metrics.
func (d *Document) layout(b Block) []row {
	var rows []row
	s := d.surf
	s.Scoped(func() {
		for _, ln := range b.Lines {
			st := ln.Style.text()
			x := theme.Margin + ln.Style.indent()
			s.SetStyle(st)
			for _, t := range s.Wrap(strings.TrimSpace(ln.Text), theme.ContentWidth-ln.Style.indent()) {
				rows = append(rows, row{text: t, style: st, x: x, height: theme.LineHeight(st)})
			}
		}
	})
	return rows
}

func (d *Document) drawRow(rw row) {
	s := d.surf
	s.Scoped(func() {
		s.SetStyle(rw.style)
		s.Text(rw.x, d.y+rw.style.Size, rw.text)
	})
	d.y += rw.height
}

// continuePage adds a continuation page for r, or truncates the section
// when a budget is spent. The document cap is checked first.
func (d *Document) continuePage(r *run) bool {
	switch {
	case d.Truncated():
		r.outcome = OutcomeTruncatedTotal
	case !r.sec.Uncapped && r.pages >= d.cfg.MaxSectionPages:
		r.outcome = OutcomeTruncatedSection
	default:
		d.NewPage()
		r.pages++
		d.decorate(r.sec, true)
		return true
	}
	d.stampNotice()
	return false
}
