// Package paginate streams sections of text onto pages of a surface. It
// owns the page counter of a render and enforces two budgets: a document
// wide cap on total pages and a per-section cap on continuation pages. When
// a budget is exhausted the current section stops and a one-line truncation
// notice is drawn in a band reserved above the footer, so the notice never
// needs a page of its own.
package paginate

import (
	"log/slog"

	"github.com/Jontyellis1212/policysprint-ai-sub000/logging"
	"github.com/Jontyellis1212/policysprint-ai-sub000/surface"
	"github.com/Jontyellis1212/policysprint-ai-sub000/theme"
)

// Default budgets.
const (
	DefaultMaxTotalPages   = 18
	DefaultMaxSectionPages = 10
)

// NoticeText is drawn on the last page a truncated section reached.
const NoticeText = "Content truncated to keep the document readable…"

// State is the mutable page accounting shared by every section of one
// render. Only Document.NewPage changes it.
type State struct {
	// TotalPages counts every page created so far, cover included.
	TotalPages int
}

// Config controls budgets and page decoration.
type Config struct {
	// MaxTotalPages caps the whole document. Zero means DefaultMaxTotalPages.
	MaxTotalPages int
	// MaxSectionPages caps the pages of a single capped section. Zero means
	// DefaultMaxSectionPages.
	MaxSectionPages int

	// Watermark is drawn diagonally on every page when non-empty.
	Watermark string
	// WatermarkOpacity is the fill opacity of the watermark. Zero means
	// theme.WatermarkOpacity.
	WatermarkOpacity float64

	// FooterLabel is printed on the left of every numbered footer.
	FooterLabel string

	// OnNewPage, if set, observes every page creation.
	OnNewPage func(State)

	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.MaxTotalPages <= 0 {
		c.MaxTotalPages = DefaultMaxTotalPages
	}
	if c.MaxSectionPages <= 0 {
		c.MaxSectionPages = DefaultMaxSectionPages
	}
	if c.WatermarkOpacity <= 0 || c.WatermarkOpacity > 1 {
		c.WatermarkOpacity = theme.WatermarkOpacity
	}
	return c
}

// Document drives one surface through a sequence of sections.
type Document struct {
	surf  *surface.Surface
	cfg   Config
	state *State
	log   *slog.Logger

	// y is the top of the next row on the current page.
	y float64
	// noticed records pages that already carry the truncation notice.
	noticed map[int]bool
}

// New returns a Document drawing on s and counting pages in state.
func New(s *surface.Surface, state *State, cfg Config) *Document {
	cfg = cfg.withDefaults()
	return &Document{
		surf:    s,
		cfg:     cfg,
		state:   state,
		log:     logging.Or(cfg.Logger),
		noticed: make(map[int]bool),
	}
}

// Surface returns the underlying drawing surface.
func (d *Document) Surface() *surface.Surface { return d.surf }

// State returns a copy of the page accounting.
func (d *Document) State() State { return *d.state }

// Config returns the effective configuration, defaults applied.
func (d *Document) Config() Config { return d.cfg }

// Logger returns the logger the document reports to.
func (d *Document) Logger() *slog.Logger { return d.log }

// NewPage creates a page and counts it. It is the only place the page
// counter changes.
func (d *Document) NewPage() {
	d.surf.AddPage()
	d.state.TotalPages++
	d.log.Debug("page added", slog.Int("page", d.state.TotalPages))
	if d.cfg.OnNewPage != nil {
		d.cfg.OnNewPage(*d.state)
	}
}

// Truncated reports whether the page budget is spent.
func (d *Document) Truncated() bool {
	return d.state.TotalPages >= d.cfg.MaxTotalPages
}

// Watermark draws the configured watermark on the current page. It does
// nothing when no watermark is configured.
func (d *Document) Watermark() {
	if d.cfg.Watermark == "" {
		return
	}
	s := d.surf
	s.Scoped(func() {
		cx, cy := theme.PageWidth/2, theme.PageHeight/2
		s.Rotated(theme.WatermarkAngle, cx, cy, func() {
			s.WithAlpha(d.cfg.WatermarkOpacity, func() {
				s.SetStyle(theme.Mark)
				s.TextCenter(cx, cy+theme.Mark.Size/3, d.cfg.Watermark)
			})
		})
	})
}

// stampNotice draws the truncation notice on the current page unless it
// already carries one.
func (d *Document) stampNotice() {
	page := d.surf.PageNo()
	if page == 0 || d.noticed[page] {
		return
	}
	d.noticed[page] = true
	s := d.surf
	s.Scoped(func() {
		s.SetStyle(theme.Notice)
		s.Text(theme.Margin, theme.ContentBottom+theme.Notice.Size*2, NoticeText)
	})
}
