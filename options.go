package policypdf

import (
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/Jontyellis1212/policysprint-ai-sub000/brand"
	"github.com/Jontyellis1212/policysprint-ai-sub000/cover"
	"github.com/Jontyellis1212/policysprint-ai-sub000/paginate"
	"github.com/Jontyellis1212/policysprint-ai-sub000/theme"
)

// DefaultWatermark is the text stamped on every page of a preview.
const DefaultWatermark = "PREVIEW"

// Option is a functional option for configuring a render.
type Option func(*renderConfig)

type renderConfig struct {
	maxTotalPages    int
	maxSectionPages  int
	assets           fs.FS
	brandCandidates  []string
	brandName        string
	watermark        string
	watermarkOpacity float64
	code             cover.CodeKind
	letterhead       string
	compress         bool
	now              func() time.Time
	logger           *slog.Logger
}

func newRenderConfig(opts []Option) renderConfig {
	cfg := renderConfig{
		maxTotalPages:    paginate.DefaultMaxTotalPages,
		maxSectionPages:  paginate.DefaultMaxSectionPages,
		brandCandidates:  brand.DefaultCandidates,
		brandName:        cover.DefaultBrandName,
		watermark:        DefaultWatermark,
		watermarkOpacity: theme.WatermarkOpacity,
		code:             cover.CodeQR,
		compress:         true,
		now:              time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithMaxTotalPages caps the whole document, cover included. Values below
// two are ignored because a document needs a cover and one content page.
func WithMaxTotalPages(n int) Option {
	return func(c *renderConfig) {
		if n >= 2 {
			c.maxTotalPages = n
		}
	}
}

// WithMaxSectionPages caps the pages of each capped section. Values below
// one are ignored.
func WithMaxSectionPages(n int) Option {
	return func(c *renderConfig) {
		if n >= 1 {
			c.maxSectionPages = n
		}
	}
}

// WithAssetDir reads brand assets from a directory on disk.
func WithAssetDir(dir string) Option {
	return func(c *renderConfig) {
		c.assets = os.DirFS(dir)
	}
}

// WithAssets reads brand assets from fsys.
func WithAssets(fsys fs.FS) Option {
	return func(c *renderConfig) {
		c.assets = fsys
	}
}

// WithBrandCandidates sets the ordered list of brand image paths tried
// inside the asset filesystem. The first one that decodes wins.
func WithBrandCandidates(names ...string) Option {
	return func(c *renderConfig) {
		if len(names) > 0 {
			c.brandCandidates = names
		}
	}
}

// WithBrandName sets the wordmark drawn when no brand image is available.
func WithBrandName(name string) Option {
	return func(c *renderConfig) {
		if name != "" {
			c.brandName = name
		}
	}
}

// WithWatermarkText sets the preview watermark text.
func WithWatermarkText(text string) Option {
	return func(c *renderConfig) {
		if text != "" {
			c.watermark = text
		}
	}
}

// WithWatermarkOpacity sets the preview watermark opacity in (0, 1].
func WithWatermarkOpacity(alpha float64) Option {
	return func(c *renderConfig) {
		if alpha > 0 && alpha <= 1 {
			c.watermarkOpacity = alpha
		}
	}
}

// WithCoverCode selects the reference code printed on the cover.
func WithCoverCode(kind cover.CodeKind) Option {
	return func(c *renderConfig) {
		c.code = kind
	}
}

// WithLetterhead draws the first page of the PDF at path under every
// content page. An unusable file is logged and ignored.
func WithLetterhead(path string) Option {
	return func(c *renderConfig) {
		c.letterhead = path
	}
}

// WithCompression toggles stream compression. It is on by default.
func WithCompression(on bool) Option {
	return func(c *renderConfig) {
		c.compress = on
	}
}

// WithClock sets the source of the generation timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *renderConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger for one render. Without it the package-level
// logger from the logging package is used.
func WithLogger(l *slog.Logger) Option {
	return func(c *renderConfig) {
		c.logger = l
	}
}

// Limits are the page budgets a render enforces.
type Limits struct {
	MaxTotalPages   int `json:"maxTotalPages" yaml:"max_total_pages"`
	MaxSectionPages int `json:"maxSectionPages" yaml:"max_section_pages"`
}

// EffectiveLimits returns the budgets that opts would produce.
func EffectiveLimits(opts ...Option) Limits {
	cfg := newRenderConfig(opts)
	return Limits{MaxTotalPages: cfg.maxTotalPages, MaxSectionPages: cfg.maxSectionPages}
}
