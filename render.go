package policypdf

import (
	"io"
	"log/slog"
	"time"

	"github.com/Jontyellis1212/policysprint-ai-sub000/brand"
	"github.com/Jontyellis1212/policysprint-ai-sub000/cover"
	"github.com/Jontyellis1212/policysprint-ai-sub000/logging"
	"github.com/Jontyellis1212/policysprint-ai-sub000/paginate"
	"github.com/Jontyellis1212/policysprint-ai-sub000/surface"
)

// Result is a rendered document.
type Result struct {
	PDF []byte
	// Pages counts every page, cover included.
	Pages int
	// Sections reports how each rendered section ended, in order.
	Sections []SectionResult
}

// SectionResult is the outcome of one section.
type SectionResult struct {
	Heading string
	Outcome paginate.Outcome
}

// Truncated reports whether any section lost content to a page budget.
func (r *Result) Truncated() bool {
	for _, s := range r.Sections {
		if s.Outcome.Truncated() {
			return true
		}
	}
	return false
}

// document is what each renderer supplies to the shared pipeline.
type document interface {
	kind() string
	metadata() surface.Options
	cover(generated time.Time) cover.Info
	footerLabel() string
	sections() []paginate.Section
}

// render runs the pipeline shared by every document kind: brand assets are
// loaded first, then the cover, the sections in order and the footers.
func render(doc document, mode Mode, cfg renderConfig) (*Result, error) {
	log := logging.Or(cfg.logger).With(slog.String("document", doc.kind()), slog.String("mode", mode.String()))
	mark := brand.Load(cfg.assets, cfg.brandCandidates, log)
	now := cfg.now()

	meta := doc.metadata()
	meta.Compress = cfg.compress
	meta.Created = now
	s := surface.New(meta)
	if cfg.letterhead != "" {
		if err := s.ImportLetterhead(cfg.letterhead); err != nil {
			log.Warn("letterhead skipped", slog.String("path", cfg.letterhead), slog.Any("error", err))
		}
	}

	pcfg := paginate.Config{
		MaxTotalPages:    cfg.maxTotalPages,
		MaxSectionPages:  cfg.maxSectionPages,
		WatermarkOpacity: cfg.watermarkOpacity,
		FooterLabel:      doc.footerLabel(),
		Logger:           log,
	}
	if mode == ModePreview {
		pcfg.Watermark = cfg.watermark
	}
	state := &paginate.State{}
	d := paginate.New(s, state, pcfg)

	cover.Compose(d, doc.cover(now), cover.Options{Mark: mark, BrandName: cfg.brandName, Code: cfg.code})
	res := &Result{}
	for _, sec := range doc.sections() {
		res.Sections = append(res.Sections, SectionResult{Heading: sec.Heading, Outcome: d.RenderSection(sec)})
	}
	d.Finalize()

	if err := s.Err(); err != nil {
		return nil, newRenderError("draw", err)
	}
	data, err := s.Bytes()
	if err != nil {
		return nil, newRenderError("output", err)
	}
	res.PDF = data
	res.Pages = state.TotalPages
	log.Info("document rendered", slog.Int("pages", res.Pages), slog.Int("bytes", len(data)),
		slog.Bool("truncated", res.Truncated()))
	return res, nil
}

// RenderPolicy renders a policy document: cover, optional contents, the
// policy body and an optional disclaimer. A blank policy text fails with a
// *FieldError before anything is drawn.
func RenderPolicy(p PolicyPayload, mode Mode, opts ...Option) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return render(newPolicyDocument(p), mode, newRenderConfig(opts))
}

// RenderQuiz renders a quiz document: cover, one block per parsed question
// and, unless disabled, an answer key. A blank quiz text fails with a
// *FieldError before anything is drawn.
func RenderQuiz(q QuizPayload, mode Mode, opts ...Option) (*Result, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return render(newQuizDocument(q), mode, newRenderConfig(opts))
}

// WritePolicy renders p and writes the PDF to w. It returns the page count.
func WritePolicy(w io.Writer, p PolicyPayload, mode Mode, opts ...Option) (int, error) {
	res, err := RenderPolicy(p, mode, opts...)
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(res.PDF); err != nil {
		return 0, newRenderError("write", err)
	}
	return res.Pages, nil
}

// WriteQuiz renders q and writes the PDF to w. It returns the page count.
func WriteQuiz(w io.Writer, q QuizPayload, mode Mode, opts ...Option) (int, error) {
	res, err := RenderQuiz(q, mode, opts...)
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(res.PDF); err != nil {
		return 0, newRenderError("write", err)
	}
	return res.Pages, nil
}
