package paginate

import (
	"fmt"
	"log/slog"

	"github.com/Jontyellis1212/policysprint-ai-sub000/theme"
)

// Finalize stamps "Page i of N" on every page after the cover, where N
// excludes the cover, then makes the last page current again.
func (d *Document) Finalize() {
	s := d.surf
	total := s.PageCount()
	if total < 2 {
		return
	}
	for p := 2; p <= total; p++ {
		s.SetPage(p)
		label := fmt.Sprintf("Page %d of %d", p-1, total-1)
		s.Scoped(func() {
			s.SetDraw(theme.Border)
			s.SetLineWidth(0.5)
			s.HLine(theme.Margin, theme.PageWidth-theme.Margin, theme.FooterRule)
			s.SetStyle(theme.Footer)
			if d.cfg.FooterLabel != "" {
				s.Text(theme.Margin, theme.FooterBaseline, d.cfg.FooterLabel)
			}
			s.TextRight(theme.PageWidth-theme.Margin, theme.FooterBaseline, label)
		})
	}
	s.SetPage(total)
	d.log.Debug("footers stamped", slog.Int("pages", total-1))
}
