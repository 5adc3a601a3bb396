package paginate

import (
	"strings"

	"github.com/Jontyellis1212/policysprint-ai-sub000/theme"
)

// decorate prepares the current page for sec and moves the cursor to the
// top of the content area.
func (d *Document) decorate(sec Section, continued bool) {
	s := d.surf
	s.DrawLetterhead()
	s.Scoped(d.backdrop)
	d.Watermark()
	if continued {
		s.Scoped(func() { d.continuedHeader(sec.Heading) })
	} else {
		s.Scoped(func() { d.firstHeader(sec.Heading) })
	}
	d.y = theme.ContentTop
}

func (d *Document) backdrop() {
	s := d.surf
	x := theme.Margin - theme.BackdropInset
	y := theme.HeaderTop - theme.BackdropInset
	w := theme.ContentWidth + 2*theme.BackdropInset
	h := theme.FooterRule - 6 - y
	s.SetFill(theme.Panel)
	s.SetDraw(theme.Border)
	s.RoundedRect(x, y, w, h, theme.CardRadius, "FD")
}

// firstHeader draws the accent bar and the bold section heading.
func (d *Document) firstHeader(heading string) {
	s := d.surf
	s.SetFill(theme.Accent)
	s.FillRect(theme.Margin, theme.HeaderTop, theme.AccentBarWidth, theme.AccentBarHeight)
	s.SetStyle(theme.Heading)
	s.Text(theme.Margin+theme.AccentBarWidth+10, theme.HeaderTop+theme.Heading.Size, heading)
}

// continuedHeader draws a small uppercase label over a thin divider.
func (d *Document) continuedHeader(heading string) {
	s := d.surf
	s.SetStyle(theme.Continued)
	s.Text(theme.Margin, theme.HeaderTop+theme.Continued.Size, strings.ToUpper(heading)+" (CONTINUED)")
	s.SetDraw(theme.Border)
	s.SetLineWidth(0.75)
	s.HLine(theme.Margin, theme.PageWidth-theme.Margin, theme.HeaderTop+theme.Continued.Size+8)
}
