// Package theme holds the colors, fonts and page geometry shared by every
// drawing routine. All lengths are PDF points on an A4 portrait page.
package theme

// Color is an RGB color value.
type Color struct {
	R, G, B int
}

// Palette.
var (
	Navy      = Color{15, 23, 42}
	Ink       = Color{30, 41, 59}
	Muted     = Color{100, 116, 139}
	Accent    = Color{13, 148, 136}
	AccentInk = Color{204, 251, 241}
	Panel     = Color{248, 250, 252}
	Border    = Color{226, 232, 240}
	Watermark = Color{148, 163, 184}
	Warning   = Color{180, 83, 9}
	White     = Color{255, 255, 255}
)

// Font families. Core fonts only, so no font files are needed at runtime.
const (
	Sans  = "Helvetica"
	Serif = "Times"
)

// TextStyle is a complete text state: font, size and fill color.
type TextStyle struct {
	Family string
	Style  string // "", "B", "I" or "BI"
	Size   float64
	Color  Color
}

// Typography scale.
var (
	Body      = TextStyle{Sans, "", 10.5, Ink}
	Strong    = TextStyle{Sans, "B", 10.5, Navy}
	Heading   = TextStyle{Sans, "B", 18, Navy}
	Continued = TextStyle{Sans, "B", 8.5, Muted}
	Footer    = TextStyle{Sans, "", 8.5, Muted}
	Notice    = TextStyle{Sans, "I", 9, Warning}
	Small     = TextStyle{Sans, "", 8, Muted}
	Label     = TextStyle{Sans, "B", 8, Muted}
	HeroName  = TextStyle{Serif, "B", 30, Navy}
	HeroTitle = TextStyle{Sans, "", 16, Ink}
	Wordmark  = TextStyle{Sans, "B", 20, White}
	StripTag  = TextStyle{Sans, "B", 8.5, AccentInk}
	CardValue = TextStyle{Sans, "", 10, Ink}
	Mark      = TextStyle{Sans, "B", 72, Watermark}
)

// Default is the text style every scoped drawing routine restores.
var Default = Body

// LineFactor converts a font size to a line advance.
const LineFactor = 1.45

// Page geometry.
const (
	PageWidth  = 595.28
	PageHeight = 841.89

	Margin       = 56.0
	ContentWidth = PageWidth - 2*Margin

	// HeaderTop is the top of the section header band.
	HeaderTop = 52.0
	// ContentTop is where body text starts on every content page.
	ContentTop = 112.0
	// ContentBottom is the lowest point body text may reach. The band between
	// it and FooterRule is reserved for the truncation notice.
	ContentBottom = PageHeight - 100.0
	// FooterRule is the y position of the footer divider.
	FooterRule = PageHeight - 62.0
	// FooterBaseline is the baseline of the "Page N of M" text.
	FooterBaseline = PageHeight - 44.0

	// BackdropInset is how far the backdrop panel extends past the text column.
	BackdropInset = 16.0
	// ParagraphGap is the vertical advance for a blank line.
	ParagraphGap = 8.0
	// OptionIndent is the left indent of quiz answer options.
	OptionIndent = 16.0
	// QuestionGap separates quiz questions.
	QuestionGap = 10.0

	// AccentBarWidth and AccentBarHeight size the first-page header bar.
	AccentBarWidth  = 4.0
	AccentBarHeight = 24.0

	CoverStripHeight = 150.0
	CardRadius       = 10.0

	WatermarkAngle   = 45.0
	WatermarkOpacity = 0.12
)

// LineHeight returns the advance for one row of text in the given style.
func LineHeight(st TextStyle) float64 {
	return st.Size * LineFactor
}
