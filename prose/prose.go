// Package prose cleans generated body text and splits it into paragraphs and
// lines for the pagination engine.
package prose

import (
	"regexp"
	"strings"
)

var (
	blankRun   = regexp.MustCompile(`\n{3,}`)
	headingRun = regexp.MustCompile(`^\d+[.)]\s+\S`)
)

// Normalize converts CRLF, CR and the Unicode line/paragraph separators to
// LF, strips form feeds, collapses runs of three or more newlines to exactly
// two and trims the result. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\f':
			return -1
		case '\u2028', '\u2029':
			return '\n'
		}
		return r
	}, s)
	s = blankRun.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Line is one line of body text.
type Line struct {
	Text    string
	Heading bool // numbered heading, rendered bold
	Blank   bool // paragraph separator, rendered as a vertical gap
}

// Paragraph is a run of lines separated from its neighbours by a blank line.
type Paragraph struct {
	Lines []Line
}

// IsHeading reports whether a line starts with a numbered-list token such as
// "1." or "2)" followed by content.
func IsHeading(line string) bool {
	return headingRun.MatchString(strings.TrimSpace(line))
}

// Paragraphs splits normalized text on blank lines and then on newlines.
// Empty paragraphs are dropped.
func Paragraphs(text string) []Paragraph {
	var out []Paragraph
	for _, block := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(block) == "" {
			continue
		}
		var p Paragraph
		for _, raw := range strings.Split(block, "\n") {
			raw = strings.TrimRight(raw, " \t")
			if strings.TrimSpace(raw) == "" {
				p.Lines = append(p.Lines, Line{Blank: true})
				continue
			}
			p.Lines = append(p.Lines, Line{Text: raw, Heading: IsHeading(raw)})
		}
		out = append(out, p)
	}
	return out
}

// Lines normalizes text and flattens its paragraphs into a single stream,
// with one blank line between consecutive paragraphs.
func Lines(text string) []Line {
	var out []Line
	for i, p := range Paragraphs(Normalize(text)) {
		if i > 0 {
			out = append(out, Line{Blank: true})
		}
		out = append(out, p.Lines...)
	}
	return out
}
