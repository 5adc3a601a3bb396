package policypdf

import (
	"iter"
	"strings"
	"time"

	"github.com/Jontyellis1212/policysprint-ai-sub000/cover"
	"github.com/Jontyellis1212/policysprint-ai-sub000/paginate"
	"github.com/Jontyellis1212/policysprint-ai-sub000/prose"
	"github.com/Jontyellis1212/policysprint-ai-sub000/surface"
	"github.com/Jontyellis1212/policysprint-ai-sub000/theme"
)

const (
	defaultPolicyTitle = "AI Acceptable Use Policy"
	policyKind         = "AI Acceptable Use Policy"

	coverDisclaimer = "Generated with AI assistance. This document is general guidance, not legal advice. " +
		"Review it with a qualified adviser before adopting it."
)

// Section headings.
const (
	HeadingContents   = "Contents"
	HeadingPolicy     = "Policy"
	HeadingDisclaimer = "Disclaimer"
	HeadingQuestions  = "Quiz Questions"
	HeadingAnswerKey  = "Answer Key"
)

type policyDocument struct {
	p PolicyPayload
}

func newPolicyDocument(p PolicyPayload) *policyDocument {
	p = p.Normalized()
	if p.Title == "" {
		p.Title = defaultPolicyTitle
	}
	return &policyDocument{p: p}
}

func (d *policyDocument) kind() string { return "policy" }

func (d *policyDocument) metadata() surface.Options {
	return surface.Options{
		Title:   d.p.Title,
		Author:  d.p.BusinessName,
		Subject: policyKind,
		Creator: cover.DefaultBrandName,
	}
}

func (d *policyDocument) cover(generated time.Time) cover.Info {
	var names []string
	for _, s := range d.sections() {
		names = append(names, s.Heading)
	}
	return cover.Info{
		Kind:     policyKind,
		Title:    d.p.Title,
		Business: d.p.BusinessName,
		Industry: d.p.Industry,
		Country:  d.p.Country,
		Facts: []cover.Fact{
			{Label: "Document", Value: d.p.Title},
			{Label: "Sections", Value: strings.Join(names, ", ")},
		},
		Generated:  generated,
		Reference:  reference("policy", d.p.BusinessName, d.p.Title, d.p.PolicyText),
		Disclaimer: coverDisclaimer,
	}
}

func (d *policyDocument) footerLabel() string {
	return footerLabel(d.p.BusinessName, d.p.Title)
}

func (d *policyDocument) sections() []paginate.Section {
	var out []paginate.Section
	if d.p.ContentsText != "" {
		out = append(out, paginate.Section{Heading: HeadingContents, Body: proseBlocks(d.p.ContentsText)})
	}
	out = append(out, paginate.Section{Heading: HeadingPolicy, Body: proseBlocks(d.p.PolicyText)})
	if d.p.DisclaimerText != "" {
		out = append(out, paginate.Section{Heading: HeadingDisclaimer, Body: proseBlocks(d.p.DisclaimerText)})
	}
	return out
}

// proseBlocks streams text as one block per line. Numbered heading lines
// are bold and paragraph breaks become fixed gaps.
func proseBlocks(text string) iter.Seq[paginate.Block] {
	return func(yield func(paginate.Block) bool) {
		for _, ln := range prose.Lines(text) {
			var b paginate.Block
			switch {
			case ln.Blank:
				b = paginate.Spacer(theme.ParagraphGap)
			case ln.Heading:
				b = paginate.Text(paginate.StyleStrong, ln.Text)
			default:
				b = paginate.Text(paginate.StyleBody, ln.Text)
			}
			if !yield(b) {
				return
			}
		}
	}
}

func footerLabel(business, title string) string {
	if business == "" {
		return title
	}
	return business + " · " + title
}
