package policypdf

import (
	"iter"
	"strconv"
	"time"

	"github.com/Jontyellis1212/policysprint-ai-sub000/cover"
	"github.com/Jontyellis1212/policysprint-ai-sub000/paginate"
	"github.com/Jontyellis1212/policysprint-ai-sub000/quiz"
	"github.com/Jontyellis1212/policysprint-ai-sub000/surface"
	"github.com/Jontyellis1212/policysprint-ai-sub000/theme"
)

const (
	defaultQuizTitle = "AI Policy Staff Quiz"
	quizKind         = "Staff Training Quiz"
)

type quizDocument struct {
	q         QuizPayload
	questions []quiz.Question
}

func newQuizDocument(q QuizPayload) *quizDocument {
	q = q.Normalized()
	if q.Title == "" {
		q.Title = defaultQuizTitle
	}
	return &quizDocument{q: q, questions: quiz.Parse(q.QuizText)}
}

func (d *quizDocument) kind() string { return "quiz" }

func (d *quizDocument) metadata() surface.Options {
	return surface.Options{
		Title:   d.q.Title,
		Author:  d.q.BusinessName,
		Subject: quizKind,
		Creator: cover.DefaultBrandName,
	}
}

func (d *quizDocument) cover(generated time.Time) cover.Info {
	key := "Included"
	if !d.q.AnswerKey() {
		key = "Not included"
	}
	info := cover.Info{
		Kind:     quizKind,
		Title:    d.q.Title,
		Business: d.q.BusinessName,
		Facts: []cover.Fact{
			{Label: "Questions", Value: strconv.Itoa(len(d.questions))},
			{Label: "Answer key", Value: key},
		},
		Generated:  generated,
		Reference:  reference("quiz", d.q.BusinessName, d.q.Title, d.q.QuizText),
		Disclaimer: coverDisclaimer,
	}
	if d.q.PolicyTitle != "" {
		info.Subtitle = "Based on: " + d.q.PolicyTitle
	}
	return info
}

func (d *quizDocument) footerLabel() string {
	return footerLabel(d.q.BusinessName, d.q.Title)
}

func (d *quizDocument) sections() []paginate.Section {
	out := []paginate.Section{{
		Heading:  HeadingQuestions,
		Body:     questionBlocks(d.questions),
		Uncapped: true,
	}}
	if d.q.AnswerKey() {
		out = append(out, paginate.Section{Heading: HeadingAnswerKey, Body: answerBlocks(d.questions)})
	}
	return out
}

// questionBlocks keeps each question with its options on one page.
func questionBlocks(qs []quiz.Question) iter.Seq[paginate.Block] {
	return func(yield func(paginate.Block) bool) {
		for _, q := range qs {
			lines := q.Lines()
			b := paginate.Block{Lines: make([]paginate.Line, 0, len(lines))}
			for i, l := range lines {
				style := paginate.StyleOption
				if i == 0 {
					style = paginate.StyleStrong
				}
				b.Lines = append(b.Lines, paginate.Line{Text: l, Style: style})
			}
			if !yield(b) || !yield(paginate.Spacer(theme.QuestionGap)) {
				return
			}
		}
	}
}

func answerBlocks(qs []quiz.Question) iter.Seq[paginate.Block] {
	return func(yield func(paginate.Block) bool) {
		for _, l := range quiz.AnswerKey(qs) {
			if !yield(paginate.Text(paginate.StyleBody, l)) {
				return
			}
		}
	}
}
