// Package quiz recovers numbered multiple-choice questions from loosely
// formatted generated text.
//
// Parsing is best effort. The source text has no schema, so lines that do not
// look like a prompt, an option or an answer are dropped, a question may end
// up with no options or no recorded answer, and input with no numbered
// question at all yields a single placeholder question.
package quiz

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxOptions is the number of answer options kept per question.
const MaxOptions = 4

// Option is one labelled answer choice.
type Option struct {
	Label string `json:"label"` // "A" to "D"
	Text  string `json:"text"`
}

// Question is a parsed quiz question.
type Question struct {
	Number  int      `json:"number"`
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
	Correct string   `json:"correct,omitempty"` // "" when no answer was found
}

var (
	questionStart = regexp.MustCompile(`^\s*\d+[.)]`)
	questionToken = regexp.MustCompile(`^\s*\d+[.)]\s*`)
	correctLine   = regexp.MustCompile(`(?i)^correct\s+answer\s*:\s*\(?([a-d])\b`)
	optionPunct   = regexp.MustCompile(`(?i)^([a-d])\s*[.):\-]\s*(.+)$`)
	optionSpace   = regexp.MustCompile(`(?i)^([a-d])\s+(.+)$`)
)

// Placeholder is returned when no question can be recovered.
func Placeholder() Question {
	return Question{Number: 1, Prompt: "Quiz"}
}

// Parse splits text into questions. It never returns an empty slice.
func Parse(text string) []Question {
	var out []Question
	for _, chunk := range chunks(text) {
		q := parseChunk(chunk)
		q.Number = len(out) + 1
		out = append(out, q)
	}
	if len(out) == 0 {
		return []Question{Placeholder()}
	}
	return out
}

// chunks groups lines into per-question blocks. A block starts at every line
// that begins with a "<number>." or "<number>)" token; lines before the first
// such line are discarded.
func chunks(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out [][]string
	for _, line := range strings.Split(text, "\n") {
		if questionStart.MatchString(line) {
			out = append(out, []string{line})
			continue
		}
		if len(out) > 0 {
			out[len(out)-1] = append(out[len(out)-1], line)
		}
	}
	return out
}

func parseChunk(lines []string) Question {
	q := Question{
		Prompt: strings.TrimSpace(questionToken.ReplaceAllString(lines[0], "")),
	}
	for _, raw := range lines[1:] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if m := correctLine.FindStringSubmatch(line); m != nil {
			q.Correct = strings.ToUpper(m[1])
			continue
		}
		label, text, ok := parseOption(line)
		if !ok || len(q.Options) >= MaxOptions {
			continue
		}
		q.Options = append(q.Options, Option{Label: label, Text: text})
	}
	return q
}

func parseOption(line string) (label, text string, ok bool) {
	m := optionPunct.FindStringSubmatch(line)
	if m == nil {
		m = optionSpace.FindStringSubmatch(line)
	}
	if m == nil {
		return "", "", false
	}
	text = strings.TrimSpace(m[2])
	if text == "" {
		return "", "", false
	}
	return strings.ToUpper(m[1]), text, true
}

// AnswerKey returns one printable line per question, e.g. "3. B".
func AnswerKey(questions []Question) []string {
	lines := make([]string, 0, len(questions))
	for _, q := range questions {
		answer := q.Correct
		if answer == "" {
			answer = "Not provided"
		}
		lines = append(lines, fmt.Sprintf("%d. %s", q.Number, answer))
	}
	return lines
}

// Lines renders a question as display lines: the numbered prompt followed by
// its options.
func (q Question) Lines() []string {
	lines := make([]string, 0, 1+len(q.Options))
	lines = append(lines, fmt.Sprintf("%d. %s", q.Number, q.Prompt))
	for _, o := range q.Options {
		lines = append(lines, fmt.Sprintf("%s) %s", o.Label, o.Text))
	}
	return lines
}
