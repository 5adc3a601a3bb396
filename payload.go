package policypdf

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Jontyellis1212/policysprint-ai-sub000/prose"
)

// PolicyPayload is the input of RenderPolicy. Only PolicyText is required.
type PolicyPayload struct {
	Title          string `json:"title,omitempty"`
	BusinessName   string `json:"businessName,omitempty"`
	Country        string `json:"country,omitempty"`
	Industry       string `json:"industry,omitempty"`
	ContentsText   string `json:"contentsText,omitempty"`
	PolicyText     string `json:"policyText"`
	DisclaimerText string `json:"disclaimerText,omitempty"`
}

// QuizPayload is the input of RenderQuiz. Only QuizText is required.
type QuizPayload struct {
	Title        string `json:"title,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
	PolicyTitle  string `json:"policyTitle,omitempty"`
	QuizText     string `json:"quizText"`
	// IncludeAnswerKey defaults to true when absent.
	IncludeAnswerKey *bool `json:"includeAnswerKey,omitempty"`
}

// AnswerKey reports whether the answer key section is rendered.
func (q QuizPayload) AnswerKey() bool {
	return q.IncludeAnswerKey == nil || *q.IncludeAnswerKey
}

// Normalized returns a copy with every text field cleaned by
// prose.Normalize and every single-line field trimmed.
func (p PolicyPayload) Normalized() PolicyPayload {
	return PolicyPayload{
		Title:          oneLine(p.Title),
		BusinessName:   oneLine(p.BusinessName),
		Country:        oneLine(p.Country),
		Industry:       oneLine(p.Industry),
		ContentsText:   prose.Normalize(p.ContentsText),
		PolicyText:     prose.Normalize(p.PolicyText),
		DisclaimerText: prose.Normalize(p.DisclaimerText),
	}
}

// Validate reports the first invalid field as a *FieldError.
func (p PolicyPayload) Validate() error {
	if prose.Normalize(p.PolicyText) == "" {
		return &FieldError{Field: "policyText", Reason: "must not be blank"}
	}
	return nil
}

// Normalized returns a cleaned copy of q.
func (q QuizPayload) Normalized() QuizPayload {
	return QuizPayload{
		Title:            oneLine(q.Title),
		BusinessName:     oneLine(q.BusinessName),
		PolicyTitle:      oneLine(q.PolicyTitle),
		QuizText:         prose.Normalize(q.QuizText),
		IncludeAnswerKey: q.IncludeAnswerKey,
	}
}

// Validate reports the first invalid field as a *FieldError.
func (q QuizPayload) Validate() error {
	if prose.Normalize(q.QuizText) == "" {
		return &FieldError{Field: "quizText", Reason: "must not be blank"}
	}
	return nil
}

// DecodePolicy reads a JSON policy payload.
func DecodePolicy(r io.Reader) (PolicyPayload, error) {
	var p PolicyPayload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return p, nil
}

// DecodeQuiz reads a JSON quiz payload.
func DecodeQuiz(r io.Reader) (QuizPayload, error) {
	var q QuizPayload
	if err := json.NewDecoder(r).Decode(&q); err != nil {
		return q, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return q, nil
}

// oneLine collapses a field meant for a single line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(prose.Normalize(s)), " ")
}

// reference derives a short stable document reference from its content.
func reference(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		io.WriteString(h, p)
		h.Write([]byte{0})
	}
	return "PS-" + strings.ToUpper(hex.EncodeToString(h.Sum(nil)[:4]))
}
