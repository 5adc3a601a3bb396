package policypdf

import (
	"errors"
	"strings"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"preview", ModePreview},
		{"PREVIEW", ModePreview},
		{" Preview ", ModePreview},
		{"download", ModeDownload},
		{"", ModeDownload},
		{"print", ModeDownload},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestContentDisposition(t *testing.T) {
	tests := []struct {
		mode     Mode
		filename string
		want     string
	}{
		{ModePreview, "acme-ai-policy.pdf", "inline; filename=acme-ai-policy.pdf"},
		{ModeDownload, "acme-ai-policy.pdf", "attachment; filename=acme-ai-policy.pdf"},
		{ModeDownload, "", "attachment"},
		{ModePreview, "my policy.pdf", `inline; filename="my policy.pdf"`},
	}
	for _, tt := range tests {
		if got := ContentDisposition(tt.mode, tt.filename); got != tt.want {
			t.Errorf("ContentDisposition(%v, %q) = %q, want %q", tt.mode, tt.filename, got, tt.want)
		}
	}
}

func TestSuggestFilename(t *testing.T) {
	tests := []struct {
		business, document, want string
	}{
		{"Harbour Street Bakery", "AI Policy", "harbour-street-bakery-ai-policy.pdf"},
		{"Café Olé", "Quiz", "cafe-ole-quiz.pdf"},
		{"Smith & Sons Ltd.", "AI Policy", "smith-and-sons-ltd-ai-policy.pdf"},
		{"   ", "AI Policy", "policysprint-ai-policy.pdf"},
		{"漢字", "", "policysprint-document.pdf"},
		{"--Acme--", "  Staff   Quiz!! ", "acme-staff-quiz.pdf"},
	}
	for _, tt := range tests {
		if got := SuggestFilename(tt.business, tt.document); got != tt.want {
			t.Errorf("SuggestFilename(%q, %q) = %q, want %q", tt.business, tt.document, got, tt.want)
		}
	}

	long := SuggestFilename(strings.Repeat("word ", 50), "policy")
	if len(long) > 100 || !strings.HasSuffix(long, ".pdf") || strings.Contains(long, "-.pdf") {
		t.Errorf("long name not bounded: %q", long)
	}
}

func TestPayloadNormalized(t *testing.T) {
	p := PolicyPayload{
		Title:        "  AI\r\nPolicy ",
		BusinessName: "Acme Ltd",
		PolicyText:   "one\r\n\r\n\r\n\r\ntwo\f",
	}.Normalized()
	if p.Title != "AI Policy" || p.BusinessName != "Acme Ltd" {
		t.Errorf("single-line fields not collapsed: %+v", p)
	}
	if p.PolicyText != "one\n\ntwo" {
		t.Errorf("PolicyText = %q", p.PolicyText)
	}
}

func TestQuizAnswerKeyDefault(t *testing.T) {
	on, off := true, false
	if !(QuizPayload{}).AnswerKey() || !(QuizPayload{IncludeAnswerKey: &on}).AnswerKey() {
		t.Error("answer key must default to included")
	}
	if (QuizPayload{IncludeAnswerKey: &off}).AnswerKey() {
		t.Error("explicit false must disable the answer key")
	}
}

func TestDecodePayloads(t *testing.T) {
	p, err := DecodePolicy(strings.NewReader(`{"businessName":"Acme","policyText":"Be careful."}`))
	if err != nil || p.BusinessName != "Acme" || p.PolicyText != "Be careful." {
		t.Errorf("DecodePolicy = %+v, %v", p, err)
	}
	q, err := DecodeQuiz(strings.NewReader(`{"quizText":"1. Q?","includeAnswerKey":false}`))
	if err != nil || q.AnswerKey() {
		t.Errorf("DecodeQuiz = %+v, %v", q, err)
	}
	if _, err := DecodePolicy(strings.NewReader(`{`)); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("expected ErrInvalidPayload for bad JSON, got %v", err)
	}
}

func TestErrors(t *testing.T) {
	fe := &FieldError{Field: "policyText", Reason: "must not be blank"}
	if fe.Error() != "policypdf: invalid payload: policyText must not be blank" {
		t.Errorf("FieldError.Error() = %q", fe.Error())
	}
	cause := errors.New("boom")
	re := newRenderError("draw", cause)
	if re.Error() != "policypdf.draw: boom" || !errors.Is(re, cause) {
		t.Errorf("RenderError = %q", re.Error())
	}
	if (&RenderError{Op: "output"}).Error() != "policypdf.output: unknown error" {
		t.Error("RenderError without cause")
	}
}

func TestReferenceIsStable(t *testing.T) {
	a := reference("policy", "Acme", "Title", "Body")
	if a != reference("policy", "Acme", "Title", "Body") {
		t.Error("reference not stable")
	}
	if a == reference("policy", "Acme", "TitleBody", "") {
		t.Error("reference ignores field boundaries")
	}
	if !strings.HasPrefix(a, "PS-") || len(a) != 11 {
		t.Errorf("unexpected reference %q", a)
	}
}

func TestEffectiveLimits(t *testing.T) {
	if got := EffectiveLimits(); got != (Limits{18, 10}) {
		t.Errorf("defaults = %+v", got)
	}
	if got := EffectiveLimits(WithMaxTotalPages(6), WithMaxSectionPages(2)); got != (Limits{6, 2}) {
		t.Errorf("configured = %+v", got)
	}
	if got := EffectiveLimits(WithMaxTotalPages(1), WithMaxSectionPages(0)); got != (Limits{18, 10}) {
		t.Errorf("invalid values must be ignored, got %+v", got)
	}
}
