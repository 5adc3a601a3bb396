package policypdf_test

import (
	"fmt"
	"time"

	policypdf "github.com/Jontyellis1212/policysprint-ai-sub000"
)

func ExampleRenderPolicy() {
	res, err := policypdf.RenderPolicy(policypdf.PolicyPayload{
		BusinessName: "Harbour Street Bakery",
		PolicyText:   "1. Purpose\nStaff may use approved AI tools for drafting.\n\n2. Data\nNever paste customer records into a public chatbot.",
	}, policypdf.ParseMode("download"),
		policypdf.WithClock(func() time.Time { return time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC) }))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("pages:", res.Pages)
	fmt.Println("truncated:", res.Truncated())
	// Output:
	// pages: 2
	// truncated: false
}

func ExampleRenderQuiz() {
	res, err := policypdf.RenderQuiz(policypdf.QuizPayload{
		QuizText: "1. Who approves new AI tools?\nA) The IT manager\nB) Anyone\nCorrect answer: A",
	}, policypdf.ModePreview)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, s := range res.Sections {
		fmt.Println(s.Heading, s.Outcome)
	}
	// Output:
	// Quiz Questions complete
	// Answer Key complete
}

func ExampleSuggestFilename() {
	name := policypdf.SuggestFilename("Café Olé", "AI Policy")
	fmt.Println(name)
	fmt.Println(policypdf.ContentDisposition(policypdf.ModeDownload, name))
	// Output:
	// cafe-ole-ai-policy.pdf
	// attachment; filename=cafe-ole-ai-policy.pdf
}
