package quiz_test

import (
	"fmt"

	"github.com/Jontyellis1212/policysprint-ai-sub000/quiz"
)

func ExampleParse() {
	text := `1. Which tool may process customer data?
A) Any public chatbot
B) The approved internal assistant
Correct answer: B)
2) Who reviews AI output before it is sent?
A - The author
B - Nobody
Correct answer: A`

	for _, q := range quiz.Parse(text) {
		fmt.Printf("%d %q options=%d correct=%s\n", q.Number, q.Prompt, len(q.Options), q.Correct)
	}
	fmt.Println(quiz.AnswerKey(quiz.Parse(text)))
	// Output:
	// 1 "Which tool may process customer data?" options=2 correct=B
	// 2 "Who reviews AI output before it is sent?" options=2 correct=A
	// [1. B 2. A]
}
