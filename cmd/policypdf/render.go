package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	policypdf "github.com/Jontyellis1212/policysprint-ai-sub000"
	"github.com/Jontyellis1212/policysprint-ai-sub000/logging"
	"github.com/Jontyellis1212/policysprint-ai-sub000/quiz"
)

func renderCmd(kind string) *cobra.Command {
	document := "AI Policy"
	textName := "policy"
	if kind == "quiz" {
		document = "AI Quiz"
		textName = "quiz"
	}

	cmd := &cobra.Command{
		Use:   kind,
		Short: fmt.Sprintf("Render a %s PDF", textName),
		Long: fmt.Sprintf(`Render a %[1]s PDF from a JSON payload or a plain text file.

Example:
  policypdf %[1]s --input payload.json --output out.pdf
  policypdf %[1]s --text %[1]s.txt --business "Harbour Street Bakery" --mode preview
  cat payload.json | policypdf %[1]s --input - --output - > out.pdf`, kind),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := renderOptions(cmd)
			if err != nil {
				return err
			}
			modeName, _ := cmd.Flags().GetString("mode")
			mode := policypdf.ParseMode(modeName)

			var (
				res      *policypdf.Result
				business string
			)
			switch kind {
			case "policy":
				p, err := readPolicy(cmd)
				if err != nil {
					return err
				}
				business = p.BusinessName
				res, err = policypdf.RenderPolicy(p, mode, opts...)
				if err != nil {
					return err
				}
			default:
				q, err := readQuiz(cmd)
				if err != nil {
					return err
				}
				business = q.BusinessName
				res, err = policypdf.RenderQuiz(q, mode, opts...)
				if err != nil {
					return err
				}
			}

			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				output = policypdf.SuggestFilename(business, document)
			}
			if err := writeOutput(cmd, output, res.PDF); err != nil {
				return err
			}

			log := logging.Logger()
			for _, s := range res.Sections {
				if s.Outcome.Truncated() {
					log.Warn("section truncated by page budget", slog.String("section", s.Heading), slog.String("outcome", s.Outcome.String()))
				}
			}
			if output != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d pages)\n", output, res.Pages)
			}
			return nil
		},
	}

	cmd.Flags().StringP("input", "i", "", "JSON payload file, - for stdin")
	cmd.Flags().StringP("text", "t", "", fmt.Sprintf("Plain %s text file, used instead of --input", textName))
	cmd.Flags().StringP("output", "o", "", "Output PDF path, - for stdout (default: a name derived from the business)")
	cmd.Flags().StringP("mode", "m", "download", "download or preview")
	cmd.Flags().String("business", "", "Business name, overrides the payload")
	cmd.Flags().String("title", "", "Document title, overrides the payload")
	if kind == "quiz" {
		cmd.Flags().String("policy-title", "", "Title of the policy the quiz is based on")
		cmd.Flags().Bool("no-answer-key", false, "Leave out the answer key section")
	} else {
		cmd.Flags().String("country", "", "Country shown on the cover")
		cmd.Flags().String("industry", "", "Industry shown on the cover")
	}
	addRenderFlags(cmd)
	return cmd
}

// readInput returns the JSON payload or the plain text named by the flags.
// Exactly one of them is set.
func readInput(cmd *cobra.Command) (payload, text []byte, err error) {
	input, _ := cmd.Flags().GetString("input")
	textPath, _ := cmd.Flags().GetString("text")
	switch {
	case input != "" && textPath != "":
		return nil, nil, fmt.Errorf("--input and --text are mutually exclusive")
	case input != "":
		payload, err = readFile(cmd, input)
		return payload, nil, err
	case textPath != "":
		text, err = readFile(cmd, textPath)
		return nil, text, err
	default:
		return nil, nil, fmt.Errorf("one of --input or --text is required")
	}
}

func readFile(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

func readPolicy(cmd *cobra.Command) (policypdf.PolicyPayload, error) {
	var p policypdf.PolicyPayload
	payload, text, err := readInput(cmd)
	if err != nil {
		return p, err
	}
	if payload != nil {
		if p, err = policypdf.DecodePolicy(bytes.NewReader(payload)); err != nil {
			return p, err
		}
	} else {
		p.PolicyText = string(text)
	}
	override(cmd, "business", &p.BusinessName)
	override(cmd, "title", &p.Title)
	override(cmd, "country", &p.Country)
	override(cmd, "industry", &p.Industry)
	return p, nil
}

func readQuiz(cmd *cobra.Command) (policypdf.QuizPayload, error) {
	var q policypdf.QuizPayload
	payload, text, err := readInput(cmd)
	if err != nil {
		return q, err
	}
	if payload != nil {
		if q, err = policypdf.DecodeQuiz(bytes.NewReader(payload)); err != nil {
			return q, err
		}
	} else {
		q.QuizText = string(text)
	}
	override(cmd, "business", &q.BusinessName)
	override(cmd, "title", &q.Title)
	override(cmd, "policy-title", &q.PolicyTitle)
	if off, _ := cmd.Flags().GetBool("no-answer-key"); off {
		q.IncludeAnswerKey = &[]bool{false}[0]
	}
	return q, nil
}

func override(cmd *cobra.Command, flag string, dst *string) {
	if v, err := cmd.Flags().GetString(flag); err == nil && v != "" {
		*dst = v
	}
}

func writeOutput(cmd *cobra.Command, path string, pdf []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(pdf)
		return err
	}
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func parseQuizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse-quiz",
		Short: "Print the questions recovered from quiz text as JSON",
		Long: `Parse quiz text the way the quiz renderer does and print the result.

Use it to check generated quiz text before rendering.

Example:
  policypdf parse-quiz --text quiz.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("text")
			if path == "" {
				path = "-"
			}
			data, err := readFile(cmd, path)
			if err != nil {
				return err
			}
			qs := quiz.Parse(string(data))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"questions": qs,
				"answerKey": quiz.AnswerKey(qs),
			})
		},
	}
	cmd.Flags().StringP("text", "t", "", "Quiz text file (default: stdin)")
	return cmd
}

func limitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Print the page budgets renders would use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := renderOptions(cmd)
			if err != nil {
				return err
			}
			l := policypdf.EffectiveLimits(opts...)
			fmt.Fprintf(cmd.OutOrStdout(), "max total pages:   %d\nmax section pages: %d\n", l.MaxTotalPages, l.MaxSectionPages)
			return nil
		},
	}
	addRenderFlags(cmd)
	return cmd
}
