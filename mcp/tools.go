package mcp

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lvillar/gofpdf/reader"

	policypdf "github.com/Jontyellis1212/policysprint-ai-sub000"
	"github.com/Jontyellis1212/policysprint-ai-sub000/quiz"
)

// OptionSource supplies the render options for each tool call, so a
// reloaded configuration applies to the next render.
type OptionSource func() []policypdf.Option

// StaticOptions returns a source that always yields opts.
func StaticOptions(opts ...policypdf.Option) OptionSource {
	return func() []policypdf.Option { return opts }
}

// RegisterDefaultTools adds the render, parse and inspect tools. opts apply
// to every render the server performs.
func RegisterDefaultTools(s *Server, opts ...policypdf.Option) {
	RegisterTools(s, StaticOptions(opts...))
}

// RegisterTools adds the render, parse and inspect tools, reading render
// options from src on every call.
func RegisterTools(s *Server, src OptionSource) {
	s.AddTool(renderPolicyTool(src))
	s.AddTool(renderQuizTool(src))
	s.AddTool(parseQuizTool())
	s.AddTool(inspectPDFTool())
}

// renderSummary is the JSON text returned by both render tools.
type renderSummary struct {
	Pages              int              `json:"pages"`
	Truncated          bool             `json:"truncated"`
	Sections           []sectionSummary `json:"sections"`
	Filename           string           `json:"filename"`
	ContentDisposition string           `json:"contentDisposition"`
	Path               string           `json:"path,omitempty"`
	Bytes              int              `json:"bytes"`
}

type sectionSummary struct {
	Heading string `json:"heading"`
	Outcome string `json:"outcome"`
}

func renderSchema(payloadDesc string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"payload": map[string]any{
				"type":        "object",
				"description": payloadDesc,
			},
			"mode": map[string]any{
				"type":        "string",
				"enum":        []string{"download", "preview"},
				"description": "preview stamps a watermark on every page. Defaults to download.",
			},
			"outputPath": map[string]any{
				"type":        "string",
				"description": "Optional file path to save the PDF. If omitted, the PDF is returned as base64.",
			},
		},
		"required": []string{"payload"},
	}
}

func renderPolicyTool(src OptionSource) Tool {
	return Tool{
		Name:        "render_policy_pdf",
		Description: "Render an AI acceptable use policy as a branded PDF with a cover page, page budgets and footers.",
		InputSchema: renderSchema("Policy payload: policyText (required), title, businessName, country, industry, contentsText, disclaimerText"),
		Handler: func(args map[string]any) (ToolResult, error) {
			raw, err := payloadArg(args)
			if err != nil {
				return ToolResult{}, err
			}
			p, err := policypdf.DecodePolicy(bytes.NewReader(raw))
			if err != nil {
				return ToolResult{}, err
			}
			mode := policypdf.ParseMode(stringArg(args, "mode"))
			res, err := policypdf.RenderPolicy(p, mode, src()...)
			if err != nil {
				return ToolResult{}, err
			}
			return renderResult(res, mode, policypdf.SuggestFilename(p.BusinessName, "AI Policy"), stringArg(args, "outputPath"))
		},
	}
}

func renderQuizTool(src OptionSource) Tool {
	return Tool{
		Name:        "render_quiz_pdf",
		Description: "Render a multiple-choice staff quiz as a PDF, with an optional answer key section.",
		InputSchema: renderSchema("Quiz payload: quizText (required), title, businessName, policyTitle, includeAnswerKey"),
		Handler: func(args map[string]any) (ToolResult, error) {
			raw, err := payloadArg(args)
			if err != nil {
				return ToolResult{}, err
			}
			q, err := policypdf.DecodeQuiz(bytes.NewReader(raw))
			if err != nil {
				return ToolResult{}, err
			}
			mode := policypdf.ParseMode(stringArg(args, "mode"))
			res, err := policypdf.RenderQuiz(q, mode, src()...)
			if err != nil {
				return ToolResult{}, err
			}
			return renderResult(res, mode, policypdf.SuggestFilename(q.BusinessName, "AI Quiz"), stringArg(args, "outputPath"))
		},
	}
}

func renderResult(res *policypdf.Result, mode policypdf.Mode, filename, outputPath string) (ToolResult, error) {
	sum := renderSummary{
		Pages:              res.Pages,
		Truncated:          res.Truncated(),
		Filename:           filename,
		ContentDisposition: policypdf.ContentDisposition(mode, filename),
		Bytes:              len(res.PDF),
	}
	for _, sec := range res.Sections {
		sum.Sections = append(sum.Sections, sectionSummary{Heading: sec.Heading, Outcome: sec.Outcome.String()})
	}

	var blocks []ContentBlock
	if outputPath != "" {
		if err := os.WriteFile(outputPath, res.PDF, 0o644); err != nil {
			return ToolResult{}, fmt.Errorf("writing file: %w", err)
		}
		sum.Path = outputPath
	} else {
		blocks = append(blocks, ContentBlock{
			Type:     "resource",
			MIMEType: "application/pdf",
			Data:     base64.StdEncoding.EncodeToString(res.PDF),
		})
	}

	text, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return ToolResult{}, err
	}
	return ToolResult{Content: append([]ContentBlock{{Type: "text", Text: string(text)}}, blocks...)}, nil
}

func parseQuizTool() Tool {
	return Tool{
		Name:        "parse_quiz",
		Description: "Parse generated quiz text into numbered questions with up to four options and the correct answer, as the quiz renderer sees them.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"quizText": map[string]any{
					"type":        "string",
					"description": "Quiz text with numbered questions, A-D options and 'Correct answer:' lines",
				},
			},
			"required": []string{"quizText"},
		},
		Handler: handleParseQuiz,
	}
}

func handleParseQuiz(args map[string]any) (ToolResult, error) {
	text, ok := args["quizText"].(string)
	if !ok {
		return ToolResult{}, fmt.Errorf("missing 'quizText' argument")
	}
	qs := quiz.Parse(text)
	out := map[string]any{
		"questions": qs,
		"answerKey": quiz.AnswerKey(qs),
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return ToolResult{}, err
	}
	return ToolResult{Content: []ContentBlock{{Type: "text", Text: string(data)}}}, nil
}

func inspectPDFTool() Tool {
	return Tool{
		Name:        "inspect_pdf",
		Description: "Read a PDF file and report its version, page count and metadata, optionally with the text of each page.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Path to the PDF file",
				},
				"text": map[string]any{
					"type":        "boolean",
					"description": "Include the extracted text of every page",
				},
			},
			"required": []string{"path"},
		},
		Handler: handleInspectPDF,
	}
}

func handleInspectPDF(args map[string]any) (ToolResult, error) {
	path := stringArg(args, "path")
	if path == "" {
		return ToolResult{}, fmt.Errorf("missing 'path' argument")
	}
	doc, err := reader.Open(path)
	if err != nil {
		return ToolResult{}, fmt.Errorf("opening PDF: %w", err)
	}

	info := map[string]any{
		"version":  doc.Version,
		"numPages": doc.NumPages(),
		"metadata": doc.Metadata(),
	}
	if withText, _ := args["text"].(bool); withText {
		info["pages"] = pageTexts(doc)
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return ToolResult{}, err
	}
	return ToolResult{Content: []ContentBlock{{Type: "text", Text: string(data)}}}, nil
}

func pageTexts(doc *reader.Document) []string {
	var out []string
	for _, page := range doc.Pages() {
		text, err := page.ExtractText()
		if err != nil {
			text = fmt.Sprintf("(error: %v)", err)
		}
		out = append(out, strings.TrimSpace(text))
	}
	return out
}

// payloadArg re-encodes the decoded payload object so it goes through the
// same JSON decoding as an HTTP body would.
func payloadArg(args map[string]any) ([]byte, error) {
	v, ok := args["payload"]
	if !ok {
		return nil, fmt.Errorf("missing 'payload' argument")
	}
	if s, ok := v.(string); ok {
		return []byte(s), nil
	}
	return json.Marshal(v)
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}
