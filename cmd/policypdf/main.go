// Command policypdf renders AI-use policies and staff quizzes to PDF and
// serves the same renderers to AI assistants over MCP.
//
//	policypdf policy --input payload.json --mode preview
//	policypdf quiz --text quiz.txt --business "Harbour Street Bakery"
//	policypdf parse-quiz --text quiz.txt
//	policypdf limits --config policypdf.yaml
//	policypdf mcp --config policypdf.yaml --watch
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	policypdf "github.com/Jontyellis1212/policysprint-ai-sub000"
	"github.com/Jontyellis1212/policysprint-ai-sub000/config"
	"github.com/Jontyellis1212/policysprint-ai-sub000/cover"
	"github.com/Jontyellis1212/policysprint-ai-sub000/logging"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "policypdf: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "policypdf",
		Short: "Render AI-use policies and staff quizzes as PDF documents",
		Long: `policypdf turns generated policy and quiz text into branded, paginated PDFs.

Every document gets a cover page, section headers, "Page i of N" footers and
page budgets that stop runaway text: 18 pages in total and 10 per policy
section unless configured otherwise. Preview mode stamps a watermark on
every page.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "YAML configuration file")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log at debug level")

	root.AddCommand(renderCmd("policy"))
	root.AddCommand(renderCmd("quiz"))
	root.AddCommand(parseQuizCmd())
	root.AddCommand(limitsCmd())
	root.AddCommand(mcpCmd())
	return root
}

// setupLogging installs a text logger on stderr. stdout is left alone
// because it may carry a PDF or MCP messages.
func setupLogging(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		f, err := config.Load(path)
		if err != nil {
			return err
		}
		level = f.Level()
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	return nil
}

// addRenderFlags registers the flags that override configuration settings.
func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-total-pages", 0, "Cap on the whole document, cover included")
	cmd.Flags().Int("max-section-pages", 0, "Cap on each policy section")
	cmd.Flags().String("asset-dir", "", "Directory holding brand images")
	cmd.Flags().String("brand-name", "", "Wordmark drawn when no brand image is found")
	cmd.Flags().String("letterhead", "", "PDF whose first page is drawn under every content page")
	cmd.Flags().String("watermark", "", "Preview watermark text")
	cmd.Flags().String("cover-code", "", "Reference code on the cover: qr, pdf417 or none")
}

// fileOptions returns the options from --config, if any.
func fileOptions(cmd *cobra.Command) ([]policypdf.Option, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return nil, nil
	}
	f, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return f.Options(), nil
}

// flagOptions returns options for the render flags that were set. They are
// applied after the configuration file and win over it.
func flagOptions(cmd *cobra.Command) ([]policypdf.Option, error) {
	var opts []policypdf.Option
	flags := cmd.Flags()
	if flags.Changed("max-total-pages") {
		n, _ := flags.GetInt("max-total-pages")
		if n < 2 {
			return nil, fmt.Errorf("--max-total-pages must be at least 2")
		}
		opts = append(opts, policypdf.WithMaxTotalPages(n))
	}
	if flags.Changed("max-section-pages") {
		n, _ := flags.GetInt("max-section-pages")
		if n < 1 {
			return nil, fmt.Errorf("--max-section-pages must be at least 1")
		}
		opts = append(opts, policypdf.WithMaxSectionPages(n))
	}
	if dir, _ := flags.GetString("asset-dir"); dir != "" {
		opts = append(opts, policypdf.WithAssetDir(dir))
	}
	if name, _ := flags.GetString("brand-name"); name != "" {
		opts = append(opts, policypdf.WithBrandName(name))
	}
	if path, _ := flags.GetString("letterhead"); path != "" {
		opts = append(opts, policypdf.WithLetterhead(path))
	}
	if text, _ := flags.GetString("watermark"); text != "" {
		opts = append(opts, policypdf.WithWatermarkText(text))
	}
	if flags.Changed("cover-code") {
		s, _ := flags.GetString("cover-code")
		kind, err := cover.ParseCodeKind(s)
		if err != nil {
			return nil, err
		}
		opts = append(opts, policypdf.WithCoverCode(kind))
	}
	return opts, nil
}

// renderOptions merges configuration and flags.
func renderOptions(cmd *cobra.Command) ([]policypdf.Option, error) {
	opts, err := fileOptions(cmd)
	if err != nil {
		return nil, err
	}
	extra, err := flagOptions(cmd)
	if err != nil {
		return nil, err
	}
	return append(opts, extra...), nil
}
