package main

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/spf13/cobra"

	policypdf "github.com/Jontyellis1212/policysprint-ai-sub000"
	"github.com/Jontyellis1212/policysprint-ai-sub000/config"
	"github.com/Jontyellis1212/policysprint-ai-sub000/logging"
	"github.com/Jontyellis1212/policysprint-ai-sub000/mcp"
)

func mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the renderers as MCP tools over stdio",
		Long: `Run a Model Context Protocol server on stdin and stdout.

Tools: render_policy_pdf, render_quiz_pdf, parse_quiz, inspect_pdf
Resources: policypdf://limits, policypdf://text?path=...

With --watch, changes to the --config file apply to the next render
without restarting the server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.Logger()
			extra, err := flagOptions(cmd)
			if err != nil {
				return err
			}

			src, stop, err := optionSource(cmd, extra, log)
			if err != nil {
				return err
			}
			defer stop()

			server := mcp.NewServerWithIO(cmd.InOrStdin(), cmd.OutOrStdout())
			server.SetLogger(log)
			mcp.RegisterTools(server, src)
			mcp.RegisterResources(server, src)

			log.Info("mcp server started", slog.String("name", mcp.ServerName))
			if err := server.Run(); err != nil {
				return fmt.Errorf("mcp: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().Bool("watch", false, "Reload --config when it changes")
	addRenderFlags(cmd)
	return cmd
}

// optionSource builds the render options for the server. Flag options are
// applied after the configuration file on every reload.
func optionSource(cmd *cobra.Command, extra []policypdf.Option, log *slog.Logger) (mcp.OptionSource, func(), error) {
	path, _ := cmd.Flags().GetString("config")
	watch, _ := cmd.Flags().GetBool("watch")

	if !watch || path == "" {
		if watch {
			log.Warn("--watch ignored without --config")
		}
		opts, err := fileOptions(cmd)
		if err != nil {
			return nil, nil, err
		}
		return mcp.StaticOptions(append(opts, extra...)...), func() {}, nil
	}

	var current atomic.Pointer[[]policypdf.Option]
	build := func(f *config.File) {
		opts := append(f.Options(), extra...)
		current.Store(&opts)
	}
	w, err := config.Watch(path, log, build)
	if err != nil {
		return nil, nil, err
	}
	build(w.Current())

	src := func() []policypdf.Option { return *current.Load() }
	stop := func() {
		if err := w.Close(); err != nil {
			log.Warn("closing config watcher", slog.Any("error", err))
		}
	}
	return src, stop, nil
}
