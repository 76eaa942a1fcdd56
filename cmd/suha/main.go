package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	apppkg "github.com/kk-code-lab/suha/internal/app"
	"github.com/kk-code-lab/suha/internal/config"
	"github.com/kk-code-lab/suha/internal/logging"
	"github.com/kk-code-lab/suha/internal/shellsetup"
)

var parentShellDetector = shellsetup.DetectParentShellName

func newRootCmd() *cobra.Command {
	var configPath string
	var noWatch bool

	root := &cobra.Command{
		Use:   "suha [path]",
		Short: "Terminal three-column directory browser",
		Long: `suha shows the parent directory, the current directory and a preview of
the selected entry side by side. Move with h/j/k/l, leave with Esc.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.Options{Path: configPath, Flags: cmd.Flags()})
			if err != nil {
				return err
			}
			start := ""
			if len(args) == 1 {
				start = args[0]
			}
			return run(cmd.Context(), cfg, start, noWatch)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (default: first of ~/.config/suha.toml, ~/.config/suha/config.toml)")
	flags.Bool("hidden", false, "show dotfiles")
	flags.Bool("icons", false, "show file type icons")
	flags.Int("fps", config.DefaultFPS, "frames per second")
	flags.String("log-file", "", "log file path")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&noWatch, "no-watch", false, "do not watch directories for changes")

	root.AddCommand(newSetupCmd())
	return root
}

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup [shell]",
		Short: "Print the shell function that changes to the last visited directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			override := ""
			if len(args) == 1 {
				override = args[0]
			}
			return shellsetup.PrintSetup(cmd.OutOrStdout(), override, shellsetup.Config{DetectParent: parentShellDetector})
		},
	}
}

func run(ctx context.Context, cfg *config.Config, start string, noWatch bool) error {
	logger, closer, err := logging.New(cfg.LogOptions())
	if err != nil {
		return err
	}
	defer func() {
		_ = closer.Close()
	}()
	if cfg.Source != "" {
		logger.Debug("config loaded", "file", cfg.Source)
	}

	// UTF-8 fallback keeps non-ASCII names readable on terminals with odd locales.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	app, err := apppkg.NewApplication(apppkg.Options{
		Start:   start,
		Display: cfg.DisplayOptions(),
		FPS:     cfg.FPS,
		Logger:  logger,
		NoWatch: noWatch,
	})
	if err != nil {
		logger.Error("startup failed", "error", err)
		return err
	}

	runErr := app.Run(ctx)
	path := app.GetCurrentPath()
	if err := app.Close(); err != nil {
		logger.Warn("close failed", "error", err)
	}

	if path != "" {
		if err := shellsetup.WriteResult(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not write result file: %v\n", err)
		}
	}
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "suha: %v\n", err)
		stop()
		os.Exit(1)
	}
}
