package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/llehouerou/storyreel/internal/app"
	"github.com/llehouerou/storyreel/internal/catalog"
	"github.com/llehouerou/storyreel/internal/completion"
	"github.com/llehouerou/storyreel/internal/config"
	"github.com/llehouerou/storyreel/internal/errmsg"
	"github.com/llehouerou/storyreel/internal/logging"
	"github.com/llehouerou/storyreel/internal/media"
	"github.com/llehouerou/storyreel/internal/mpris"
	"github.com/llehouerou/storyreel/internal/state"
)

var (
	configPath  string
	catalogPath string
	verbose     bool

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "storyreel",
	Short: "Scroll an interactive vertical drama in the terminal",
	Long: `storyreel plays a catalog of short episodes as a vertical feed.

Scroll with j/k, the mouse wheel or the arrow keys. The episode that fills
most of the screen plays; every other one is paused. Press a number to step
into the story and chat with one of its characters.

Chat replies come from Gemini when gemini.api_key (or GEMINI_API_KEY) is set.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
		}
		if catalogPath != "" {
			cfg.Catalog = catalogPath
		}

		level := logging.ParseLevel(cfg.GetLogLevel())
		if verbose {
			level = zapcore.DebugLevel
		}
		logger, err = logging.Open(level)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: logging disabled: %v\n", err)
		}
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = logger.Sync()
	},
	RunE: runFeed,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (loaded after ~/.config/storyreel/config.toml and ./config.toml)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Catalog YAML file (default: the built-in story)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")
	rootCmd.Flags().Bool("unmuted", false, "Start with sound on (autoplay may then be refused)")

	rootCmd.AddCommand(catalogCmd, chatCmd)
}

func loadCatalog() (*catalog.Catalog, error) {
	if cfg.Catalog == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return nil, errors.New(errmsg.FormatWith(errmsg.OpCatalogLoad, cfg.Catalog, err))
	}
	return cat, nil
}

func runFeed(cmd *cobra.Command, _ []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	stateMgr, err := state.Open()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpStateLoad, err))
	}
	defer stateMgr.Close()

	backend, err := completion.NewGemini(cmd.Context(), cfg.GetCompletionConfig())
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	if !backend.Configured() {
		logger.Info("gemini api key not set, chat will use fallback lines")
	}

	feedOpts := cfg.GetFeedOptions()
	if unmuted, _ := cmd.Flags().GetBool("unmuted"); unmuted {
		feedOpts.Muted = false
	}

	m, err := app.New(app.Options{
		Catalog:  cat,
		Feed:     feedOpts,
		Policy:   media.NewPolicy(cfg.GetAutoplayMode()),
		Backend:  backend,
		StateMgr: stateMgr,
		Logger:   logger,
	})
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}

	adapter, err := mpris.New(m.Feed)
	if err != nil {
		logger.Warn("mpris disabled", zap.Error(err))
	} else {
		m.Remote = adapter.Commands()
		defer adapter.Close()
	}

	logger.Info("feed started",
		zap.String("catalog", cat.Title),
		zap.Int("episodes", len(cat.Episodes)),
		zap.String("autoplay", cfg.GetAutoplayMode().String()))

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
	final, err := p.Run()
	if fm, ok := final.(app.Model); ok {
		fm.Close()
	}
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
