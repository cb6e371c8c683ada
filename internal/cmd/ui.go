package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Iron-Ham/cerebro/internal/config"
	"github.com/Iron-Ham/cerebro/internal/logging"
	"github.com/Iron-Ham/cerebro/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive interface",
	Long: `Open the interactive interface. This is also what runs when cerebro is
started without a subcommand.

Only one interactive session may use a data directory at a time.`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the interactive interface needs a terminal; see 'cerebro --help' for scriptable commands")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	env, err := openEnv(ctx, envOptions{lock: true})
	if err != nil {
		return err
	}
	defer env.Close()

	c, err := env.coach(ctx)
	if err != nil {
		return err
	}

	settings := settingsFromConfig(env.cfg)
	settings.Backend = string(env.backend.Name())

	app := tui.New(env.ctrl, c,
		tui.WithSettings(settings),
		tui.WithLogger(env.logger),
		tui.WithContext(ctx),
	)
	watchConfig(app, settings.Backend, env.logger)

	env.logger.Info("interactive session started", "backend", settings.Backend)
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	env.logger.Info("interactive session ended")
	return nil
}

func settingsFromConfig(cfg *config.Config) tui.Settings {
	return tui.Settings{
		ToastDuration: cfg.Board.ToastDuration,
		FocusDuration: cfg.Focus.Duration,
		Bell:          cfg.Focus.Bell,
	}
}

// watchConfig pushes focus and toast settings into the running interface
// whenever the config file changes. Invalid edits are logged and ignored.
func watchConfig(app *tui.App, backend string, logger *logging.Logger) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := config.Load()
		if err != nil {
			logger.Warn("ignoring invalid config change", "file", e.Name, "error", err.Error())
			return
		}
		s := settingsFromConfig(cfg)
		s.Backend = backend
		logger.Info("config file changed", "file", e.Name)
		app.ReloadSettings(s)
	})
	viper.WatchConfig()
}
