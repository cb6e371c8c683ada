package cmd

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cerebro/internal/config"
	"github.com/Iron-Ham/cerebro/internal/errors"
	"github.com/Iron-Ham/cerebro/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View application logs",
	Long: `View and filter the application log.

Examples:
  # Show the last 50 entries
  cerebro logs

  # Only warnings and errors from the AI backend in the last hour
  cerebro logs --level warn --component ai --since 1h

  # Everything, as JSON
  cerebro logs -n 0 --format json`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsTail      int
	logsLevel     string
	logsSince     time.Duration
	logsComponent string
	logsGrep      string
	logsFormat    string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().DurationVar(&logsSince, "since", 0, "Show entries newer than this (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsComponent, "component", "", "Filter by component (ai, coach, state, tui, cli)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter entries whose message contains this text")
	logsCmd.Flags().StringVar(&logsFormat, "format", "text", "Output format: text or json")
}

func runLogs(cmd *cobra.Command, args []string) error {
	level := ""
	if logsLevel != "" {
		if !slices.Contains(logging.ValidLevels(), strings.ToUpper(logsLevel)) {
			return fmt.Errorf("invalid level %q (valid: %s)", logsLevel,
				strings.ToLower(strings.Join(logging.ValidLevels(), ", ")))
		}
		level = logging.ParseLevel(logsLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	entries, err := logging.ReadEntries(filepath.Join(cfg.Storage.LogDir(), logging.FileName))
	if err != nil {
		return errors.Wrapf(err, "reading logs in %s", cfg.Storage.LogDir())
	}

	filter := logging.LogFilter{
		Level:           level,
		Component:       logsComponent,
		MessageContains: logsGrep,
	}
	if logsSince > 0 {
		filter.Since = time.Now().Add(-logsSince)
	}
	entries = logging.FilterLogs(entries, filter)

	if logsTail > 0 && len(entries) > logsTail {
		entries = entries[len(entries)-logsTail:]
	}
	return logging.WriteEntries(cmd.OutOrStdout(), entries, logsFormat)
}
