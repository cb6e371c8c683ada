package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cerebro/internal/state"
	"github.com/Iron-Ham/cerebro/internal/tui/styles"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show how much of the kit you have explored",
	Args:  cobra.NoArgs,
	RunE:  runProgress,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all tasks, the conversation and progress",
	Long: `Erase all tasks, the conversation and progress, returning to the state
of a fresh install. Requires --yes.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

var resetConfirmed bool

func init() {
	resetCmd.Flags().BoolVarP(&resetConfirmed, "yes", "y", false, "Confirm the reset")
	rootCmd.AddCommand(progressCmd, resetCmd)
}

func runProgress(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd.Context(), envOptions{component: "cli"})
	if err != nil {
		return err
	}
	defer env.Close()

	s := env.ctrl.Snapshot()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Dominio del Caos")
	fmt.Fprintf(out, "%s %d%%  %s\n\n", styles.ProgressBar(s.Progress, 20), s.Progress, state.ProgressLabel(s.Progress))
	for _, sec := range state.Sections {
		mark := "[ ]"
		if s.Visited(sec) {
			mark = "[x]"
		}
		fmt.Fprintf(out, "%s %s\n", mark, sec.Title())
	}
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetConfirmed {
		return fmt.Errorf("reset erases every task and message; run again with --yes to confirm")
	}
	env, err := openEnv(cmd.Context(), envOptions{lock: true, component: "cli"})
	if err != nil {
		return err
	}
	defer env.Close()

	env.ctrl.Reset()
	fmt.Fprintln(cmd.OutOrStdout(), "State reset.")
	return nil
}
