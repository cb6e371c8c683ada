package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cerebro/internal/board"
	"github.com/Iron-Ham/cerebro/internal/errors"
	"github.com/Iron-Ham/cerebro/internal/util"
)

// shortIDLen is how much of a task id list output shows.
const shortIDLen = 8

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage the traffic-light board",
	Long: `Manage the traffic-light board from the command line.

Tasks are referenced by id or by any unique id prefix, as shown by
'cerebro task list'. Columns accept urgent/in_progress/done_or_idea,
red/yellow/green or 1/2/3.`,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Add a task to the in-progress column",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks by column",
	Args:    cobra.NoArgs,
	RunE:    runTaskList,
}

var taskRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskRemove,
}

var taskMoveCmd = &cobra.Command{
	Use:   "mv <id> <column>",
	Short: "Move a task to another column",
	Long: `Move a task to another column. The urgent column holds at most three
tasks; a move that would exceed that is rejected and nothing changes.`,
	Args: cobra.ExactArgs(2),
	RunE: runTaskMove,
}

var taskSplitCmd = &cobra.Command{
	Use:   "split <id>",
	Short: "Break a task into micro-steps with the coach",
	Long: `Ask the coach to break a task into 3 to 5 micro-steps. The steps replace
the task at the same position and column. Without a reachable AI backend a
generic four-step plan is used.`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskSplit,
}

var taskListColumn string

func init() {
	taskListCmd.Flags().StringVar(&taskListColumn, "column", "", "Only list this column")

	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskRemoveCmd, taskMoveCmd, taskSplitCmd)
	rootCmd.AddCommand(taskCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd.Context(), envOptions{lock: true, component: "cli"})
	if err != nil {
		return err
	}
	defer env.Close()

	task, err := env.ctrl.AddTask(strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", shortID(task.ID), task.Column.Title())
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	columns := board.Columns
	if taskListColumn != "" {
		col, err := board.ParseColumn(taskListColumn)
		if err != nil {
			return err
		}
		columns = []board.Column{col}
	}

	env, err := openEnv(cmd.Context(), envOptions{component: "cli"})
	if err != nil {
		return err
	}
	defer env.Close()

	tasks := env.ctrl.Snapshot().Tasks
	for i, col := range columns {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		writeColumn(cmd.OutOrStdout(), tasks, col, env.cfg.Board.UrgentCapacity)
	}
	return nil
}

func writeColumn(w io.Writer, tasks board.Tasks, col board.Column, capacity int) {
	in := tasks.InColumn(col)
	if col == board.Urgent {
		fmt.Fprintf(w, "%s  %d/%d\n", col.Title(), len(in), capacity)
	} else {
		fmt.Fprintf(w, "%s  %d\n", col.Title(), len(in))
	}
	if len(in) == 0 {
		fmt.Fprintln(w, "  (vacío)")
		return
	}
	for _, task := range in {
		fmt.Fprintf(w, "  %s  %s\n", util.PadRight(shortID(task.ID), shortIDLen), util.FirstLine(task.Content))
	}
}

func runTaskRemove(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd.Context(), envOptions{lock: true, component: "cli"})
	if err != nil {
		return err
	}
	defer env.Close()

	task, err := resolveTask(env.ctrl.Snapshot().Tasks, args[0])
	if err != nil {
		return err
	}
	env.ctrl.RemoveTask(task.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", shortID(task.ID))
	return nil
}

func runTaskMove(cmd *cobra.Command, args []string) error {
	col, err := board.ParseColumn(args[1])
	if err != nil {
		return err
	}

	env, err := openEnv(cmd.Context(), envOptions{lock: true, component: "cli"})
	if err != nil {
		return err
	}
	defer env.Close()

	task, err := resolveTask(env.ctrl.Snapshot().Tasks, args[0])
	if err != nil {
		return err
	}
	if err := env.ctrl.DropTask(task.ID, col); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", shortID(task.ID), col.Title())
	return nil
}

func runTaskSplit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	env, err := openEnv(ctx, envOptions{lock: true, component: "cli"})
	if err != nil {
		return err
	}
	defer env.Close()

	task, err := resolveTask(env.ctrl.Snapshot().Tasks, args[0])
	if err != nil {
		return err
	}
	c, err := env.coach(ctx)
	if err != nil {
		return err
	}

	result, created, err := env.ctrl.Breakdown(ctx, c, task.ID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Fallback {
		fmt.Fprintln(out, "Coach unavailable, using a generic plan.")
	}
	fmt.Fprintf(out, "✨ %q split into %d micro-steps:\n", task.Content, len(created))
	for _, t := range created {
		fmt.Fprintf(out, "  %s  %s\n", shortID(t.ID), t.Content)
	}
	return nil
}

// resolveTask finds the task whose id is ref or starts with ref.
func resolveTask(tasks board.Tasks, ref string) (board.Task, error) {
	if task, ok := tasks.Find(ref); ok {
		return task, nil
	}
	var matches []board.Task
	if ref != "" {
		for _, task := range tasks.Slice() {
			if strings.HasPrefix(task.ID, ref) {
				matches = append(matches, task)
			}
		}
	}
	switch len(matches) {
	case 0:
		return board.Task{}, errors.NewNotFoundError("task", ref)
	case 1:
		return matches[0], nil
	default:
		return board.Task{}, errors.NewValidationError(fmt.Sprintf("id prefix %q matches %d tasks", ref, len(matches))).
			WithField("id").
			WithValue(ref)
	}
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}
