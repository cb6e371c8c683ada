package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cerebro/internal/state"
	"github.com/Iron-Ham/cerebro/internal/util"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the coach",
	Long: `Send one message to the coach and print the reply. Both are added to
the conversation shown in the interactive interface.

Without a message, prints the conversation so far.`,
	RunE: runChat,
}

var chatHistoryWidth int

func init() {
	chatCmd.Flags().IntVar(&chatHistoryWidth, "width", 72, "Wrap width when printing the conversation")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	text := strings.Join(args, " ")
	env, err := openEnv(ctx, envOptions{lock: text != "", component: "cli"})
	if err != nil {
		return err
	}
	defer env.Close()

	out := cmd.OutOrStdout()
	if text == "" {
		for _, msg := range env.ctrl.Snapshot().ChatHistory {
			writeChatMessage(out, msg, chatHistoryWidth)
		}
		return nil
	}

	c, err := env.coach(ctx)
	if err != nil {
		return err
	}
	reply, answer, err := env.ctrl.Chat(ctx, c, text)
	if err != nil {
		return err
	}
	if answer.Fallback {
		env.logger.Info("chat answered with fallback reply")
	}
	writeChatMessage(out, reply, chatHistoryWidth)
	return nil
}

func writeChatMessage(w io.Writer, msg state.ChatMessage, width int) {
	fmt.Fprintf(w, "%s:\n", msg.Role.Label())
	for _, line := range strings.Split(msg.Text, "\n") {
		for _, wrapped := range util.Wrap(line, max(20, width-2)) {
			fmt.Fprintf(w, "  %s\n", wrapped)
		}
	}
}
