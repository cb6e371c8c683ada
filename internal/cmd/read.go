package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Iron-Ham/cerebro/internal/bionic"
)

var readCmd = &cobra.Command{
	Use:   "read [file|-]",
	Short: "Print text in bionic reading format",
	Long: `Print text with the first half of every word in bold, which guides the
eye through the line.

Reads the named file, or stdin when the argument is "-". Without an argument
prints a sample text. Bold is rendered with terminal attributes when stdout
is a terminal and as **markdown** otherwise.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRead,
}

var (
	readPlain    bool
	readMarkdown bool
)

func init() {
	readCmd.Flags().BoolVar(&readPlain, "plain", false, "Print the text unchanged")
	readCmd.Flags().BoolVar(&readMarkdown, "markdown", false, "Always mark bold as **markdown**")
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	text := bionic.SampleText
	if len(args) == 1 {
		data, err := readInput(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		text = string(data)
	}

	mode := bionic.Enabled
	if readPlain {
		mode = bionic.Disabled
	}

	out := cmd.OutOrStdout()
	bold := bionic.Markdown
	if !readMarkdown && isTerminal(out) {
		style := lipgloss.NewStyle().Bold(true)
		bold = func(s string) string { return style.Render(s) }
	}

	rendered := bionic.Render(text, mode, bold)
	if _, err := io.WriteString(out, rendered); err != nil {
		return err
	}
	if len(rendered) > 0 && rendered[len(rendered)-1] != '\n' {
		fmt.Fprintln(out)
	}
	return nil
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
