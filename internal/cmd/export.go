package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/cerebro/internal/persist"
	"github.com/Iron-Ham/cerebro/internal/state"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the saved state as JSON or YAML",
	Long: `Write the saved state to stdout or a file.

The json format is the storage format itself and can be copied into another
data directory. The yaml format is meant for reading.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat string
	exportOutput string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

type exportDocument struct {
	Progress        int             `yaml:"progress"`
	VisitedSections []string        `yaml:"visited_sections"`
	Tasks           []exportTask    `yaml:"tasks"`
	ChatHistory     []exportMessage `yaml:"chat_history"`
}

type exportTask struct {
	ID      string `yaml:"id"`
	Column  string `yaml:"column"`
	Content string `yaml:"content"`
}

type exportMessage struct {
	Role      string    `yaml:"role"`
	Timestamp time.Time `yaml:"timestamp"`
	Text      string    `yaml:"text"`
}

func runExport(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(exportFormat)
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported format: %s (supported: json, yaml)", exportFormat)
	}

	env, err := openEnv(cmd.Context(), envOptions{component: "cli"})
	if err != nil {
		return err
	}
	defer env.Close()

	data, err := encodeExport(env.ctrl.Snapshot(), format)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		return writeAll(cmd.OutOrStdout(), data)
	}
	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", exportOutput)
	return nil
}

func encodeExport(s state.AppState, format string) ([]byte, error) {
	if format == "json" {
		data, err := persist.Encode(s)
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}

	doc := exportDocument{
		Progress:        s.Progress,
		VisitedSections: make([]string, 0, len(s.VisitedSections)),
		Tasks:           make([]exportTask, 0, s.Tasks.Len()),
		ChatHistory:     make([]exportMessage, 0, len(s.ChatHistory)),
	}
	for _, sec := range s.VisitedSections {
		doc.VisitedSections = append(doc.VisitedSections, sec.String())
	}
	for _, t := range s.Tasks.Slice() {
		doc.Tasks = append(doc.Tasks, exportTask{ID: t.ID, Column: t.Column.String(), Content: t.Content})
	}
	for _, m := range s.ChatHistory {
		doc.ChatHistory = append(doc.ChatHistory, exportMessage{Role: string(m.Role), Timestamp: m.Timestamp.UTC(), Text: m.Text})
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	return data, nil
}

func writeAll(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}
