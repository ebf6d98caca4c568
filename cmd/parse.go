package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/iksnae/chatwire/internal"
	"github.com/iksnae/chatwire/internal/export"
	"github.com/spf13/cobra"
)

var (
	parseInputFormat string
	parseScope       int64
	parseFormat      string
	parseOutput      string
	parseDedupe      bool
	parseSave        bool
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Normalize payloads and write the accepted messages",
	Long: `Normalize every payload from a file (or stdin) into canonical messages.

Rejected payloads are dropped silently; run with --verbose to see why.
Accepted messages are written in the chosen export format and can be
stored in the local history with --save.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(parseFormat)
		if err != nil {
			return err
		}

		result, err := readPayloads(cmd, args, parseInputFormat)
		if err != nil {
			return err
		}

		messages := internal.NewNormalizer().NormalizeAll(result.Payloads, parseScope)
		if parseDedupe {
			messages = internal.NewDeduplicator().Deduplicate(messages)
		}
		internal.LogInfo("Accepted %d of %d payload(s)", len(messages), len(result.Payloads))

		if parseSave {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			saved, err := store.Save(cmd.Context(), messages...)
			if err != nil {
				return fmt.Errorf("failed to save messages: %w", err)
			}
			internal.LogInfo("Saved %d message(s) to %s", saved, dbPath)
		}

		return writeMessages(cmd, exporter, messages, parseOutput)
	},
}

// writeMessages exports messages to path, or stdout when path is empty
func writeMessages(cmd *cobra.Command, exporter export.Exporter, messages []*internal.Message, path string) error {
	var w io.Writer = cmd.OutOrStdout()
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
		}
		defer f.Close()
		w = f
	}
	if err := exporter.Export(messages, w); err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	if path != "" {
		internal.LogInfo("Wrote %d message(s) to %s", len(messages), path)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVar(&parseInputFormat, "input-format", "", "Input format: json, jsonl, yaml (default: from extension, else json)")
	parseCmd.Flags().Int64Var(&parseScope, "scope", 0, "Expected group id (0 disables the group filter)")
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "jsonl", "Output format: jsonl, json, yaml, md")
	parseCmd.Flags().StringVarP(&parseOutput, "out", "o", "", "Output file (default: stdout)")
	parseCmd.Flags().BoolVar(&parseDedupe, "dedupe", false, "Drop repeated messages with the same group, sender, content and time")
	parseCmd.Flags().BoolVar(&parseSave, "save", false, "Store accepted messages in the history database")
}
