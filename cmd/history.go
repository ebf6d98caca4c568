package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/iksnae/chatwire/internal"
	"github.com/iksnae/chatwire/internal/export"
	"github.com/spf13/cobra"
)

var (
	historyLimit  int
	historyFormat string
	historyOutput string
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history <group-id>",
	Short: "Show stored messages for a group",
	Long: `Display the most recent stored messages of a group, oldest first.

Without --format the messages are printed for reading; with --format they
are exported as jsonl, json, yaml or md.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || groupID == 0 {
			return fmt.Errorf("invalid group id: %s", args[0])
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		messages, err := store.ListByGroup(cmd.Context(), groupID, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		if historyFormat != "" {
			exporter, err := export.NewExporter(historyFormat)
			if err != nil {
				return err
			}
			return writeMessages(cmd, exporter, messages, historyOutput)
		}

		out := cmd.OutOrStdout()
		if len(messages) == 0 {
			fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("No messages stored for group %d", groupID)))
			return nil
		}
		total, err := store.Count(cmd.Context(), groupID)
		if err != nil {
			return fmt.Errorf("failed to count messages: %w", err)
		}
		fmt.Fprintln(out, sectionStyle.Render(fmt.Sprintf("💬 Group %d", groupID)))
		fmt.Fprintf(out, "Showing %s of %d message(s)\n\n", countStyle.Render(fmt.Sprint(len(messages))), total)
		for _, msg := range messages {
			printMessage(out, msg)
		}
		return nil
	},
}

// printMessage renders one message for reading
func printMessage(out io.Writer, msg *internal.Message) {
	fmt.Fprintf(out, "%s %s\n", senderStyle.Render(fmt.Sprintf("user %d", msg.SenderID)),
		timestampStyle.Render(msg.CreatedAt.Local().Format("2006-01-02 15:04")))
	fmt.Fprintf(out, "  %s\n", msg.Content)
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 50, "Maximum number of messages (0 for all)")
	historyCmd.Flags().StringVarP(&historyFormat, "format", "f", "", "Export format: jsonl, json, yaml, md")
	historyCmd.Flags().StringVarP(&historyOutput, "out", "o", "", "Output file for --format (default: stdout)")
}
