package cmd

import (
	"fmt"

	"github.com/iksnae/chatwire/internal"
	"github.com/spf13/cobra"
)

var (
	validateInputFormat string
	validateScope       int64
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Show which fields of each payload are recognized",
	Long: `Probe each payload for an extractable content, sender, group and
timestamp, and show why the normalizer would accept or reject it.

Reads a JSON value or array, JSONL or YAML from a file, or stdin when no
file (or "-") is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := readPayloads(cmd, args, validateInputFormat)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		n := internal.NewNormalizer()
		accepted := 0
		for i, p := range result.Payloads {
			r := n.ValidateFormat(p)
			fmt.Fprintf(out, "%s object %s  content %s  sender %s  group %s  timestamp %s\n",
				infoStyle.Render(fmt.Sprintf("[%d]", i+1)),
				mark(r.IsObject), mark(r.HasContent), mark(r.HasSender), mark(r.HasGroup), mark(r.HasValidTimestamp))

			msg, err := n.Explain(p, validateScope)
			if err != nil {
				fmt.Fprintf(out, "    %s\n", warningStyle.Render(err.Error()))
				continue
			}
			accepted++
			fmt.Fprintf(out, "    %s sender=%d group=%d at %s\n",
				successStyle.Render("accepted"), msg.SenderID, msg.GroupID, msg.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s of %d payload(s) accepted", countStyle.Render(fmt.Sprint(accepted)), len(result.Payloads))
		if len(result.Errors) > 0 {
			fmt.Fprintf(out, ", %d undecodable", len(result.Errors))
		}
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateInputFormat, "input-format", "", "Input format: json, jsonl, yaml (default: from extension, else json)")
	validateCmd.Flags().Int64Var(&validateScope, "scope", 0, "Expected group id (0 disables the group filter)")
}
