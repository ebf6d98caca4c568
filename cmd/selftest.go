package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/chatwire/internal"
	"github.com/spf13/cobra"
)

var (
	selftestVerbose bool
)

// selftestCmd represents the selftest command
var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Run every supported and invalid example payload through the normalizer",
	Long: `Check the normalizer against the documented wire formats:
  • Format A: sender {id}, message, groupId, ISO timestamp
  • Format B: scalar sender, content, groupId, ISO createdAt
  • Format C: senderId, message, group_id, epoch-millisecond timestamp

Every valid format must be accepted for group 456 with its content, sender,
group and timestamp intact. Every invalid payload (null, plain string,
missing content, missing sender, missing group, another group) must be
rejected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		report := internal.RunSelfTest(internal.NewNormalizer())

		fmt.Fprintln(out, sectionStyle.Render("🧪 Message format self-test"))
		fmt.Fprintln(out)

		fmt.Fprintln(out, infoStyle.Render("Valid formats:"))
		for _, c := range report.Valid {
			printCase(out, c)
		}
		fmt.Fprintln(out)

		fmt.Fprintln(out, infoStyle.Render("Invalid formats:"))
		for _, c := range report.Invalid {
			printCase(out, c)
		}
		fmt.Fprintln(out)

		fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
		failures := report.Failures()
		total := len(report.Valid) + len(report.Invalid)
		if len(failures) == 0 {
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ %d/%d cases passed", total, total)))
			return nil
		}
		fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("❌ %d/%d cases failed", len(failures), total)))
		return fmt.Errorf("self-test failed: %d case(s)", len(failures))
	},
}

func printCase(out io.Writer, c internal.SelfTestCase) {
	status := successStyle.Render("✅")
	if !c.Passed() {
		status = errorStyle.Render("❌")
	}
	fmt.Fprintf(out, "  %s %s\n", status, c.Name)

	if selftestVerbose {
		if raw, err := json.Marshal(c.Payload); err == nil {
			fmt.Fprintf(out, "     payload: %s\n", raw)
		}
		r := c.Report
		fmt.Fprintf(out, "     object %s  content %s  sender %s  group %s  timestamp %s\n",
			mark(r.IsObject), mark(r.HasContent), mark(r.HasSender), mark(r.HasGroup), mark(r.HasValidTimestamp))
	}
	switch {
	case c.Message != nil && selftestVerbose:
		fmt.Fprintf(out, "     result: %s sender=%d group=%d\n", idStyle.Render(c.Message.ID), c.Message.SenderID, c.Message.GroupID)
	case c.Err != nil && selftestVerbose:
		fmt.Fprintf(out, "     result: %v\n", c.Err)
	}
	if !c.Passed() {
		fmt.Fprintf(out, "     %s\n", warningStyle.Render(c.Problem))
	}
}

func init() {
	rootCmd.AddCommand(selftestCmd)
	selftestCmd.Flags().BoolVarP(&selftestVerbose, "details", "d", false, "Show payloads, probes and results for every case")
}
