package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// groupsCmd represents the groups command
var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List groups with stored messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		groups, err := store.Groups(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list groups: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(groups) == 0 {
			fmt.Fprintln(out, warningStyle.Render("No messages stored yet"))
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "GROUP\tMESSAGES\tLAST MESSAGE")
		for _, g := range groups {
			fmt.Fprintf(w, "%d\t%d\t%s\n", g.GroupID, g.MessageCount, g.LastAt.Local().Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(groupsCmd)
}
