package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/iksnae/chatwire/internal"
	"github.com/spf13/cobra"
)

var (
	simulateInterval time.Duration
	simulateScope    int64
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay sample push-channel traffic through the normalizer",
	Long: `Deliver a fixed set of sample payloads, one per interval, as if they
arrived on the push channel, and show what the chat view would receive.

The samples cover the API format (string group id), two alternate formats
and one payload that must be dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		out := cmd.OutOrStdout()
		n := internal.NewNormalizer()
		payloads := internal.SimulatedPayloads(time.Now())

		fmt.Fprintln(out, sectionStyle.Render("🎭 Simulating incoming messages"))
		accepted := 0
		err := internal.Simulate(ctx, payloads, simulateInterval, func(p internal.NamedPayload) {
			raw, _ := json.Marshal(p.Payload)
			fmt.Fprintf(out, "%s %s\n", infoStyle.Render("📨 "+p.Name+":"), raw)
			msg, err := n.Explain(p.Payload, simulateScope)
			if err != nil {
				fmt.Fprintf(out, "   %s\n", warningStyle.Render(err.Error()))
				return
			}
			accepted++
			printMessage(out, msg)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		fmt.Fprintf(out, "\n%s of %d message(s) delivered\n", countStyle.Render(fmt.Sprint(accepted)), len(payloads))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().DurationVar(&simulateInterval, "interval", time.Second, "Delay between simulated messages")
	simulateCmd.Flags().Int64Var(&simulateScope, "scope", internal.SelfTestGroup, "Group id being viewed (0 disables the group filter)")
}
