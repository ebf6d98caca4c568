package cmd

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/iksnae/chatwire/internal"
	"github.com/iksnae/chatwire/internal/channel"
	"github.com/iksnae/chatwire/internal/export"
	"github.com/spf13/cobra"
)

var (
	listenScope   int64
	listenSave    bool
	listenToken   string
	listenHeaders []string
)

// listenCmd represents the listen command
var listenCmd = &cobra.Command{
	Use:   "listen <ws-url>",
	Short: "Normalize messages from a live push channel",
	Long: `Connect to a WebSocket push channel and normalize every payload it
delivers. Accepted messages are written to stdout as JSON lines and can be
stored in the local history with --save.

Only messages for the group given by --scope are kept. Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headers, err := buildHeaders(listenToken, listenHeaders)
		if err != nil {
			return err
		}

		var store *internal.Store
		if listenSave {
			store, err = openStore()
			if err != nil {
				return err
			}
			defer store.Close()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		out := cmd.OutOrStdout()
		exporter := &export.JSONLExporter{}
		n := internal.NewNormalizer()
		accepted := 0

		client := channel.NewClient(channel.Config{URL: args[0], Headers: headers})
		err = client.Run(ctx, func(payload any) {
			msg := n.Normalize(payload, listenScope)
			if msg == nil {
				return
			}
			accepted++
			if err := exporter.Export([]*internal.Message{msg}, out); err != nil {
				internal.LogError("Failed to write message %s: %v", msg.ID, err)
			}
			if store != nil {
				if _, err := store.Save(ctx, msg); err != nil {
					internal.LogError("Failed to save message %s: %v", msg.ID, err)
				}
			}
		})
		internal.LogInfo("Accepted %d message(s)", accepted)
		if err != nil {
			return fmt.Errorf("listen failed: %w", err)
		}
		return nil
	},
}

// buildHeaders assembles the handshake headers from a bearer token and
// "Name: value" pairs
func buildHeaders(token string, raw []string) (http.Header, error) {
	headers := http.Header{}
	if token != "" {
		headers.Set("Authorization", "Bearer "+token)
	}
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q: expected \"Name: value\"", h)
		}
		headers.Add(name, strings.TrimSpace(value))
	}
	return headers, nil
}

func init() {
	rootCmd.AddCommand(listenCmd)
	listenCmd.Flags().Int64Var(&listenScope, "scope", 0, "Group id being viewed (0 disables the group filter)")
	listenCmd.Flags().BoolVar(&listenSave, "save", false, "Store accepted messages in the history database")
	listenCmd.Flags().StringVar(&listenToken, "token", os.Getenv("CHATWIRE_TOKEN"), "Bearer token for the handshake (env CHATWIRE_TOKEN)")
	listenCmd.Flags().StringArrayVarP(&listenHeaders, "header", "H", nil, "Extra handshake header as \"Name: value\" (repeatable)")
}
