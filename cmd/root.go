package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/chatwire/internal"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	dbPath  string
	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chatwire",
	Short: "Normalize anime group-chat messages from the push channel",
	Long: `A CLI for the anime group chat's inbound message layer.

Payloads arriving on the shared push channel come in several shapes.
chatwire turns each one into a single canonical message, or drops it,
and keeps a local history of accepted messages.

Features:
  • Normalize payloads from files, stdin or a live WebSocket
  • Filter messages to the group being viewed
  • Probe which fields of a payload are recognized
  • Built-in self-test of every supported wire format
  • Local SQLite message history, exportable as JSONL, Markdown, YAML or JSON

Quick Start:
  chatwire selftest                        # Check every supported format
  chatwire parse payloads.jsonl --scope 456 # Normalize a file for group 456
  chatwire listen ws://host/chat --scope 456 --save
  chatwire history 456                     # Show stored messages`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// defaultDBPath returns $CHATWIRE_DB or ~/.chatwire/history.db
func defaultDBPath() string {
	if p := os.Getenv("CHATWIRE_DB"); p != "" {
		return p
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "chatwire", "history.db")
	}
	return filepath.Join(homeDir, ".chatwire", "history.db")
}

// openStore opens the history database named by --db
func openStore() (*internal.Store, error) {
	store, err := internal.OpenStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDBPath(), "Message history database (env CHATWIRE_DB)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
