package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/chatwire/internal"
)

func TestRootCommand_Output(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{name: "version", args: []string{"--version"}, contains: []string{version, "commit: " + commit}},
		{name: "help", args: []string{"--help"}, contains: []string{"chatwire", "selftest", "listen", "history", "--db"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			out, err := executeCommand(t, "", tt.args...)
			if err != nil {
				t.Fatalf("Execute(%v) error = %v", tt.args, err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
	// --version and --help stick to the root command once parsed
	_ = rootCmd.Flags().Set("version", "false")
	_ = rootCmd.Flags().Set("help", "false")
}

func TestRootCommand_UnknownCommand(t *testing.T) {
	resetFlags(t)
	if _, err := executeCommand(t, "", "reconnect"); err == nil {
		t.Error("Execute() should fail for an unknown command")
	}
}

func TestDefaultDBPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(t.TempDir(), "chat.db")
		t.Setenv("CHATWIRE_DB", want)
		if got := defaultDBPath(); got != want {
			t.Errorf("defaultDBPath() = %q, want %q", got, want)
		}
	})

	t.Run("home directory", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("CHATWIRE_DB", "")
		t.Setenv("HOME", home)
		want := filepath.Join(home, ".chatwire", "history.db")
		if got := defaultDBPath(); got != want {
			t.Errorf("defaultDBPath() = %q, want %q", got, want)
		}
	})
}

func TestRootCommand_DBFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("db")
	if flag == nil {
		t.Fatal("--db flag not registered")
	}
	if !strings.HasSuffix(flag.DefValue, "history.db") {
		t.Errorf("--db default = %q, want a history.db path", flag.DefValue)
	}

	resetFlags(t)
	db := filepath.Join(t.TempDir(), "nested", "chat.db")
	if _, err := executeCommand(t, "", "--db", db, "groups"); err != nil {
		t.Fatalf("groups error = %v", err)
	}
	if dbPath != db {
		t.Errorf("dbPath = %q, want %q", dbPath, db)
	}
	store, err := internal.OpenStore(db)
	if err != nil {
		t.Fatalf("--db should create the database: %v", err)
	}
	store.Close()
}

func TestRootCommand_VerboseFlag(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantDebug bool
	}{
		{name: "quiet", args: []string{"selftest"}, wantDebug: false},
		{name: "verbose", args: []string{"--verbose", "selftest"}, wantDebug: true},
		{name: "short", args: []string{"-v", "selftest"}, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			var logs bytes.Buffer
			prev := internal.SetLogOutput(&logs)
			defer func() {
				internal.SetLogOutput(prev)
				internal.SetVerbose(false)
			}()

			if _, err := executeCommand(t, "", tt.args...); err != nil {
				t.Fatalf("Execute(%v) error = %v", tt.args, err)
			}
			if got := strings.Contains(logs.String(), "[DEBUG]"); got != tt.wantDebug {
				t.Errorf("debug output = %v, want %v\n%s", got, tt.wantDebug, logs.String())
			}
		})
	}
}
