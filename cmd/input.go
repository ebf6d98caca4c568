package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/iksnae/chatwire/internal"
	"github.com/spf13/cobra"
)

// readPayloads decodes payloads from the file named in args, or stdin when
// no file or "-" is given. An empty format is inferred from the extension.
func readPayloads(cmd *cobra.Command, args []string, format string) (*internal.DecodeResult, error) {
	var (
		r    io.Reader = cmd.InOrStdin()
		name           = "stdin"
	)
	if len(args) > 0 && args[0] != "-" {
		name = args[0]
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
		if format == "" {
			format = internal.InputFormatFromPath(name)
		}
	}

	result, err := internal.DecodePayloads(r, format)
	if err != nil {
		return nil, fmt.Errorf("failed to read payloads from %s: %w", name, err)
	}
	for _, perr := range result.Errors {
		internal.LogWarn("%v", perr)
	}
	internal.LogDebug("Read %d payload(s) from %s", len(result.Payloads), name)
	return result, nil
}
