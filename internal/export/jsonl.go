package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/chatwire/internal"
)

// JSONLExporter exports messages in JSONL format (one message per line)
type JSONLExporter struct{}

// Export exports messages to JSONL format
func (e *JSONLExporter) Export(messages []*internal.Message, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range messages {
		if err := enc.Encode(msg); err != nil {
			return fmt.Errorf("failed to encode message %s: %w", msg.ID, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
