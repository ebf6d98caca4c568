package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/chatwire/internal"
)

// MarkdownExporter exports messages as a Markdown transcript
type MarkdownExporter struct{}

// Export exports messages to Markdown format, one section per group
func (e *MarkdownExporter) Export(messages []*internal.Message, w io.Writer) error {
	var group int64
	for i, msg := range messages {
		if i == 0 || msg.GroupID != group {
			if i > 0 {
				_, _ = fmt.Fprintf(w, "\n")
			}
			group = msg.GroupID
			_, _ = fmt.Fprintf(w, "# Group %d\n\n", group)
		}

		_, _ = fmt.Fprintf(w, "**user %d** (%s, %s)\n\n%s\n\n",
			msg.SenderID, msg.CreatedAt.UTC().Format(time.RFC3339), msg.Source, escapeMarkdown(msg.Content))
	}

	return nil
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	// Basic escaping - preserve code blocks
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
