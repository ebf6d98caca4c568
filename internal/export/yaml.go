package export

import (
	"io"

	"github.com/iksnae/chatwire/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports messages in YAML format
type YAMLExporter struct{}

// Export exports messages to YAML format
func (e *YAMLExporter) Export(messages []*internal.Message, w io.Writer) error {
	if messages == nil {
		messages = []*internal.Message{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()

	return enc.Encode(messages)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
