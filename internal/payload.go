package internal

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Payload input formats
const (
	InputJSON  = "json"
	InputJSONL = "jsonl"
	InputYAML  = "yaml"
)

// maxLineSize bounds a single JSONL payload
const maxLineSize = 4 * 1024 * 1024

// DecodePayload decodes exactly one JSON value, keeping numbers as
// json.Number. Anything after the value is an error.
func DecodePayload(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode payload: trailing data after offset %d", dec.InputOffset())
	}
	return v, nil
}

// InputFormatFromPath infers the input format from a file extension,
// defaulting to JSON
func InputFormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return InputJSONL
	case ".yaml", ".yml":
		return InputYAML
	default:
		return InputJSON
	}
}

// DecodeResult is the outcome of decoding a payload stream. Bad entries are
// reported in Errors and skipped.
type DecodeResult struct {
	Payloads []any
	Errors   []error
}

// DecodePayloads reads every payload from r. A top-level JSON or YAML
// sequence is flattened into its elements.
func DecodePayloads(r io.Reader, format string) (*DecodeResult, error) {
	switch format {
	case InputJSON, "":
		return decodeJSON(r)
	case InputJSONL:
		return decodeJSONL(r)
	case InputYAML, "yml":
		return decodeYAML(r)
	default:
		return nil, fmt.Errorf("unsupported input format: %s (supported: json, jsonl, yaml)", format)
	}
}

func decodeJSON(r io.Reader) (*DecodeResult, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	result := &DecodeResult{}
	for i := 0; ; i++ {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Source: InputJSON, Key: "value " + strconv.Itoa(i), Err: err}
		}
		result.Payloads = append(result.Payloads, flatten(v)...)
	}
	return result, nil
}

func decodeJSONL(r io.Reader) (*DecodeResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	result := &DecodeResult{}
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		v, err := DecodePayload(text)
		if err != nil {
			LogDebug("Skipping line %d: %v", line, err)
			result.Errors = append(result.Errors, &ParseError{Source: InputJSONL, Key: "line " + strconv.Itoa(line), Err: err})
			continue
		}
		result.Payloads = append(result.Payloads, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Source: InputJSONL, Key: "line " + strconv.Itoa(line+1), Err: err}
	}
	return result, nil
}

func decodeYAML(r io.Reader) (*DecodeResult, error) {
	dec := yaml.NewDecoder(r)
	result := &DecodeResult{}
	for i := 0; ; i++ {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Source: InputYAML, Key: "document " + strconv.Itoa(i), Err: err}
		}
		result.Payloads = append(result.Payloads, flatten(v)...)
	}
	return result, nil
}

func flatten(v any) []any {
	if list, ok := v.([]any); ok {
		return list
	}
	return []any{v}
}
