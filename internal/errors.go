package internal

import "fmt"

// RejectReason classifies why a payload produced no message
type RejectReason string

const (
	ReasonMalformed      RejectReason = "malformed payload"
	ReasonMissingContent RejectReason = "missing content"
	ReasonMissingSender  RejectReason = "missing sender"
	ReasonMissingGroup   RejectReason = "missing group"
	ReasonScopeMismatch  RejectReason = "scope mismatch"
)

// RejectError describes a rejected payload
type RejectError struct {
	Reason RejectReason
	Field  string // matched field when a value was found but unusable
	Got    int64  // scope mismatch only
	Want   int64  // scope mismatch only
}

func (e *RejectError) Error() string {
	switch {
	case e.Reason == ReasonScopeMismatch:
		return fmt.Sprintf("rejected: %s: group %d, expected %d", e.Reason, e.Got, e.Want)
	case e.Field != "":
		return fmt.Sprintf("rejected: %s: invalid value in %q", e.Reason, e.Field)
	default:
		return fmt.Sprintf("rejected: %s", e.Reason)
	}
}

// StoreError represents errors accessing the message history database
type StoreError struct {
	Path string
	Op   string // "open", "migrate", "save", "query"
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ParseError represents errors decoding raw payloads
type ParseError struct {
	Source string // "json", "jsonl", "yaml", "websocket"
	Key    string // line number, file path or frame index
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
