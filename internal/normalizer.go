package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Normalizer converts raw push-channel payloads into canonical messages.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer creates a new Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// WithClock returns a copy of the normalizer that reads time from now
func (n *Normalizer) WithClock(now func() time.Time) *Normalizer {
	return &Normalizer{now: now}
}

// Normalize converts a payload into a Message, or returns nil when the
// payload is rejected. An expectedGroup of zero disables the scope filter.
func (n *Normalizer) Normalize(payload any, expectedGroup int64) *Message {
	msg, _ := n.Explain(payload, expectedGroup)
	return msg
}

// Explain is Normalize with the rejection reason exposed as a *RejectError
func (n *Normalizer) Explain(payload any, expectedGroup int64) (*Message, error) {
	obj, ok := asObject(payload)
	if !ok {
		LogWarn("Rejected payload: not an object: %s", describe(payload))
		return nil, &RejectError{Reason: ReasonMalformed}
	}

	content, _, ok := extractContent(obj)
	if !ok {
		LogInfo("Rejected payload: no content in %v", ContentFields)
		return nil, &RejectError{Reason: ReasonMissingContent}
	}

	senderID, field, ok := extractSenderID(obj)
	if !ok {
		LogInfo("Rejected payload: no sender id")
		return nil, &RejectError{Reason: ReasonMissingSender, Field: field}
	}

	groupID, field, ok := extractGroupID(obj)
	if !ok {
		LogInfo("Rejected payload: no group id in %v", GroupFields)
		return nil, &RejectError{Reason: ReasonMissingGroup, Field: field}
	}

	if expectedGroup != 0 && groupID != expectedGroup {
		LogDebug("Message for group %d, expected %d. Ignoring.", groupID, expectedGroup)
		return nil, &RejectError{Reason: ReasonScopeMismatch, Got: groupID, Want: expectedGroup}
	}

	now := n.now()
	createdAt, _ := extractTimestamp(obj, now)

	msg := &Message{
		ID:        generateTempID(now),
		Content:   content,
		SenderID:  senderID,
		GroupID:   groupID,
		CreatedAt: createdAt,
		Source:    SourceWebSocket,
	}
	LogDebug("Parsed message %s from sender %d in group %d", msg.ID, msg.SenderID, msg.GroupID)
	return msg, nil
}

// ValidateFormat probes which attributes of a payload are extractable. It
// shares its extractors with Normalize.
func (n *Normalizer) ValidateFormat(payload any) FormatReport {
	report := FormatReport{HasValidTimestamp: true}
	obj, ok := asObject(payload)
	if !ok {
		return report
	}
	report.IsObject = true
	_, _, report.HasContent = extractContent(obj)
	_, _, report.HasSender = extractSenderID(obj)
	_, _, report.HasGroup = extractGroupID(obj)
	LogDebug("Format probe: %+v", report)
	return report
}

// NormalizeAll normalizes every payload and keeps the accepted messages
func (n *Normalizer) NormalizeAll(payloads []any, expectedGroup int64) []*Message {
	var messages []*Message
	for _, p := range payloads {
		if msg := n.Normalize(p, expectedGroup); msg != nil {
			messages = append(messages, msg)
		}
	}
	return messages
}

// generateTempID builds temp_<unix-millis>_<random suffix>
func generateTempID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("temp_%d_%s", now.UnixMilli(), suffix)
}

func describe(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
