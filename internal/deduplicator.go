package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Deduplicator removes duplicate messages. Generated ids differ for every
// normalization call, so duplicates are detected by content.
type Deduplicator struct{}

// NewDeduplicator creates a new Deduplicator
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{}
}

// Deduplicate keeps the first occurrence of each message
func (d *Deduplicator) Deduplicate(messages []*Message) []*Message {
	seen := make(map[string]bool)
	var unique []*Message

	for _, msg := range messages {
		hash := d.hashMessageContent(msg)
		if !seen[hash] {
			seen[hash] = true
			unique = append(unique, msg)
		}
	}

	return unique
}

// hashMessageContent hashes group, sender, content and creation time
func (d *Deduplicator) hashMessageContent(msg *Message) string {
	h := sha256.New()

	h.Write([]byte(strconv.FormatInt(msg.GroupID, 10)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(msg.SenderID, 10)))
	h.Write([]byte{0})
	h.Write([]byte(msg.Content))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(msg.CreatedAt.UnixMilli(), 10)))

	return hex.EncodeToString(h.Sum(nil))
}
