package internal

import (
	"encoding/json"
	"time"
)

// Message sources
const (
	SourceWebSocket = "websocket"
	SourceHistory   = "history"
)

// Message is the canonical chat message every recognized wire format is
// converted into
type Message struct {
	ID        string    `json:"id" yaml:"id"`
	Content   string    `json:"content" yaml:"content"`
	SenderID  int64     `json:"senderId" yaml:"senderId"`
	GroupID   int64     `json:"groupId" yaml:"groupId"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	Source    string    `json:"source" yaml:"source"`
}

// FormatReport holds the per-attribute extraction probes for a payload
type FormatReport struct {
	HasContent        bool `json:"hasContent" yaml:"hasContent"`
	HasSender         bool `json:"hasSender" yaml:"hasSender"`
	HasGroup          bool `json:"hasGroup" yaml:"hasGroup"`
	HasValidTimestamp bool `json:"hasValidTimestamp" yaml:"hasValidTimestamp"`
	IsObject          bool `json:"isObject" yaml:"isObject"`
}

// Valid reports whether every required attribute could be extracted
func (r FormatReport) Valid() bool {
	return r.IsObject && r.HasContent && r.HasSender && r.HasGroup
}

// CreatedAtMillis returns the creation time as Unix milliseconds
func (m *Message) CreatedAtMillis() int64 {
	return m.CreatedAt.UnixMilli()
}

// ToJSON returns the indented JSON form of the message
func (m *Message) ToJSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
