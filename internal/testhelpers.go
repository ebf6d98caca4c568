package internal

import (
	"fmt"
	"time"
)

// CreateTestMessage creates a test message from the push channel
func CreateTestMessage(id string, groupID, senderID int64, content string) *Message {
	return &Message{
		ID:        id,
		Content:   content,
		SenderID:  senderID,
		GroupID:   groupID,
		CreatedAt: time.Date(2023, 12, 1, 10, 0, 0, 0, time.UTC),
		Source:    SourceWebSocket,
	}
}

// CreateTestMessages creates count messages in a group, one minute apart
func CreateTestMessages(groupID int64, count int) []*Message {
	base := time.Date(2023, 12, 1, 10, 0, 0, 0, time.UTC)
	messages := make([]*Message, 0, count)
	for i := 0; i < count; i++ {
		messages = append(messages, &Message{
			ID:        fmt.Sprintf("temp_%d_%d", groupID, i),
			Content:   fmt.Sprintf("message %d", i),
			SenderID:  int64(100 + i%3),
			GroupID:   groupID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Source:    SourceWebSocket,
		})
	}
	return messages
}

// CreateTestPayload creates a format-A payload
func CreateTestPayload(content string, senderID, groupID int64, timestamp string) map[string]any {
	return map[string]any{
		"message":   content,
		"sender":    map[string]any{"id": senderID},
		"groupId":   groupID,
		"timestamp": timestamp,
	}
}
