package internal

import (
	"encoding/json"
	"strconv"
	"time"
)

// NamedPayload is a labelled example payload
type NamedPayload struct {
	Name    string
	Payload any
}

// SupportedFormats returns the documented wire formats, all addressed to
// group 456
func SupportedFormats() []NamedPayload {
	return []NamedPayload{
		{
			Name: "format1",
			Payload: map[string]any{
				"message":   "Conteúdo da mensagem",
				"sender":    map[string]any{"id": json.Number("123")},
				"groupId":   json.Number("456"),
				"timestamp": "2023-12-01T10:00:00Z",
			},
		},
		{
			Name: "format2",
			Payload: map[string]any{
				"content":   "Conteúdo da mensagem",
				"sender":    json.Number("123"),
				"groupId":   json.Number("456"),
				"createdAt": "2023-12-01T10:00:00Z",
			},
		},
		{
			Name: "format3",
			Payload: map[string]any{
				"message":   "Conteúdo da mensagem",
				"senderId":  json.Number("123"),
				"group_id":  json.Number("456"),
				"timestamp": json.Number("1701424800000"),
			},
		},
	}
}

// InvalidFormats returns payloads that must be rejected for group 456
func InvalidFormats() []NamedPayload {
	return []NamedPayload{
		{Name: "null payload", Payload: nil},
		{Name: "string payload", Payload: "apenas uma string"},
		{Name: "no message/content", Payload: map[string]any{"sender": json.Number("123"), "groupId": json.Number("456")}},
		{Name: "no sender", Payload: map[string]any{"message": "teste", "groupId": json.Number("456")}},
		{Name: "no groupId", Payload: map[string]any{"message": "teste", "sender": json.Number("123")}},
		{Name: "different groupId", Payload: map[string]any{"message": "teste", "sender": json.Number("123"), "groupId": json.Number("999")}},
	}
}

// SimulatedPayloads returns the replayed incoming traffic used by the
// simulator. The last payload has no usable sender or group and is dropped.
func SimulatedPayloads(now time.Time) []NamedPayload {
	return []NamedPayload{
		{
			Name: "api format",
			Payload: map[string]any{
				"sender":    json.Number("123"),
				"message":   "Mensagem formato API",
				"timestamp": now.UTC().Format(time.RFC3339Nano),
				"groupId":   "456",
			},
		},
		{
			Name: "alternate format 1",
			Payload: map[string]any{
				"content":   "Mensagem formato alternativo 1",
				"sender":    map[string]any{"id": json.Number("124")},
				"createdAt": now.UTC().Format(time.RFC3339Nano),
				"groupId":   json.Number("456"),
			},
		},
		{
			Name: "alternate format 2",
			Payload: map[string]any{
				"message":   "Mensagem formato alternativo 2",
				"senderId":  json.Number("125"),
				"group_id":  json.Number("456"),
				"timestamp": json.Number(strconv.FormatInt(now.UnixMilli(), 10)),
			},
		},
		{
			Name: "unrecognized format",
			Payload: map[string]any{
				"text": "Mensagem com formato inválido",
				"user": json.Number("126"),
				"room": json.Number("456"),
			},
		},
	}
}
