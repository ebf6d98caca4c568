package internal

import (
	"encoding/json"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"
)

var fixedNow = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestNormalizer() *Normalizer {
	return NewNormalizer().WithClock(func() time.Time { return fixedNow })
}

func TestNormalize_SupportedFormats(t *testing.T) {
	n := newTestNormalizer()
	want := time.Date(2023, 12, 1, 10, 0, 0, 0, time.UTC)

	for _, f := range SupportedFormats() {
		t.Run(f.Name, func(t *testing.T) {
			msg := n.Normalize(f.Payload, 456)
			if msg == nil {
				t.Fatal("Normalize() returned nil for a supported format")
			}
			if msg.Content != "Conteúdo da mensagem" {
				t.Errorf("Content = %q", msg.Content)
			}
			if msg.SenderID != 123 {
				t.Errorf("SenderID = %d, want 123", msg.SenderID)
			}
			if msg.GroupID != 456 {
				t.Errorf("GroupID = %d, want 456", msg.GroupID)
			}
			if !msg.CreatedAt.Equal(want) {
				t.Errorf("CreatedAt = %v, want %v", msg.CreatedAt, want)
			}
			if msg.Source != SourceWebSocket {
				t.Errorf("Source = %q, want %q", msg.Source, SourceWebSocket)
			}
		})
	}
}

func TestNormalize_NativeGoValues(t *testing.T) {
	n := newTestNormalizer()
	msg := n.Normalize(CreateTestPayload("hello", 7, 8, "2023-12-01T10:00:00Z"), 8)
	if msg == nil {
		t.Fatal("Normalize() returned nil")
	}
	if msg.SenderID != 7 || msg.GroupID != 8 || msg.Content != "hello" {
		t.Errorf("Normalize() = %+v", msg)
	}
}

func TestNormalize_InvalidFormats(t *testing.T) {
	n := newTestNormalizer()
	for _, f := range InvalidFormats() {
		t.Run(f.Name, func(t *testing.T) {
			if msg := n.Normalize(f.Payload, 456); msg != nil {
				t.Errorf("Normalize() = %+v, want nil", msg)
			}
		})
	}
}

func TestNormalize_Examples(t *testing.T) {
	n := newTestNormalizer()

	msg := n.Normalize(map[string]any{
		"message":   "hi",
		"sender":    json.Number("123"),
		"groupId":   json.Number("456"),
		"timestamp": "2023-12-01T10:00:00Z",
	}, 456)
	if msg == nil {
		t.Fatal("Normalize() rejected a valid payload")
	}
	if msg.SenderID != 123 || msg.GroupID != 456 || msg.Content != "hi" {
		t.Errorf("Normalize() = %+v", msg)
	}

	// text is recognized, but user is a bare number and room is not a group field
	if msg := n.Normalize(map[string]any{
		"text": "hi",
		"user": json.Number("126"),
		"room": json.Number("456"),
	}, 0); msg != nil {
		t.Errorf("Normalize() = %+v, want nil", msg)
	}
}

func TestNormalize_ScopeFilter(t *testing.T) {
	n := newTestNormalizer()
	payload := map[string]any{"message": "teste", "sender": json.Number("123"), "groupId": json.Number("999")}

	if msg := n.Normalize(payload, 456); msg != nil {
		t.Errorf("Normalize() with another group = %+v, want nil", msg)
	}

	msg := n.Normalize(payload, 0)
	if msg == nil {
		t.Fatal("Normalize() without a scope should accept the payload")
	}
	if msg.GroupID != 999 {
		t.Errorf("GroupID = %d, want 999", msg.GroupID)
	}

	// string group ids compare as integers
	strGroup := map[string]any{"message": "teste", "sender": json.Number("123"), "groupId": "456"}
	if msg := n.Normalize(strGroup, 456); msg == nil || msg.GroupID != 456 {
		t.Errorf("Normalize() with string group = %+v, want group 456", msg)
	}
}

func TestNormalize_ZeroGroupIsNotAScope(t *testing.T) {
	n := newTestNormalizer()
	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"zero group", map[string]any{"message": "x", "sender": 1, "groupId": 0}},
		{"zero shadows later field", map[string]any{"message": "x", "sender": 1, "groupId": 0, "group_id": 5}},
		{"string zero", map[string]any{"message": "x", "sender": 1, "roomId": "0"}},
		{"non numeric", map[string]any{"message": "x", "sender": 1, "channelId": "general"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := n.Explain(tt.payload, 0)
			if msg != nil {
				t.Fatalf("Explain() = %+v, want rejection", msg)
			}
			var re *RejectError
			if !errors.As(err, &re) || re.Reason != ReasonMissingGroup {
				t.Errorf("Explain() error = %v, want %q", err, ReasonMissingGroup)
			}
		})
	}
}

func TestNormalize_UnparsableTimestampDefaultsToNow(t *testing.T) {
	n := newTestNormalizer()
	msg := n.Normalize(map[string]any{
		"message":   "hi",
		"sender":    1,
		"groupId":   2,
		"timestamp": "not-a-date",
	}, 0)
	if msg == nil {
		t.Fatal("Normalize() rejected a payload with a bad timestamp")
	}
	if !msg.CreatedAt.Equal(fixedNow) {
		t.Errorf("CreatedAt = %v, want %v", msg.CreatedAt, fixedNow)
	}
}

func TestNormalize_TimestampFallsThrough(t *testing.T) {
	n := newTestNormalizer()
	msg := n.Normalize(map[string]any{
		"message":    "hi",
		"sender":     1,
		"groupId":    2,
		"timestamp":  "garbage",
		"createdAt":  0,
		"created_at": "2023-05-06T07:08:09Z",
		"date":       "2020-01-01T00:00:00Z",
	}, 0)
	if msg == nil {
		t.Fatal("Normalize() returned nil")
	}
	want := time.Date(2023, 5, 6, 7, 8, 9, 0, time.UTC)
	if !msg.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", msg.CreatedAt, want)
	}
}

func TestNormalize_ContentTrimmedAndBlankSkipped(t *testing.T) {
	n := newTestNormalizer()

	msg := n.Normalize(map[string]any{"message": "  hi there \n", "sender": 1, "groupId": 2}, 0)
	if msg == nil || msg.Content != "hi there" {
		t.Errorf("Normalize() = %+v, want trimmed content", msg)
	}

	msg = n.Normalize(map[string]any{"message": "   ", "content": "real", "sender": 1, "groupId": 2}, 0)
	if msg == nil || msg.Content != "real" {
		t.Errorf("Normalize() = %+v, want content from the next field", msg)
	}

	_, err := n.Explain(map[string]any{"message": "   ", "sender": 1, "groupId": 2}, 0)
	var re *RejectError
	if !errors.As(err, &re) || re.Reason != ReasonMissingContent {
		t.Errorf("Explain() error = %v, want %q", err, ReasonMissingContent)
	}
}

func TestNormalize_IDsAreUnique(t *testing.T) {
	n := newTestNormalizer()
	payload := SupportedFormats()[0].Payload

	a := n.Normalize(payload, 456)
	b := n.Normalize(payload, 456)
	if a == nil || b == nil {
		t.Fatal("Normalize() returned nil")
	}
	if a.ID == b.ID {
		t.Errorf("two calls produced the same id %q", a.ID)
	}
	if a.Content != b.Content || a.SenderID != b.SenderID || a.GroupID != b.GroupID || !a.CreatedAt.Equal(b.CreatedAt) {
		t.Errorf("repeat normalization differs: %+v vs %+v", a, b)
	}

	idPattern := regexp.MustCompile(`^temp_1704164645000_[0-9a-f]{9}$`)
	if !idPattern.MatchString(a.ID) {
		t.Errorf("ID = %q, want temp_<millis>_<suffix>", a.ID)
	}
}

func TestNormalize_Concurrent(t *testing.T) {
	n := NewNormalizer()
	payload := SupportedFormats()[1].Payload

	const workers = 32
	ids := make(chan string, workers*10)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if msg := n.Normalize(payload, 456); msg != nil {
					ids <- msg.ID
				}
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
	if len(seen) != workers*10 {
		t.Errorf("got %d messages, want %d", len(seen), workers*10)
	}
}

func TestNormalize_NeverPanics(t *testing.T) {
	n := newTestNormalizer()
	payloads := []any{
		nil,
		42,
		true,
		"string",
		[]any{map[string]any{"message": "x"}},
		map[string]any(nil),
		map[string]any{},
		map[string]any{"sender": []any{1}, "message": "x", "groupId": 1},
		map[string]any{"message": 5, "content": []any{"x"}, "text": map[string]any{}},
		map[string]any{"message": "x", "sender": map[string]any{"id": map[string]any{}}, "groupId": 1},
		map[string]any{"message": "x", "sender": 1, "groupId": 1, "timestamp": map[string]any{"$date": 1}},
		map[any]any{"message": "x", "sender": 1, "groupId": 1, 5: "ignored"},
	}
	for i, p := range payloads {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("payload %d panicked: %v", i, r)
				}
			}()
			_ = n.Normalize(p, 1)
			_ = n.ValidateFormat(p)
		}()
	}
}

func TestExplain_Reasons(t *testing.T) {
	n := newTestNormalizer()
	tests := []struct {
		name    string
		payload any
		scope   int64
		want    RejectReason
	}{
		{"nil", nil, 0, ReasonMalformed},
		{"string", "apenas uma string", 0, ReasonMalformed},
		{"array", []any{}, 0, ReasonMalformed},
		{"no content", map[string]any{"sender": 1, "groupId": 2}, 0, ReasonMissingContent},
		{"no sender", map[string]any{"message": "x", "groupId": 2}, 0, ReasonMissingSender},
		{"bad sender", map[string]any{"message": "x", "sender": "abc", "groupId": 2}, 0, ReasonMissingSender},
		{"no group", map[string]any{"message": "x", "sender": 1}, 0, ReasonMissingGroup},
		{"other group", map[string]any{"message": "x", "sender": 1, "groupId": 999}, 456, ReasonScopeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := n.Explain(tt.payload, tt.scope)
			if msg != nil {
				t.Fatalf("Explain() = %+v, want rejection", msg)
			}
			var re *RejectError
			if !errors.As(err, &re) {
				t.Fatalf("Explain() error = %v, want *RejectError", err)
			}
			if re.Reason != tt.want {
				t.Errorf("Reason = %q, want %q", re.Reason, tt.want)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	n := newTestNormalizer()

	r := n.ValidateFormat(nil)
	if r.IsObject || r.HasContent || r.HasSender || r.HasGroup {
		t.Errorf("ValidateFormat(nil) = %+v", r)
	}
	if !r.HasValidTimestamp {
		t.Error("HasValidTimestamp should always be true")
	}

	for _, f := range SupportedFormats() {
		if r := n.ValidateFormat(f.Payload); !r.Valid() || !r.HasValidTimestamp {
			t.Errorf("ValidateFormat(%s) = %+v, want all true", f.Name, r)
		}
	}

	r = n.ValidateFormat(map[string]any{"sender": 123, "groupId": 456})
	if !r.IsObject || r.HasContent || !r.HasSender || !r.HasGroup {
		t.Errorf("ValidateFormat(no content) = %+v", r)
	}
}

func TestValidateFormat_AgreesWithNormalize(t *testing.T) {
	n := newTestNormalizer()

	var corpus []any
	for _, f := range SupportedFormats() {
		corpus = append(corpus, f.Payload)
	}
	for _, f := range InvalidFormats() {
		corpus = append(corpus, f.Payload)
	}
	for _, f := range SimulatedPayloads(fixedNow) {
		corpus = append(corpus, f.Payload)
	}
	corpus = append(corpus,
		map[string]any{"message": "   ", "sender": 1, "groupId": 2},
		map[string]any{"body": "x", "userId": "7", "channel_id": "3"},
		map[string]any{"body": "x", "user": map[string]any{"id": 0}, "channel_id": 3},
		map[string]any{"body": "x", "sender": "abc", "room_id": 3},
		map[string]any{"body": "x", "sender": 1, "room_id": nil, "channelId": 4},
		map[string]any{"body": "x", "sender": 1, "groupId": "zero"},
		42,
	)

	for i, p := range corpus {
		r := n.ValidateFormat(p)
		msg, err := n.Explain(p, 0)

		if (msg != nil) != r.Valid() {
			t.Errorf("payload %d: Valid() = %v but message = %v", i, r.Valid(), msg)
			continue
		}
		if msg != nil {
			continue
		}
		var re *RejectError
		if !errors.As(err, &re) {
			t.Fatalf("payload %d: error = %v, want *RejectError", i, err)
		}
		var want RejectReason
		switch {
		case !r.IsObject:
			want = ReasonMalformed
		case !r.HasContent:
			want = ReasonMissingContent
		case !r.HasSender:
			want = ReasonMissingSender
		default:
			want = ReasonMissingGroup
		}
		if re.Reason != want {
			t.Errorf("payload %d: reason = %q, want %q (report %+v)", i, re.Reason, want, r)
		}
	}
}

func TestNormalizeAll(t *testing.T) {
	n := newTestNormalizer()
	var payloads []any
	for _, f := range SupportedFormats() {
		payloads = append(payloads, f.Payload)
	}
	for _, f := range InvalidFormats() {
		payloads = append(payloads, f.Payload)
	}

	messages := n.NormalizeAll(payloads, 456)
	if len(messages) != 3 {
		t.Errorf("NormalizeAll() returned %d messages, want 3", len(messages))
	}
}
