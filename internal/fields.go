package internal

import (
	"strings"
	"time"
)

// fieldRule pairs a field name with the extractor that reads it. Rules are
// evaluated in declaration order and the first one that matches wins.
type fieldRule struct {
	Field   string
	Extract func(obj map[string]any) (any, bool)
}

// ContentFields lists the content field names in priority order
var ContentFields = []string{"message", "content", "text", "body"}

// GroupFields lists the scope field names in priority order
var GroupFields = []string{"groupId", "group_id", "roomId", "room_id", "channelId", "channel_id"}

// TimestampFields lists the timestamp field names in priority order
var TimestampFields = []string{"timestamp", "createdAt", "created_at", "time", "date"}

var contentRules = rulesFor(ContentFields, stringField)

var senderRules = []fieldRule{
	{Field: "sender.id", Extract: nestedID("sender")},
	{Field: "sender", Extract: scalarField("sender")},
	{Field: "senderId", Extract: truthyField("senderId")},
	{Field: "user.id", Extract: nestedID("user")},
	{Field: "userId", Extract: truthyField("userId")},
}

var groupRules = rulesFor(GroupFields, presentField)

var timestampRules = rulesFor(TimestampFields, timeField)

// SenderFields lists the sender rule names in priority order
func SenderFields() []string {
	names := make([]string, len(senderRules))
	for i, r := range senderRules {
		names[i] = r.Field
	}
	return names
}

func rulesFor(fields []string, extractor func(string) func(map[string]any) (any, bool)) []fieldRule {
	rules := make([]fieldRule, len(fields))
	for i, f := range fields {
		rules[i] = fieldRule{Field: f, Extract: extractor(f)}
	}
	return rules
}

// firstMatch runs the rules in order and returns the first extracted value
func firstMatch(rules []fieldRule, obj map[string]any) (any, string, bool) {
	for _, r := range rules {
		if v, ok := r.Extract(obj); ok {
			return v, r.Field, true
		}
	}
	return nil, "", false
}

// stringField matches a non-blank string value
func stringField(name string) func(map[string]any) (any, bool) {
	return func(obj map[string]any) (any, bool) {
		s, ok := obj[name].(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, false
		}
		return s, true
	}
}

// presentField matches any value that is neither absent nor null
func presentField(name string) func(map[string]any) (any, bool) {
	return func(obj map[string]any) (any, bool) {
		v, ok := obj[name]
		if !ok || v == nil {
			return nil, false
		}
		return v, true
	}
}

// truthyField matches a truthy flat value
func truthyField(name string) func(map[string]any) (any, bool) {
	return func(obj map[string]any) (any, bool) {
		v := obj[name]
		if !truthy(v) {
			return nil, false
		}
		return v, true
	}
}

// scalarField matches a truthy number or string
func scalarField(name string) func(map[string]any) (any, bool) {
	return func(obj map[string]any) (any, bool) {
		v := obj[name]
		if !truthy(v) || !isScalarID(v) {
			return nil, false
		}
		return v, true
	}
}

// nestedID matches an object field carrying a truthy id
func nestedID(name string) func(map[string]any) (any, bool) {
	return func(obj map[string]any) (any, bool) {
		nested, ok := asObject(obj[name])
		if !ok {
			return nil, false
		}
		id := nested["id"]
		if !truthy(id) {
			return nil, false
		}
		return id, true
	}
}

// timeField matches a truthy value that parses as a point in time
func timeField(name string) func(map[string]any) (any, bool) {
	return func(obj map[string]any) (any, bool) {
		v := obj[name]
		if !truthy(v) {
			return nil, false
		}
		t, ok := parseTimestamp(v)
		if !ok {
			return nil, false
		}
		return t, true
	}
}

// extractContent returns the trimmed message content
func extractContent(obj map[string]any) (string, string, bool) {
	v, field, ok := firstMatch(contentRules, obj)
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(v.(string)), field, true
}

// extractSenderID returns the integer sender id. The first matching rule
// decides; a value that does not coerce is not resolvable.
func extractSenderID(obj map[string]any) (int64, string, bool) {
	v, field, ok := firstMatch(senderRules, obj)
	if !ok {
		return 0, "", false
	}
	id, ok := toInt(v)
	if !ok {
		return 0, field, false
	}
	return id, field, true
}

// extractGroupID returns the integer scope id. Zero is not a valid scope.
func extractGroupID(obj map[string]any) (int64, string, bool) {
	v, field, ok := firstMatch(groupRules, obj)
	if !ok {
		return 0, "", false
	}
	id, ok := toInt(v)
	if !ok || id == 0 {
		return 0, field, false
	}
	return id, field, true
}

// extractTimestamp returns the first parsable timestamp, or now
func extractTimestamp(obj map[string]any, now time.Time) (time.Time, string) {
	v, field, ok := firstMatch(timestampRules, obj)
	if !ok {
		return now, ""
	}
	return v.(time.Time), field
}
