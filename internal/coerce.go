package internal

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// asObject returns the payload as a string-keyed map when it is one
func asObject(v any) (map[string]any, bool) {
	switch obj := v.(type) {
	case map[string]any:
		return obj, obj != nil
	case map[any]any:
		// yaml.v2 style documents
		out := make(map[string]any, len(obj))
		for k, val := range obj {
			key, ok := k.(string)
			if !ok {
				continue
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// truthy mirrors loose truthiness: nil, false, "", 0 and NaN are false
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case json.Number:
		f, err := val.Float64()
		return err == nil && f != 0
	case float64:
		return val != 0 && !math.IsNaN(val)
	case float32:
		return val != 0 && !math.IsNaN(float64(val))
	case int:
		return val != 0
	case int64:
		return val != 0
	case int32:
		return val != 0
	case uint64:
		return val != 0
	case uint:
		return val != 0
	default:
		return true
	}
}

// isScalarID reports whether v is a number or a string
func isScalarID(v any) bool {
	switch v.(type) {
	case string, json.Number, float64, float32, int, int64, int32, uint64, uint:
		return true
	default:
		return false
	}
}

// toInt coerces a number or numeric-prefixed string to an integer.
// Fractions are truncated toward zero. Strings are read up to the
// first non-digit after an optional sign.
func toInt(v any) (int64, bool) {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n, true
		}
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case float64:
		return floatToInt(val)
	case float32:
		return floatToInt(float64(val))
	case int:
		return int64(val), true
	case int64:
		return val, true
	case int32:
		return int64(val), true
	case uint64:
		if val > math.MaxInt64 {
			return 0, false
		}
		return int64(val), true
	case uint:
		return toInt(uint64(val))
	case string:
		return leadingInt(val)
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func leadingInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// timeLayouts are tried in order for string timestamps. Layouts without a
// zone are read in local time, except date-only values which are UTC.
var timeLayouts = []struct {
	layout string
	local  bool
}{
	{time.RFC3339Nano, false},
	{time.RFC3339, false},
	{"2006-01-02T15:04:05.999999999Z0700", false},
	{"2006-01-02T15:04:05.999999999", true},
	{"2006-01-02T15:04", true},
	{"2006-01-02 15:04:05.999999999Z07:00", false},
	{"2006-01-02 15:04:05.999999999", true},
	{"2006-01-02", false},
	{time.RFC1123, false},
	{time.RFC1123Z, false},
	{time.RFC850, false},
	{time.UnixDate, false},
	{time.ANSIC, true},
	{"Mon Jan 02 2006 15:04:05 GMT-0700", false},
	{"2006/01/02 15:04:05", true},
	{"2006/01/02 15:04", true},
	{"2006/01/02", true},
	{"Jan 2, 2006 15:04:05", true},
	{"Jan 2, 2006", true},
	{"January 2, 2006 15:04:05", true},
	{"January 2, 2006", true},
}

// maxEpochMillis is the largest representable date offset, ±100,000,000 days
const maxEpochMillis = 8.64e15

// parseTimestamp converts a string date, an already decoded time or an
// epoch-millisecond number into a time. Numeric strings are not treated as
// epoch values.
func parseTimestamp(v any) (time.Time, bool) {
	switch val := v.(type) {
	case string:
		return parseTimeString(val)
	case time.Time:
		// unquoted YAML timestamps
		return val, !val.IsZero()
	case bool, nil:
		return time.Time{}, false
	}
	if !isScalarID(v) {
		return time.Time{}, false
	}
	var ms float64
	switch val := v.(type) {
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return time.Time{}, false
		}
		ms = f
	case float64:
		ms = val
	case float32:
		ms = float64(val)
	default:
		n, ok := toInt(v)
		if !ok {
			return time.Time{}, false
		}
		ms = float64(n)
	}
	if math.IsNaN(ms) || math.Abs(ms) > maxEpochMillis {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)), true
}

func parseTimeString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range timeLayouts {
		var (
			t   time.Time
			err error
		)
		if l.local {
			t, err = time.ParseInLocation(l.layout, s, time.Local)
		} else {
			t, err = time.Parse(l.layout, s)
		}
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
