package logger

import (
	"fmt"
	"math"
	"reflect"
	"time"

	json "github.com/goccy/go-json"
)

// JSONFormatter renders events as line-delimited JSON objects. Required
// keys are always present: timestamp, level, logger, message, module,
// function, line. Context keys (user_id, request_id, extra_data) and
// exception appear only when the corresponding field was supplied;
// omission, not null-filling, is the contract.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(e *Event) ([]byte, error) {
	entry := map[string]any{
		"timestamp": e.Timestamp.Format(time.RFC3339Nano),
		"level":     e.Severity.String(),
		"logger":    e.Logger,
		"message":   e.Message,
		"module":    e.Source.Module,
		"function":  e.Source.Function,
		"line":      e.Source.Line,
	}

	if e.Exception != nil {
		entry["exception"] = e.Exception.render()
	}
	if e.Context.UserID != nil {
		entry["user_id"] = *e.Context.UserID
	}
	if e.Context.RequestID != nil {
		entry["request_id"] = *e.Context.RequestID
	}
	if e.Context.ExtraData != nil {
		entry["extra_data"] = serializable(e.Context.ExtraData)
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("marshal log entry: %w", err)
	}
	return append(line, '\n'), nil
}

// serializable walks a value and replaces anything the JSON encoder
// would reject (channels, functions, NaN/Inf floats, cyclic values)
// with its string representation. A log line must never fail because
// of a payload value.
func serializable(v any) any {
	return sanitizeValue(v, map[uintptr]bool{})
}

// sanitizeValue does the recursive walk for serializable. seen holds
// the container pointers on the current path, so a self-referencing
// map or slice degrades to a marker instead of recursing forever.
func sanitizeValue(v any, seen map[uintptr]bool) any {
	switch val := v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return val
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Sprint(val)
		}
		return val
	case float32:
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return fmt.Sprint(val)
		}
		return val
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case time.Duration:
		return val.String()
	case error:
		return val.Error()
	case map[string]any:
		ptr := reflect.ValueOf(val).Pointer()
		if seen[ptr] {
			return fmt.Sprintf("<cycle %T>", val)
		}
		seen[ptr] = true
		clean := make(map[string]any, len(val))
		for k, item := range val {
			clean[k] = sanitizeValue(item, seen)
		}
		delete(seen, ptr)
		return clean
	case []any:
		var ptr uintptr
		if len(val) > 0 {
			ptr = reflect.ValueOf(val).Pointer()
			if seen[ptr] {
				return fmt.Sprintf("<cycle %T>", val)
			}
			seen[ptr] = true
		}
		clean := make([]any, len(val))
		for i, item := range val {
			clean[i] = sanitizeValue(item, seen)
		}
		if ptr != 0 {
			delete(seen, ptr)
		}
		return clean
	default:
		if _, err := json.Marshal(val); err != nil {
			return fmt.Sprint(val)
		}
		return val
	}
}
