package logger_test

import (
	"math"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkarvinen/loghub/internal/logger"
)

func testEvent() *logger.Event {
	return &logger.Event{
		Timestamp: time.Date(2025, 8, 31, 10, 15, 2, 123456000, time.UTC),
		Severity:  logger.SeverityInfo,
		Logger:    "database",
		Message:   "Executing query",
		Source: logger.SourceLocation{
			Module:   "repository",
			Function: "FindUser",
			Line:     142,
		},
	}
}

func TestLineFormatter(t *testing.T) {
	f := &logger.LineFormatter{}

	line, err := f.Format(testEvent())
	require.NoError(t, err)

	assert.Equal(t, "2025-08-31 10:15:02 | INFO     | database | Executing query\n", string(line))
}

func TestLineFormatterIncludesLineNumber(t *testing.T) {
	f := &logger.LineFormatter{IncludeLine: true}

	line, err := f.Format(testEvent())
	require.NoError(t, err)

	assert.Equal(t, "2025-08-31 10:15:02 | INFO     | database:142 | Executing query\n", string(line))
}

func TestLineFormatterLevelPadding(t *testing.T) {
	testCases := []struct {
		severity logger.Severity
		want     string
	}{
		{logger.SeverityDebug, "| DEBUG    |"},
		{logger.SeverityWarning, "| WARNING  |"},
		{logger.SeverityCritical, "| CRITICAL |"},
	}

	f := &logger.LineFormatter{}
	for _, tc := range testCases {
		e := testEvent()
		e.Severity = tc.severity
		line, err := f.Format(e)
		require.NoError(t, err)
		assert.Contains(t, string(line), tc.want)
	}
}

func TestJSONFormatterRequiredKeys(t *testing.T) {
	f := &logger.JSONFormatter{}

	line, err := f.Format(testEvent())
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(line, &entry))

	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "database", entry["logger"])
	assert.Equal(t, "Executing query", entry["message"])
	assert.Equal(t, "repository", entry["module"])
	assert.Equal(t, "FindUser", entry["function"])
	assert.EqualValues(t, 142, entry["line"])

	ts, ok := entry["timestamp"].(string)
	require.True(t, ok)
	parsed, err := time.Parse(time.RFC3339Nano, ts)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(testEvent().Timestamp))
}

func TestJSONFormatterOmitsAbsentContext(t *testing.T) {
	f := &logger.JSONFormatter{}

	line, err := f.Format(testEvent())
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(line, &entry))

	// Missing context fields must not appear as keys at all, not even
	// as nulls.
	for _, key := range []string{"user_id", "request_id", "extra_data", "exception"} {
		_, present := entry[key]
		assert.False(t, present, "key %q should be omitted", key)
	}
}

func TestJSONFormatterContextFields(t *testing.T) {
	e := testEvent()
	userID := "user456"
	requestID := "req789"
	e.Context = logger.Context{
		UserID:    &userID,
		RequestID: &requestID,
		ExtraData: map[string]any{"order_id": "ORDER789", "amount": 99.99},
	}

	line, err := (&logger.JSONFormatter{}).Format(e)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(line, &entry))

	assert.Equal(t, "user456", entry["user_id"])
	assert.Equal(t, "req789", entry["request_id"])

	extra, ok := entry["extra_data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ORDER789", extra["order_id"])
	assert.InDelta(t, 99.99, extra["amount"], 1e-9)
}

func TestJSONFormatterEmptyStringIsPresent(t *testing.T) {
	// An explicitly supplied empty user id is present, not dropped.
	e := testEvent()
	empty := ""
	e.Context.UserID = &empty

	line, err := (&logger.JSONFormatter{}).Format(e)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(line, &entry))

	got, present := entry["user_id"]
	require.True(t, present)
	assert.Equal(t, "", got)
}

func TestJSONFormatterNonSerializableFallback(t *testing.T) {
	e := testEvent()
	e.Context.ExtraData = map[string]any{
		"channel": make(chan int),
		"nested": map[string]any{
			"fn": func() {},
			"ok": true,
		},
		"values": []any{1, "two", make(chan int)},
	}

	line, err := (&logger.JSONFormatter{}).Format(e)
	require.NoError(t, err, "a log line must never fail on payload values")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(line, &entry))

	extra := entry["extra_data"].(map[string]any)
	_, isString := extra["channel"].(string)
	assert.True(t, isString, "non-serializable value should degrade to its string form")

	nested := extra["nested"].(map[string]any)
	assert.Equal(t, true, nested["ok"])
	_, isString = nested["fn"].(string)
	assert.True(t, isString)

	values := extra["values"].([]any)
	require.Len(t, values, 3)
	assert.EqualValues(t, 1, values[0])
	assert.Equal(t, "two", values[1])
}

func TestJSONFormatterNonFiniteFloats(t *testing.T) {
	e := testEvent()
	e.Context.ExtraData = map[string]any{
		"ratio":    math.NaN(),
		"upper":    math.Inf(1),
		"lower":    math.Inf(-1),
		"small":    float32(math.NaN()),
		"ordinary": 0.5,
	}

	line, err := (&logger.JSONFormatter{}).Format(e)
	require.NoError(t, err, "non-finite floats must not drop the line")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(line, &entry))

	extra := entry["extra_data"].(map[string]any)
	assert.Equal(t, "NaN", extra["ratio"])
	assert.Equal(t, "+Inf", extra["upper"])
	assert.Equal(t, "-Inf", extra["lower"])
	assert.Equal(t, "NaN", extra["small"])
	assert.InDelta(t, 0.5, extra["ordinary"], 1e-9)
}

func TestJSONFormatterCyclicPayload(t *testing.T) {
	cyclic := map[string]any{"name": "loop"}
	cyclic["self"] = cyclic

	shared := map[string]any{"k": 1}

	e := testEvent()
	e.Context.ExtraData = map[string]any{
		"cyclic": cyclic,
		// The same map referenced twice on sibling branches is not a
		// cycle and must keep its structure.
		"left":  shared,
		"right": shared,
	}

	line, err := (&logger.JSONFormatter{}).Format(e)
	require.NoError(t, err, "a self-referencing payload must not fail the line")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(line, &entry))

	extra := entry["extra_data"].(map[string]any)
	inner := extra["cyclic"].(map[string]any)
	assert.Equal(t, "loop", inner["name"])
	self, isString := inner["self"].(string)
	require.True(t, isString, "cycle should degrade to its string marker")
	assert.Contains(t, self, "cycle")

	left := extra["left"].(map[string]any)
	right := extra["right"].(map[string]any)
	assert.EqualValues(t, 1, left["k"])
	assert.EqualValues(t, 1, right["k"])
}

func TestJSONFormatterException(t *testing.T) {
	e := testEvent()
	e.Severity = logger.SeverityError

	err := errors.New("connection reset")
	e.Exception = &logger.ExceptionInfo{
		Kind:    "*errors.fundamental",
		Message: err.Error(),
		Stack:   "stack trace text",
	}

	line, formatErr := (&logger.JSONFormatter{}).Format(e)
	require.NoError(t, formatErr)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(line, &entry))

	exc, ok := entry["exception"].(string)
	require.True(t, ok)
	assert.Contains(t, exc, "connection reset")
	assert.Contains(t, exc, "stack trace text")
}
