package logger

import (
	"fmt"
)

// queryPreviewLen bounds how much query text appears in the
// human-readable message; the full query always goes to extra_data.
const queryPreviewLen = 100

// DatabaseLogger records database operations through the "database"
// named logger.
type DatabaseLogger struct {
	log *NamedLogger
}

// NewDatabaseLogger builds a database logger emitting into r.
func NewDatabaseLogger(r *Router) *DatabaseLogger {
	return &DatabaseLogger{log: r.GetLogger("database")}
}

// queryDetails carries the optional parts of a query log call.
// Presence is explicit: an option supplied with a zero value (an empty
// params map, a 0.0 execution time) is still present.
type queryDetails struct {
	params        map[string]any
	executionTime *float64
	failedQuery   *string
}

// QueryOption attaches optional detail to LogQuery and LogError.
type QueryOption func(*queryDetails)

// QueryParams attaches the query's bound parameters.
func QueryParams(params map[string]any) QueryOption {
	return func(d *queryDetails) {
		d.params = params
	}
}

// QueryDuration attaches the query's execution time in seconds.
func QueryDuration(seconds float64) QueryOption {
	return func(d *queryDetails) {
		d.executionTime = &seconds
	}
}

// FailedQuery attaches the query text that failed, for LogError.
func FailedQuery(query string) QueryOption {
	return func(d *queryDetails) {
		d.failedQuery = &query
	}
}

// LogQuery records a query execution at INFO. The message carries the
// first 100 characters of the query and, when supplied, the timing
// suffix; extra_data carries the full query, the parameters and the
// execution time.
func (d *DatabaseLogger) LogQuery(query string, opts ...QueryOption) {
	var details queryDetails
	for _, opt := range opts {
		opt(&details)
	}

	message := fmt.Sprintf("Executing query: %s...", truncate(query, queryPreviewLen))
	if details.executionTime != nil {
		message += fmt.Sprintf(" (took %.3fs)", *details.executionTime)
	}

	extra := map[string]any{"query": query}
	if details.params != nil {
		extra["params"] = details.params
	}
	if details.executionTime != nil {
		extra["execution_time"] = *details.executionTime
	}

	d.log.Info(message, WithExtraData(extra))
}

// LogError records a failed database operation at ERROR, always
// capturing the exception info.
func (d *DatabaseLogger) LogError(err error, opts ...QueryOption) {
	var details queryDetails
	for _, opt := range opts {
		opt(&details)
	}

	extra := map[string]any{"error_type": fmt.Sprintf("%T", err)}
	if details.failedQuery != nil {
		extra["failed_query"] = *details.failedQuery
	}

	d.log.Error(fmt.Sprintf("Database error: %v", err),
		WithExtraData(extra), WithError(err))
}

// truncate returns at most max characters of s, never splitting a
// multibyte character.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
