package logger

import (
	"fmt"
)

// clientErrorThreshold is the status code at and above which responses
// are logged as warnings.
const clientErrorThreshold = 400

// APILogger records request and response activity through the "api"
// named logger.
type APILogger struct {
	log *NamedLogger
}

// NewAPILogger builds an API logger emitting into r.
func NewAPILogger(r *Router) *APILogger {
	return &APILogger{log: r.GetLogger("api")}
}

// requestDetails carries the optional parts of a request or response
// log call.
type requestDetails struct {
	userID    *string
	requestID *string
	ipAddress *string
}

// RequestOption attaches optional detail to LogRequest and LogResponse.
type RequestOption func(*requestDetails)

// RequestUser attaches the authenticated user's identifier.
func RequestUser(userID string) RequestOption {
	return func(d *requestDetails) {
		d.userID = &userID
	}
}

// RequestID attaches the request correlation identifier.
func RequestID(id string) RequestOption {
	return func(d *requestDetails) {
		d.requestID = &id
	}
}

// RequestIP attaches the client address.
func RequestIP(addr string) RequestOption {
	return func(d *requestDetails) {
		d.ipAddress = &addr
	}
}

// LogRequest records an incoming request at INFO. User and request
// identifiers, when supplied, land in the event context; method,
// endpoint and client address go to extra_data.
func (a *APILogger) LogRequest(method, endpoint string, opts ...RequestOption) {
	var details requestDetails
	for _, opt := range opts {
		opt(&details)
	}

	extra := map[string]any{
		"method":   method,
		"endpoint": endpoint,
	}
	if details.ipAddress != nil {
		extra["ip_address"] = *details.ipAddress
	}

	eventOpts := []Option{WithExtraData(extra)}
	if details.userID != nil {
		eventOpts = append(eventOpts, WithUserID(*details.userID))
	}
	if details.requestID != nil {
		eventOpts = append(eventOpts, WithRequestID(*details.requestID))
	}

	a.log.Info(fmt.Sprintf("%s %s", method, endpoint), eventOpts...)
}

// LogResponse records an outgoing response. Responses with status 400
// and above are warnings, everything else is INFO. responseTime is in
// seconds.
func (a *APILogger) LogResponse(statusCode int, responseTime float64, opts ...RequestOption) {
	var details requestDetails
	for _, opt := range opts {
		opt(&details)
	}

	extra := map[string]any{
		"status_code":   statusCode,
		"response_time": responseTime,
	}

	eventOpts := []Option{WithExtraData(extra)}
	if details.requestID != nil {
		eventOpts = append(eventOpts, WithRequestID(*details.requestID))
	}

	message := fmt.Sprintf("Response: %d (took %.3fs)", statusCode, responseTime)
	if statusCode >= clientErrorThreshold {
		a.log.Warning(message, eventOpts...)
	} else {
		a.log.Info(message, eventOpts...)
	}
}
