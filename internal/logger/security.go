package logger

import (
	"fmt"
)

// SecurityLogger records authentication and authorization events
// through the "security" named logger. Free-form values pass through
// RedactSensitiveData before they enter an event.
type SecurityLogger struct {
	log *NamedLogger
}

// NewSecurityLogger builds a security logger emitting into r.
func NewSecurityLogger(r *Router) *SecurityLogger {
	return &SecurityLogger{log: r.GetLogger("security")}
}

// loginDetails carries the optional parts of a login attempt record.
type loginDetails struct {
	userAgent *string
}

// LoginOption attaches optional detail to LogLoginAttempt.
type LoginOption func(*loginDetails)

// LoginUserAgent attaches the client's user agent string.
func LoginUserAgent(ua string) LoginOption {
	return func(d *loginDetails) {
		d.userAgent = &ua
	}
}

// LogLoginAttempt records a login attempt: INFO when it succeeded,
// WARNING when it failed. extra_data is tagged event_type=login_attempt.
func (s *SecurityLogger) LogLoginAttempt(username string, success bool, ipAddress string, opts ...LoginOption) {
	var details loginDetails
	for _, opt := range opts {
		opt(&details)
	}

	status := "successful"
	if !success {
		status = "failed"
	}
	message := fmt.Sprintf("Login attempt %s for user: %s from %s", status, username, ipAddress)

	extra := map[string]any{
		"username":   username,
		"success":    success,
		"ip_address": ipAddress,
		"event_type": "login_attempt",
	}
	if details.userAgent != nil {
		extra["user_agent"] = RedactSensitiveData(*details.userAgent)
	}

	if success {
		s.log.Info(message, WithExtraData(extra))
	} else {
		s.log.Warning(message, WithExtraData(extra))
	}
}

// LogPermissionDenied records an authorization refusal at WARNING.
// extra_data is tagged event_type=permission_denied.
func (s *SecurityLogger) LogPermissionDenied(userID, resource, action string) {
	message := fmt.Sprintf("Permission denied: User %s attempted %s on %s", userID, action, resource)

	s.log.Warning(message, WithExtraData(map[string]any{
		"user_id":    userID,
		"resource":   resource,
		"action":     action,
		"event_type": "permission_denied",
	}))
}
