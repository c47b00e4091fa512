package provider

import (
	"fmt"
	"regexp"
	"strings"
)

// ErrorKind classifies provider-side send failures.
type ErrorKind string

const (
	KindAuthentication   ErrorKind = "authentication"
	KindRateLimited      ErrorKind = "rate_limited"
	KindInvalidRecipient ErrorKind = "invalid_recipient"
	KindUnavailable      ErrorKind = "unavailable"
)

func (k ErrorKind) String() string { return string(k) }

func (k ErrorKind) Valid() bool {
	switch k {
	case KindAuthentication, KindRateLimited, KindInvalidRecipient, KindUnavailable:
		return true
	default:
		return false
	}
}

// Error is a classified provider failure. Message is sanitized and safe to
// surface to clients; the wrapped cause (which may carry request URLs and
// therefore the account SID) is for logs only.
type Error struct {
	Kind    ErrorKind
	Code    int // provider error code, 0 when none was given
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("provider: %s (code %d): %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("provider: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// ConfigError reports absent or unusable gateway credentials, as opposed
// to a failure on the provider's side.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration: %s: %v", e.Reason, e.Err)
	}
	return "configuration: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }

var (
	ansiPattern   = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	recordPattern = regexp.MustCompile(`Unable to create record: (.+)`)
)

// CleanMessage strips terminal escape sequences from a provider message and
// unwraps the "Unable to create record" envelope Twilio puts around the
// useful part.
func CleanMessage(msg string) string {
	msg = ansiPattern.ReplaceAllString(msg, "")
	if m := recordPattern.FindStringSubmatch(msg); m != nil {
		msg = m[1]
	}
	return strings.TrimSpace(msg)
}
