// Package validate holds the pure request checks that run before any
// provider call is made.
package validate

import (
	"net/url"
	"regexp"
	"unicode/utf8"

	"github.com/jmehdipour/whatsapp-gateway/internal/model"
)

// MaxBodyLength is the longest message body the provider accepts.
const MaxBodyLength = 1600

// toPattern: literal "whatsapp:" prefix, then an E.164-like number.
var toPattern = regexp.MustCompile(`^whatsapp:\+[0-9]{1,15}$`)

// Error names the first request field that failed validation.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string { return e.Field + ": " + e.Reason }

// Message checks a send request and returns nil when it is well-formed.
// Checks run in a fixed order and stop at the first failure: recipient,
// body, media URL. No side effects; same input, same outcome.
func Message(req model.SendRequest) error {
	if !toPattern.MatchString(req.To) {
		return &Error{Field: "to", Reason: "must be in format whatsapp:+<countrycode><number>"}
	}

	if n := utf8.RuneCountInString(req.Body); n < 1 || n > MaxBodyLength {
		return &Error{Field: "body", Reason: "length must be between 1 and 1600 characters"}
	}

	if req.MediaURL != "" && !validMediaURL(req.MediaURL) {
		return &Error{Field: "media_url", Reason: "must be a valid URL"}
	}

	return nil
}

// validMediaURL accepts absolute http(s) URLs only; the provider fetches
// the attachment itself and supports nothing else.
func validMediaURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	return u.Host != ""
}
