package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmehdipour/whatsapp-gateway/internal/model"
)

func TestMessageValid(t *testing.T) {
	cases := []struct {
		name string
		req  model.SendRequest
	}{
		{"plain text", model.SendRequest{To: "whatsapp:+254716160370", Body: "Hello"}},
		{"single digit number", model.SendRequest{To: "whatsapp:+1", Body: "hi"}},
		{"max length number", model.SendRequest{To: "whatsapp:+123456789012345", Body: "hi"}},
		{"max length body", model.SendRequest{To: "whatsapp:+254716160370", Body: strings.Repeat("a", 1600)}},
		{"with http media", model.SendRequest{To: "whatsapp:+254716160370", Body: "pic", MediaURL: "http://example.com/cat.jpg"}},
		{"with https media", model.SendRequest{To: "whatsapp:+254716160370", Body: "pic", MediaURL: "https://picsum.photos/1200/800"}},
		{"multibyte body counted in runes", model.SendRequest{To: "whatsapp:+49151", Body: strings.Repeat("ü", 1600)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NoError(t, Message(tc.req))
		})
	}
}

func TestMessageInvalidTo(t *testing.T) {
	cases := []struct {
		name string
		to   string
	}{
		{"missing prefix", "254716160370"},
		{"plus only no prefix", "+254716160370"},
		{"missing plus", "whatsapp:254716160370"},
		{"no digits", "whatsapp:+"},
		{"sixteen digits", "whatsapp:+1234567890123456"},
		{"letters in number", "whatsapp:+2547abc"},
		{"trailing space", "whatsapp:+254716160370 "},
		{"uppercase prefix", "WHATSAPP:+254716160370"},
		{"empty", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Message(model.SendRequest{To: tc.to, Body: "Hello"})
			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "to", verr.Field)
		})
	}
}

func TestMessageInvalidBody(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"over limit", strings.Repeat("a", 1601)},
		{"over limit multibyte", strings.Repeat("é", 1601)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Message(model.SendRequest{To: "whatsapp:+254716160370", Body: tc.body})
			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "body", verr.Field)
			assert.Equal(t, "length must be between 1 and 1600 characters", verr.Reason)
		})
	}
}

func TestMessageInvalidMediaURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
	}{
		{"relative path", "images/cat.jpg"},
		{"missing host", "http://"},
		{"ftp scheme", "ftp://example.com/cat.jpg"},
		{"bare scheme", "https://"},
		{"control character", "http://exa\x7fmple.com/a"},
		{"scheme only text", "not a url"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Message(model.SendRequest{
				To:       "whatsapp:+254716160370",
				Body:     "pic",
				MediaURL: tc.url,
			})
			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "media_url", verr.Field)
			assert.Equal(t, "must be a valid URL", verr.Reason)
		})
	}
}

func TestMessageChecksStopAtFirstFailure(t *testing.T) {
	// everything is wrong; the recipient check wins
	err := Message(model.SendRequest{To: "garbage", Body: "", MediaURL: "::"})
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "to", verr.Field)

	// recipient fine, body and media wrong; the body check wins
	err = Message(model.SendRequest{To: "whatsapp:+14155238886", Body: "", MediaURL: "::"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "body", verr.Field)
}

func TestErrorString(t *testing.T) {
	err := &Error{Field: "to", Reason: "must be in format whatsapp:+<countrycode><number>"}
	assert.Equal(t, "to: must be in format whatsapp:+<countrycode><number>", err.Error())
}
