package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmehdipour/whatsapp-gateway/internal/model"
	"github.com/jmehdipour/whatsapp-gateway/internal/provider"
	"github.com/jmehdipour/whatsapp-gateway/internal/validate"
)

func TestSuccess(t *testing.T) {
	status, resp := Success(&model.SendResult{
		SID:      "SM123",
		To:       "whatsapp:+989121234567",
		Body:     "hi",
		NumMedia: 0,
	})

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, "SM123", resp.MessageSID)
	assert.Equal(t, "whatsapp:+989121234567", resp.To)
	assert.Equal(t, "hi", resp.Body)
	assert.Equal(t, "0", resp.NumMedia)
	assert.Empty(t, resp.Kind)
}

func TestSuccessWithMedia(t *testing.T) {
	_, resp := Success(&model.SendResult{SID: "SM124", To: "whatsapp:+1415", Body: "pic", NumMedia: 1})
	assert.Equal(t, "1", resp.NumMedia)
}

func TestFailureValidation(t *testing.T) {
	err := &validate.Error{Field: "to", Reason: "must be in format whatsapp:+<countrycode><number>"}

	status, resp := Failure(err)

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, KindValidationError, resp.Kind)
	assert.Equal(t, "to", resp.Field)
	assert.Equal(t, "must be in format whatsapp:+<countrycode><number>", resp.Message)
	assert.Empty(t, resp.MessageSID)
	assert.Empty(t, resp.NumMedia)
}

func TestFailureWrappedValidation(t *testing.T) {
	err := fmt.Errorf("checking request: %w", &validate.Error{Field: "body", Reason: "length must be between 1 and 1600 characters"})

	status, resp := Failure(err)

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "body", resp.Field)
}

func TestFailureConfiguration(t *testing.T) {
	status, resp := Failure(&provider.ConfigError{Reason: "twilio credentials are not configured"})

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, KindConfigurationError, resp.Kind)
	assert.Equal(t, "twilio credentials are not configured", resp.Message)
	assert.Empty(t, resp.Field)
}

func TestFailureProviderKinds(t *testing.T) {
	tests := []struct {
		kind       provider.ErrorKind
		wantStatus int
	}{
		{provider.KindAuthentication, http.StatusUnauthorized},
		{provider.KindRateLimited, http.StatusTooManyRequests},
		{provider.KindInvalidRecipient, http.StatusBadGateway},
		{provider.KindUnavailable, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			status, resp := Failure(&provider.Error{Kind: tt.kind, Code: 42, Message: "upstream said no"})

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, KindProviderError, resp.Kind)
			assert.Equal(t, tt.kind.String(), resp.Reason)
			assert.Equal(t, "upstream said no", resp.Message)
		})
	}
}

func TestFailureUnknownError(t *testing.T) {
	status, resp := Failure(errors.New("pipe burst somewhere private"))

	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, KindProviderError, resp.Kind)
	assert.Equal(t, provider.KindUnavailable.String(), resp.Reason)
	assert.NotContains(t, resp.Message, "pipe burst", "internal error text must not reach the client")
}

func TestBadRequest(t *testing.T) {
	status, resp := BadRequest("request body must be valid JSON")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, KindValidationError, resp.Kind)
	assert.Empty(t, resp.Field)
}

func TestRateLimited(t *testing.T) {
	status, resp := RateLimited()

	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, KindRateLimited, resp.Kind)
	assert.NotEmpty(t, resp.Message)
}

func TestResponseJSONKeysDisjoint(t *testing.T) {
	_, success := Success(&model.SendResult{SID: "SM123", To: "whatsapp:+1", Body: "hi"})
	raw, err := json.Marshal(success)
	require.NoError(t, err)

	var keys map[string]any
	require.NoError(t, json.Unmarshal(raw, &keys))
	assert.Contains(t, keys, "num_media")
	assert.Equal(t, "0", keys["num_media"])
	assert.NotContains(t, keys, "kind")
	assert.NotContains(t, keys, "message")

	_, failure := Failure(&validate.Error{Field: "to", Reason: "bad"})
	raw, err = json.Marshal(failure)
	require.NoError(t, err)

	keys = map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &keys))
	assert.Contains(t, keys, "kind")
	assert.NotContains(t, keys, "message_sid")
	assert.NotContains(t, keys, "num_media")
}

func TestMetricReason(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want string
	}{
		{"success", Response{Status: StatusSuccess}, "none"},
		{"validation field", Response{Kind: KindValidationError, Field: "media_url"}, "media_url"},
		{"provider sub-kind", Response{Kind: KindProviderError, Reason: "authentication"}, "authentication"},
		{"configuration", Response{Kind: KindConfigurationError}, "configuration"},
		{"undecodable body", Response{Kind: KindValidationError}, "body_decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MetricReason(tt.resp))
		})
	}
}
