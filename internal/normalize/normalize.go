// Package normalize turns pipeline outcomes into the gateway's single
// response shape. Every client-visible body, success or failure, is built
// here so handlers never assemble JSON ad hoc.
package normalize

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jmehdipour/whatsapp-gateway/internal/model"
	"github.com/jmehdipour/whatsapp-gateway/internal/provider"
	"github.com/jmehdipour/whatsapp-gateway/internal/validate"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error kinds carried in the body. Kind names the failure class; for
// provider errors the sub-kind travels in the reason field.
const (
	KindValidationError    = "validation_error"
	KindProviderError      = "provider_error"
	KindConfigurationError = "configuration_error"
	KindRateLimited        = "rate_limited"
)

// Response is the wire body for the send endpoint. Success populates the
// message fields, failure the error fields; the zero fields stay off the
// wire, so a body is never half of each.
type Response struct {
	Status string `json:"status"`

	MessageSID string `json:"message_sid,omitempty"`
	To         string `json:"to,omitempty"`
	Body       string `json:"body,omitempty"`
	NumMedia   string `json:"num_media,omitempty"`

	Kind    string `json:"kind,omitempty"`
	Field   string `json:"field,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// Success shapes an accepted message into the 200 payload. NumMedia goes
// out as a decimal string, matching what the provider reports.
func Success(res *model.SendResult) (int, Response) {
	return http.StatusOK, Response{
		Status:     StatusSuccess,
		MessageSID: res.SID,
		To:         res.To,
		Body:       res.Body,
		NumMedia:   strconv.Itoa(res.NumMedia),
	}
}

// Failure maps a typed pipeline error onto an HTTP status and body:
// validation errors are 422, configuration errors 500, and provider
// errors 401, 429 or 502 depending on the sub-kind. Errors that carry
// none of the known types fall back to a generic 502.
func Failure(err error) (int, Response) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity, Response{
			Status:  StatusError,
			Kind:    KindValidationError,
			Field:   verr.Field,
			Message: verr.Reason,
		}
	}

	var cerr *provider.ConfigError
	if errors.As(err, &cerr) {
		return http.StatusInternalServerError, Response{
			Status:  StatusError,
			Kind:    KindConfigurationError,
			Message: cerr.Reason,
		}
	}

	var perr *provider.Error
	if errors.As(err, &perr) {
		return providerStatus(perr.Kind), Response{
			Status:  StatusError,
			Kind:    KindProviderError,
			Reason:  perr.Kind.String(),
			Message: perr.Message,
		}
	}

	return http.StatusBadGateway, Response{
		Status:  StatusError,
		Kind:    KindProviderError,
		Reason:  provider.KindUnavailable.String(),
		Message: "message could not be sent",
	}
}

func providerStatus(kind provider.ErrorKind) int {
	switch kind {
	case provider.KindAuthentication:
		return http.StatusUnauthorized
	case provider.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

// BadRequest is the 400 body for requests that do not decode at all.
func BadRequest(message string) (int, Response) {
	return http.StatusBadRequest, Response{
		Status:  StatusError,
		Kind:    KindValidationError,
		Message: message,
	}
}

// RateLimited is the 429 body the throttle middleware writes.
func RateLimited() (int, Response) {
	return http.StatusTooManyRequests, Response{
		Status:  StatusError,
		Kind:    KindRateLimited,
		Message: "too many requests, slow down",
	}
}

// MetricReason labels a response for the messages counter: the failing
// field for validation errors, the sub-kind for provider errors, a fixed
// label otherwise. Success and unknown shapes return "none".
func MetricReason(resp Response) string {
	switch {
	case resp.Field != "":
		return resp.Field
	case resp.Reason != "":
		return resp.Reason
	case resp.Kind == KindConfigurationError:
		return "configuration"
	case resp.Kind == KindValidationError:
		return "body_decode"
	}
	return "none"
}
