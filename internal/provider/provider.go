// Package provider wraps the external messaging provider behind a narrow
// client interface and translates its failures into typed errors.
package provider

import (
	"context"

	"github.com/jmehdipour/whatsapp-gateway/internal/model"
)

// Client is the outbound surface of the gateway. Send performs exactly one
// remote call and never retries locally; CheckCredentials performs a
// read-only authenticated probe and must not send a message or mutate any
// provider-side state. Implementations must be safe for concurrent use.
type Client interface {
	Send(ctx context.Context, req model.SendRequest) (*model.SendResult, error)
	CheckCredentials(ctx context.Context) (bool, error)
}
