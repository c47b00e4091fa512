package http

import (
	"github.com/jmehdipour/whatsapp-gateway/internal/metrics"
	"github.com/jmehdipour/whatsapp-gateway/internal/model"
	"github.com/jmehdipour/whatsapp-gateway/internal/normalize"
	"github.com/jmehdipour/whatsapp-gateway/internal/provider"
	"github.com/jmehdipour/whatsapp-gateway/internal/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// sendWhatsAppHandler runs the pipeline: decode, validate, one provider
// call, normalize. Nothing is retried and nothing is stored.
func sendWhatsAppHandler(client provider.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req model.SendRequest
		if err := c.Bind(&req); err != nil {
			status, body := normalize.BadRequest("request body must be valid JSON")
			observeSend(body)
			return c.JSON(status, body)
		}

		if err := validate.Message(req); err != nil {
			status, body := normalize.Failure(err)
			observeSend(body)
			return c.JSON(status, body)
		}

		res, err := client.Send(c.Request().Context(), req)
		if err != nil {
			log.Errorf("send failed: %v", err)

			status, body := normalize.Failure(err)
			observeSend(body)
			return c.JSON(status, body)
		}

		status, body := normalize.Success(res)
		observeSend(body)
		return c.JSON(status, body)
	}
}

func observeSend(body normalize.Response) {
	outcome := body.Kind
	if outcome == "" {
		outcome = body.Status
	}
	metrics.MessagesTotal.WithLabelValues(outcome, normalize.MetricReason(body)).Inc()
}
