package http

import (
	"net/http"
	"strconv"

	"github.com/jmehdipour/whatsapp-gateway/internal/config"
	"github.com/jmehdipour/whatsapp-gateway/internal/metrics"
	"github.com/jmehdipour/whatsapp-gateway/internal/model"
	"github.com/jmehdipour/whatsapp-gateway/internal/provider"
	"github.com/jmehdipour/whatsapp-gateway/internal/util"
	"github.com/labstack/echo/v4"
)

// verifyConfigHandler probes the provider with the configured credentials
// on every call; nothing is cached between requests. The endpoint always
// answers 200, a broken setup shows up in the body instead.
func verifyConfigHandler(tw config.TwilioConfig, client provider.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		working, err := client.CheckCredentials(c.Request().Context())
		if err != nil {
			c.Logger().Errorf("credential probe failed: %v", err)
		}

		metrics.ConfigChecksTotal.WithLabelValues(strconv.FormatBool(working)).Inc()

		return c.JSON(http.StatusOK, model.ConfigStatus{
			NumberConfigured: tw.WhatsAppNumber != "",
			AuthWorking:      working,
			WhatsAppNumber:   util.MaskNumber(tw.WhatsAppNumber),
		})
	}
}
