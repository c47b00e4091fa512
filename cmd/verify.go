package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jmehdipour/whatsapp-gateway/internal/config"
	"github.com/jmehdipour/whatsapp-gateway/internal/model"
	"github.com/jmehdipour/whatsapp-gateway/internal/provider"
	"github.com/jmehdipour/whatsapp-gateway/internal/util"
	"github.com/spf13/cobra"
)

// verifyCmd checks credentials without starting the server, for use from
// a shell or CI before deploying.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check Twilio credentials and sender number",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		client := provider.NewTwilio(cfg.Twilio, nil)

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		working, probeErr := client.CheckCredentials(ctx)
		if probeErr != nil {
			fmt.Fprintf(os.Stderr, "probe error: %v\n", probeErr)
		}

		st := model.ConfigStatus{
			NumberConfigured: cfg.Twilio.WhatsAppNumber != "",
			AuthWorking:      working,
			WhatsAppNumber:   util.MaskNumber(cfg.Twilio.WhatsAppNumber),
		}

		out, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))

		if !st.NumberConfigured || !st.AuthWorking {
			return fmt.Errorf("configuration incomplete")
		}
		return nil
	},
}
