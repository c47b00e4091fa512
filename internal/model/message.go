package model

// SendRequest is the inbound payload of the send endpoint. It is bound
// once per HTTP request and never mutated afterwards.
type SendRequest struct {
	To       string `json:"to"`
	Body     string `json:"body"`
	MediaURL string `json:"media_url,omitempty"`
}

// MediaCount reports how many media attachments the request carries.
func (r SendRequest) MediaCount() int {
	if r.MediaURL == "" {
		return 0
	}
	return 1
}

// SendResult is what the provider reports back for an accepted message.
type SendResult struct {
	SID      string // provider-assigned message identifier
	To       string
	Body     string
	NumMedia int
}

// ConfigStatus is the outcome of a configuration probe. It is computed
// fresh on every check; credentials can change between deployments.
type ConfigStatus struct {
	NumberConfigured bool   `json:"twilio_number_configured"`
	AuthWorking      bool   `json:"twilio_auth_working"`
	WhatsAppNumber   string `json:"whatsapp_number"`
}
