package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jmehdipour/whatsapp-gateway/internal/config"
	"github.com/jmehdipour/whatsapp-gateway/internal/model"
)

const (
	defaultBaseURL = "https://api.twilio.com/2010-04-01"
	maxBodyBytes   = 16 << 10
)

// Twilio sends WhatsApp messages through Twilio's REST API. All fields are
// set at construction and never change, so one client serves concurrent
// requests; the embedded http.Client carries the per-call timeout.
type Twilio struct {
	accountSID string
	authToken  string
	from       string // whatsapp:+<E.164> sender address
	baseURL    string
	client     *http.Client
	log        *zap.Logger
}

// NewTwilio builds a client from the credential bundle loaded at startup.
// Missing credentials are accepted here; Send and CheckCredentials report
// them, which keeps /verify-config usable on a misconfigured deployment.
func NewTwilio(cfg config.TwilioConfig, log *zap.Logger) *Twilio {
	timeoutMs := cfg.TimeoutMs
	if timeoutMs <= 0 {
		timeoutMs = 15000
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Twilio{
		accountSID: strings.TrimSpace(cfg.AccountSID),
		authToken:  strings.TrimSpace(cfg.AuthToken),
		from:       whatsAppAddress(cfg.WhatsAppNumber),
		baseURL:    baseURL,
		client:     &http.Client{Timeout: time.Duration(timeoutMs) * time.Millisecond},
		log:        log,
	}
}

// twilioMessage is the subset of Twilio's message resource the gateway
// reads. NumMedia arrives as a decimal string.
type twilioMessage struct {
	SID      string `json:"sid"`
	To       string `json:"to"`
	Body     string `json:"body"`
	Status   string `json:"status"`
	NumMedia string `json:"num_media"`
}

// twilioFault is Twilio's error body for non-2xx responses.
type twilioFault struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// Send posts the message to Twilio. Exactly one outbound call; retries, if
// any, belong to the caller.
func (t *Twilio) Send(ctx context.Context, req model.SendRequest) (*model.SendResult, error) {
	if t.accountSID == "" || t.authToken == "" {
		return nil, &ConfigError{Reason: "twilio credentials are not configured"}
	}
	if t.from == "" {
		return nil, &ConfigError{Reason: "twilio whatsapp number is not configured"}
	}

	form := url.Values{}
	form.Set("To", req.To)
	form.Set("From", t.from)
	form.Set("Body", req.Body)
	if req.MediaURL != "" {
		form.Set("MediaUrl", req.MediaURL)
	}

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", t.baseURL, url.PathEscape(t.accountSID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &Error{Kind: KindUnavailable, Message: "could not build provider request", Err: err}
	}
	httpReq.SetBasicAuth(t.accountSID, t.authToken)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(httpReq)
	if err != nil {
		// err carries the request URL, and with it the account SID
		t.log.Warn("twilio request failed", zap.Error(err))
		return nil, &Error{Kind: KindUnavailable, Message: "request to messaging provider failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Kind: KindUnavailable, Message: "could not read provider response", Err: err}
	}

	if resp.StatusCode/100 != 2 {
		perr := sendError(resp.StatusCode, body)
		t.log.Warn("twilio rejected message",
			zap.Int("http_status", resp.StatusCode),
			zap.Int("code", perr.Code),
			zap.String("kind", perr.Kind.String()),
		)
		return nil, perr
	}

	var msg twilioMessage
	_ = json.Unmarshal(body, &msg) // tolerate unparseable success bodies

	res := &model.SendResult{
		SID:      msg.SID,
		To:       msg.To,
		Body:     msg.Body,
		NumMedia: numMedia(msg.NumMedia, req),
	}
	if res.To == "" {
		res.To = req.To
	}
	if res.Body == "" {
		res.Body = req.Body
	}

	t.log.Info("twilio accepted message",
		zap.String("sid", res.SID),
		zap.String("status", msg.Status),
		zap.Int("num_media", res.NumMedia),
	)

	return res, nil
}

// CheckCredentials fetches the account resource as an authenticated no-op.
// Rejected credentials yield (false, nil); transport failures are wrapped
// as a ConfigError. Nothing is sent and nothing changes on Twilio's side.
func (t *Twilio) CheckCredentials(ctx context.Context) (bool, error) {
	if t.accountSID == "" || t.authToken == "" {
		return false, nil
	}

	endpoint := fmt.Sprintf("%s/Accounts/%s.json", t.baseURL, url.PathEscape(t.accountSID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, &ConfigError{Reason: "could not build credential probe", Err: err}
	}
	httpReq.SetBasicAuth(t.accountSID, t.authToken)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(httpReq)
	if err != nil {
		t.log.Warn("twilio credential probe failed", zap.Error(err))
		return false, &ConfigError{Reason: "credential probe did not reach the provider", Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	return resp.StatusCode/100 == 2, nil
}

func sendError(httpStatus int, body []byte) *Error {
	var fault twilioFault
	_ = json.Unmarshal(body, &fault)

	msg := CleanMessage(fault.Message)
	if msg == "" {
		msg = strings.ToLower(http.StatusText(httpStatus))
	}
	if msg == "" {
		msg = "provider rejected the message"
	}

	return &Error{Kind: classify(fault.Code, httpStatus), Code: fault.Code, Message: msg}
}

// classify maps Twilio error codes, then HTTP status classes, onto the
// gateway's sub-kinds. Unknown failures stay generic rather than guessing.
func classify(code, httpStatus int) ErrorKind {
	switch code {
	case 20003: // authenticate
		return KindAuthentication
	case 20429, 63018: // API and WhatsApp channel rate limits
		return KindRateLimited
	case 21211, 21408, 21608, 21610, 21612, 21614, 63003:
		// unroutable, unverified or opted-out destination numbers
		return KindInvalidRecipient
	}

	switch httpStatus {
	case http.StatusUnauthorized:
		return KindAuthentication
	case http.StatusTooManyRequests:
		return KindRateLimited
	}

	return KindUnavailable
}

// numMedia prefers the provider-reported count and falls back to what the
// request carried when the response omits it.
func numMedia(raw string, req model.SendRequest) int {
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n >= 0 {
		return n
	}
	return req.MediaCount()
}

// whatsAppAddress prefixes a sender number with the whatsapp: scheme
// unless it already carries one.
func whatsAppAddress(number string) string {
	n := strings.TrimSpace(number)
	if n == "" {
		return ""
	}
	if strings.HasPrefix(n, "whatsapp:") {
		return n
	}
	return "whatsapp:" + n
}
