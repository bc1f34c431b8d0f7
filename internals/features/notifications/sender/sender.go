// file: internals/features/notifications/sender/sender.go
package sender

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"netbill_backend/internals/configs"
)

var ErrChannelDisabled = errors.New("delivery channel is not configured")

// Sender delivers one message to one recipient. Implementations return the
// raw provider response body so the caller can log it for support lookups.
type Sender interface {
	Send(ctx context.Context, phone, message string) (providerResponse []byte, err error)
}

var httpClient = &http.Client{Timeout: 10 * time.Second}

/* ======================= SMS ======================= */

// smsSender posts to a generic Bangladeshi bulk SMS gateway
// (api_key + msisdn + text form understood by BulkSMSBD-style providers).
type smsSender struct{}

func NewSMSSender() Sender { return &smsSender{} }

func (s *smsSender) Send(ctx context.Context, phone, message string) ([]byte, error) {
	if configs.SMSGatewayURL == "" {
		return nil, ErrChannelDisabled
	}

	body, err := sonic.Marshal(map[string]string{
		"api_key": configs.SMSGatewayKey,
		"msisdn":  phone,
		"text":    message,
	})
	if err != nil {
		return nil, err
	}
	return post(ctx, configs.SMSGatewayURL, "", body)
}

/* ======================= WHATSAPP ======================= */

// whatsappSender posts to a WhatsApp Business API relay. The key travels in
// the Authorization header, unlike the SMS gateway.
type whatsappSender struct{}

func NewWhatsAppSender() Sender { return &whatsappSender{} }

func (w *whatsappSender) Send(ctx context.Context, phone, message string) ([]byte, error) {
	if configs.WhatsAppAPIURL == "" {
		return nil, ErrChannelDisabled
	}

	body, err := sonic.Marshal(map[string]string{
		"to":   phone,
		"body": message,
	})
	if err != nil {
		return nil, err
	}
	return post(ctx, configs.WhatsAppAPIURL, "Bearer "+configs.WhatsAppAPIKey, body)
}

/* ======================= SHARED ======================= */

func post(ctx context.Context, url, authorization string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
	if resp.StatusCode >= 300 {
		return respBody, fmt.Errorf("gateway returned %d", resp.StatusCode)
	}
	return respBody, nil
}
