// services/meta.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"aquacare-backend/config"
	"aquacare-backend/models"
	"aquacare-backend/utils"

	"github.com/rs/zerolog"
)

const (
	metaAPIBase          = "https://graph.facebook.com/v18.0"
	errMetaNotConfigured = "Meta WhatsApp credentials not configured"
)

// MetaMessenger sends WhatsApp messages through the Meta Business API. Phone
// numbers go out in national format: digits only, country code prefixed, no
// leading '+'.
type MetaMessenger struct {
	httpClient    *http.Client
	accessToken   string
	phoneNumberID string
	countryCode   string
	delay         time.Duration
	apiBase       string
	logger        zerolog.Logger
}

func NewMetaMessenger(cfg config.MessagingConfig, logger zerolog.Logger) *MetaMessenger {
	return &MetaMessenger{
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		accessToken:   cfg.MetaAccessToken,
		phoneNumberID: cfg.MetaPhoneNumberID,
		countryCode:   cfg.CountryCode,
		delay:         cfg.BulkDelay,
		apiBase:       metaAPIBase,
		logger:        logger.With().Str("component", "meta_messenger").Logger(),
	}
}

type metaTextPayload struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             metaText `json:"text"`
}

type metaText struct {
	Body string `json:"body"`
}

type metaResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (m *MetaMessenger) configured() bool {
	return m.accessToken != "" && m.phoneNumberID != ""
}

func (m *MetaMessenger) SendOne(ctx context.Context, msg OutboundMessage) SendResult {
	if !m.configured() {
		return SendResult{Error: errMetaNotConfigured, To: msg.To, Method: models.MethodWhatsApp}
	}

	to := utils.NormalizePhone(msg.To, m.countryCode)

	payload, err := json.Marshal(metaTextPayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             metaText{Body: msg.Body},
	})
	if err != nil {
		return SendResult{Error: err.Error(), To: to, Method: models.MethodWhatsApp}
	}

	url := fmt.Sprintf("%s/%s/messages", m.apiBase, m.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return SendResult{Error: err.Error(), To: to, Method: models.MethodWhatsApp}
	}
	req.Header.Set("Authorization", "Bearer "+m.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		m.logger.Warn().Err(err).Str("to", to).Msg("failed to reach Meta API")
		return SendResult{Error: err.Error(), To: to, Method: models.MethodWhatsApp}
	}
	defer resp.Body.Close()

	var result metaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return SendResult{Error: err.Error(), To: to, Method: models.MethodWhatsApp}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errMsg := "Unknown error"
		if result.Error != nil && result.Error.Message != "" {
			errMsg = result.Error.Message
		}
		m.logger.Warn().Str("to", to).Str("error", errMsg).Msg("Meta API rejected message")
		return SendResult{Error: errMsg, To: to, Method: models.MethodWhatsApp}
	}

	id := ""
	if len(result.Messages) > 0 {
		id = result.Messages[0].ID
	}
	m.logger.Info().Str("to", to).Str("message_id", id).Msg("message sent")
	return SendResult{Success: true, MessageID: id, To: to, Method: models.MethodWhatsApp}
}

func (m *MetaMessenger) SendBulk(ctx context.Context, msgs []OutboundMessage) BulkResult {
	if !m.configured() {
		return failAll(msgs, errMetaNotConfigured)
	}
	return sendSequential(ctx, msgs, m.delay, m.SendOne)
}

// NewMessenger selects the provider backend from configuration.
func NewMessenger(cfg config.MessagingConfig, logger zerolog.Logger) Messenger {
	if cfg.Provider == "twilio" {
		return NewTwilioMessenger(cfg, logger)
	}
	return NewMetaMessenger(cfg, logger)
}
