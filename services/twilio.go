// services/twilio.go
package services

import (
	"context"
	"strings"
	"time"

	"aquacare-backend/config"
	"aquacare-backend/models"
	"aquacare-backend/utils"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const errTwilioNotConfigured = "Twilio credentials not configured"

// TwilioMessenger sends SMS and WhatsApp messages through the Twilio gateway.
type TwilioMessenger struct {
	client         *twilio.RestClient
	phoneNumber    string
	whatsappNumber string
	countryCode    string
	delay          time.Duration
	configured     bool
	logger         zerolog.Logger
}

func NewTwilioMessenger(cfg config.MessagingConfig, logger zerolog.Logger) *TwilioMessenger {
	return &TwilioMessenger{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		phoneNumber:    cfg.TwilioPhoneNumber,
		whatsappNumber: cfg.TwilioWhatsAppNumber,
		countryCode:    cfg.CountryCode,
		delay:          cfg.BulkDelay,
		configured:     cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "",
		logger:         logger.With().Str("component", "twilio_messenger").Logger(),
	}
}

func (t *TwilioMessenger) SendOne(ctx context.Context, msg OutboundMessage) SendResult {
	if !t.configured {
		return SendResult{Error: errTwilioNotConfigured, To: msg.To, Method: msg.Method}
	}

	to := "+" + utils.NormalizePhone(msg.To, t.countryCode)

	params := &twilioApi.CreateMessageParams{}
	params.SetBody(msg.Body)
	if msg.Method == models.MethodWhatsApp {
		params.SetTo("whatsapp:" + to)
		from := t.whatsappNumber
		if !strings.HasPrefix(from, "whatsapp:") {
			from = "whatsapp:" + from
		}
		params.SetFrom(from)
	} else {
		params.SetTo(to)
		params.SetFrom(t.phoneNumber)
	}

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		t.logger.Warn().Err(err).Str("to", to).Msg("failed to send message")
		return SendResult{Error: err.Error(), To: to, Method: msg.Method}
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	t.logger.Info().Str("to", to).Str("sid", sid).Msg("message sent")
	return SendResult{Success: true, MessageID: sid, To: to, Method: msg.Method}
}

func (t *TwilioMessenger) SendBulk(ctx context.Context, msgs []OutboundMessage) BulkResult {
	if !t.configured {
		return failAll(msgs, errTwilioNotConfigured)
	}
	return sendSequential(ctx, msgs, t.delay, t.SendOne)
}
