package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aquacare-backend/config"
	"aquacare-backend/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outbound(n int) []OutboundMessage {
	msgs := make([]OutboundMessage, 0, n)
	for i := 0; i < n; i++ {
		msgs = append(msgs, OutboundMessage{
			To:           "987654321" + string(rune('0'+i)),
			Body:         "hello",
			Method:       models.MethodWhatsApp,
			CustomerName: "Customer",
		})
	}
	return msgs
}

func TestSendSequentialPartitionsResults(t *testing.T) {
	msgs := outbound(4)
	// Fail every other message
	i := 0
	send := func(ctx context.Context, msg OutboundMessage) SendResult {
		i++
		if i%2 == 0 {
			return SendResult{Error: "rejected number", To: msg.To, Method: msg.Method}
		}
		return SendResult{Success: true, MessageID: "SM123", To: msg.To, Method: msg.Method}
	}

	out := sendSequential(context.Background(), msgs, 0, send)

	assert.Equal(t, 4, out.TotalMessages)
	assert.Equal(t, 2, out.SuccessCount)
	assert.Equal(t, 2, out.ErrorCount)
	assert.Len(t, out.Results, 2)
	assert.Len(t, out.Errors, 2)
	assert.Equal(t, len(msgs), len(out.Results)+len(out.Errors))
}

func TestSendSequentialDelaysBetweenSendsButNotAfterLast(t *testing.T) {
	msgs := outbound(3)
	var calls []time.Time
	send := func(ctx context.Context, msg OutboundMessage) SendResult {
		calls = append(calls, time.Now())
		return SendResult{Success: true, To: msg.To, Method: msg.Method}
	}

	delay := 20 * time.Millisecond
	start := time.Now()
	sendSequential(context.Background(), msgs, delay, send)
	elapsed := time.Since(start)

	require.Len(t, calls, 3)
	// Two gaps for three messages, none after the last
	assert.GreaterOrEqual(t, elapsed, 2*delay)
	assert.Less(t, elapsed, 4*delay)
}

func TestFailAllMarksEveryMessage(t *testing.T) {
	msgs := outbound(5)

	out := failAll(msgs, "Twilio credentials not configured")

	assert.False(t, out.Success)
	assert.Equal(t, 5, out.TotalMessages)
	assert.Equal(t, 0, out.SuccessCount)
	assert.Equal(t, 5, out.ErrorCount)
	assert.Empty(t, out.Results)
	require.Len(t, out.Errors, 5)
	for _, e := range out.Errors {
		assert.Equal(t, "Twilio credentials not configured", e.Error)
	}
}

func TestTwilioSendBulkUnconfigured(t *testing.T) {
	m := NewTwilioMessenger(config.MessagingConfig{CountryCode: "91"}, zerolog.Nop())

	out := m.SendBulk(context.Background(), outbound(3))

	assert.Equal(t, 0, out.SuccessCount)
	assert.Equal(t, 3, out.ErrorCount)
	for _, e := range out.Errors {
		assert.Equal(t, "Twilio credentials not configured", e.Error)
	}
}

func TestMetaSendBulkUnconfigured(t *testing.T) {
	m := NewMetaMessenger(config.MessagingConfig{CountryCode: "91"}, zerolog.Nop())

	out := m.SendBulk(context.Background(), outbound(2))

	assert.Equal(t, 0, out.SuccessCount)
	assert.Equal(t, 2, out.ErrorCount)
	for _, e := range out.Errors {
		assert.Equal(t, "Meta WhatsApp credentials not configured", e.Error)
	}
}

func TestMetaSendOne(t *testing.T) {
	var gotPath, gotAuth, gotTo string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		var payload metaTextPayload
		require.NoError(t, jsonDecode(r, &payload))
		gotTo = payload.To
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"messages":[{"id":"wamid.123"}]}`))
	}))
	defer server.Close()

	m := NewMetaMessenger(config.MessagingConfig{
		MetaAccessToken:   "token",
		MetaPhoneNumberID: "555",
		CountryCode:       "91",
	}, zerolog.Nop())
	m.apiBase = server.URL

	result := m.SendOne(context.Background(), OutboundMessage{
		To:     "(98765) 432-10",
		Body:   "hello",
		Method: models.MethodWhatsApp,
	})

	assert.True(t, result.Success)
	assert.Equal(t, "wamid.123", result.MessageID)
	assert.Equal(t, "/555/messages", gotPath)
	assert.Equal(t, "Bearer token", gotAuth)
	assert.Equal(t, "919876543210", gotTo)
}

func TestMetaSendOneProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid recipient"}}`))
	}))
	defer server.Close()

	m := NewMetaMessenger(config.MessagingConfig{
		MetaAccessToken:   "token",
		MetaPhoneNumberID: "555",
		CountryCode:       "91",
	}, zerolog.Nop())
	m.apiBase = server.URL

	result := m.SendOne(context.Background(), OutboundMessage{To: "12345", Body: "x"})

	assert.False(t, result.Success)
	assert.Equal(t, "Invalid recipient", result.Error)
}

func jsonDecode(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
