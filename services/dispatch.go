// services/dispatch.go
package services

import (
	"context"
	"time"

	"aquacare-backend/models"

	"github.com/google/uuid"
)

// OutboundMessage is one rendered message addressed to a recipient.
type OutboundMessage struct {
	To           string
	Body         string
	Method       models.MessageMethod
	CustomerName string
	CustomerID   *uuid.UUID
}

// SendResult is the outcome of a single dispatch attempt. Provider failures
// are reported here as values, never as Go errors, so one bad recipient can
// never abort a batch.
type SendResult struct {
	Success   bool
	MessageID string
	Error     string
	To        string
	Method    models.MessageMethod
}

type RecipientResult struct {
	CustomerID   *uuid.UUID           `json:"customerId,omitempty"`
	CustomerName string               `json:"customerName"`
	To           string               `json:"to"`
	Method       models.MessageMethod `json:"method"`
	MessageID    string               `json:"messageId,omitempty"`
	Error        string               `json:"error,omitempty"`
	Success      bool                 `json:"success"`
}

// BulkResult partitions a batch into per-recipient successes and failures.
// Every input message lands in exactly one of the two lists.
type BulkResult struct {
	Success       bool              `json:"success"`
	TotalMessages int               `json:"totalMessages"`
	SuccessCount  int               `json:"successCount"`
	ErrorCount    int               `json:"errorCount"`
	Results       []RecipientResult `json:"results"`
	Errors        []RecipientResult `json:"errors"`
}

// Messenger is the notification-transport port. Implementations serialize
// bulk sends with a fixed inter-message delay and never retry.
type Messenger interface {
	SendOne(ctx context.Context, msg OutboundMessage) SendResult
	SendBulk(ctx context.Context, msgs []OutboundMessage) BulkResult
}

// sendSequential dispatches messages one at a time, pausing delay between
// sends to respect provider rate limits. The last message is not followed by
// a delay.
func sendSequential(ctx context.Context, msgs []OutboundMessage, delay time.Duration,
	send func(context.Context, OutboundMessage) SendResult) BulkResult {

	out := BulkResult{Success: true, TotalMessages: len(msgs)}
	for i, msg := range msgs {
		r := send(ctx, msg)
		entry := RecipientResult{
			CustomerID:   msg.CustomerID,
			CustomerName: msg.CustomerName,
			To:           r.To,
			Method:       r.Method,
			MessageID:    r.MessageID,
			Error:        r.Error,
			Success:      r.Success,
		}
		if r.Success {
			out.Results = append(out.Results, entry)
		} else {
			out.Errors = append(out.Errors, entry)
		}
		if i < len(msgs)-1 {
			time.Sleep(delay)
		}
	}
	out.SuccessCount = len(out.Results)
	out.ErrorCount = len(out.Errors)
	return out
}

// failAll marks every message in the batch failed with the same transport
// level error, used when the provider is unreachable before any send.
func failAll(msgs []OutboundMessage, errMsg string) BulkResult {
	out := BulkResult{Success: false, TotalMessages: len(msgs)}
	for _, msg := range msgs {
		out.Errors = append(out.Errors, RecipientResult{
			CustomerID:   msg.CustomerID,
			CustomerName: msg.CustomerName,
			To:           msg.To,
			Method:       msg.Method,
			Error:        errMsg,
			Success:      false,
		})
	}
	out.ErrorCount = len(out.Errors)
	return out
}
