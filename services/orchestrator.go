// services/orchestrator.go
package services

import (
	"context"
	"fmt"
	"time"

	"aquacare-backend/models"
	"aquacare-backend/utils"

	"github.com/rs/zerolog"
)

// RunSummary is the JSON result of one orchestrator run.
type RunSummary struct {
	Success           bool     `json:"success"`
	Date              string   `json:"date"`
	TotalMessagesSent int      `json:"totalMessagesSent"`
	TotalErrors       int      `json:"totalErrors"`
	Results           []string `json:"results"`
}

// Orchestrator runs the three automatic notification rules: birthday wishes,
// filter change reminders and guarantee expiry reminders. Each run processes
// all enabled rules once; a failure inside one rule is recorded as a result
// note and does not stop the others.
//
// Note: without the opt-in dedup guard, two runs on the same day will send
// the same messages twice. That matches the observed behavior of the system
// this replaces.
type Orchestrator struct {
	store     Store
	messenger Messenger
	dedup     DedupGuard
	loc       *time.Location
	logger    zerolog.Logger
	now       func() time.Time
}

func NewOrchestrator(store Store, messenger Messenger, loc *time.Location, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		store:     store,
		messenger: messenger,
		loc:       loc,
		logger:    logger.With().Str("component", "orchestrator").Logger(),
		now:       time.Now,
	}
}

// WithDedup enables the same-day duplicate-send guard.
func (o *Orchestrator) WithDedup(guard DedupGuard) *Orchestrator {
	o.dedup = guard
	return o
}

// WithClock overrides the time source.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// Run executes all enabled rules and returns the aggregated summary.
func (o *Orchestrator) Run(ctx context.Context) RunSummary {
	now := o.now().In(o.loc)
	today := utils.BeginningOfDay(now)
	summary := RunSummary{Success: true, Date: today.Format("2006-01-02")}

	o.logger.Info().Str("date", summary.Date).Msg("starting automated messaging run")

	if err := o.runBirthdayRule(ctx, now, today, &summary); err != nil {
		summary.Results = append(summary.Results, fmt.Sprintf("Birthday messaging error: %v", err))
	}
	if err := o.runFilterRule(ctx, now, today, &summary); err != nil {
		summary.Results = append(summary.Results, fmt.Sprintf("Filter reminder error: %v", err))
	}
	if err := o.runGuaranteeRule(ctx, now, today, &summary); err != nil {
		summary.Results = append(summary.Results, fmt.Sprintf("Guarantee reminder error: %v", err))
	}

	o.logger.Info().
		Int("sent", summary.TotalMessagesSent).
		Int("errors", summary.TotalErrors).
		Msg("automated messaging run completed")
	return summary
}

func (o *Orchestrator) runBirthdayRule(ctx context.Context, now, today time.Time, summary *RunSummary) error {
	setting, err := o.store.Setting(ctx, models.SettingBirthday)
	if err != nil {
		return err
	}
	if setting != nil && !setting.Enabled {
		return nil
	}

	// daysBefore shifts the comparison date; the evaluator itself has no
	// lookahead logic.
	target := today
	if setting != nil && setting.Configuration.DaysBefore > 0 {
		target = today.AddDate(0, 0, setting.Configuration.DaysBefore)
	}

	customers, err := o.store.CustomersWithBirthDate(ctx)
	if err != nil {
		return err
	}
	matches := EvaluateBirthdays(target, customers)
	if len(matches) == 0 {
		return nil
	}

	template, err := o.store.ActiveTemplate(ctx, models.MessageBirthday)
	if err != nil {
		return err
	}
	if template == nil {
		summary.Results = append(summary.Results, "No active birthday template found, skipping")
		return nil
	}

	o.dispatchRule(ctx, now, RuleBirthday, matches, template, summary,
		"Birthday message sent to %s", "Failed to send birthday message to %s: %s")
	return nil
}

func (o *Orchestrator) runFilterRule(ctx context.Context, now, today time.Time, summary *RunSummary) error {
	setting, err := o.store.Setting(ctx, models.SettingFilter)
	if err != nil {
		return err
	}
	if setting != nil && !setting.Enabled {
		return nil
	}

	customers, err := o.store.CustomersWithServiceDue(ctx, today)
	if err != nil {
		return err
	}
	matches := EvaluateFilterDue(today, customers)
	if len(matches) == 0 {
		return nil
	}

	template, err := o.store.ActiveTemplate(ctx, models.MessageFilterReminder)
	if err != nil {
		return err
	}
	if template == nil {
		summary.Results = append(summary.Results, "No active filter reminder template found, skipping")
		return nil
	}

	o.dispatchRule(ctx, now, RuleFilterReminder, matches, template, summary,
		"Filter reminder sent to %s", "Failed to send filter reminder to %s: %s")
	return nil
}

func (o *Orchestrator) runGuaranteeRule(ctx context.Context, now, today time.Time, summary *RunSummary) error {
	setting, err := o.store.Setting(ctx, models.SettingGuarantee)
	if err != nil {
		return err
	}
	if setting != nil && !setting.Enabled {
		return nil
	}

	customers, err := o.store.CustomersWithGuaranteeExpiry(ctx, today.AddDate(0, 0, 7))
	if err != nil {
		return err
	}
	matches := EvaluateGuaranteeExpiry(today, customers)
	if len(matches) == 0 {
		return nil
	}

	template, err := o.store.ActiveTemplate(ctx, models.MessageGuarantee)
	if err != nil {
		return err
	}
	if template == nil {
		summary.Results = append(summary.Results, "No active guarantee template found, skipping")
		return nil
	}

	o.dispatchRule(ctx, now, RuleGuarantee, matches, template, summary,
		"Guarantee reminder sent to %s", "Failed to send guarantee reminder to %s: %s")
	return nil
}

// dispatchRule personalizes, sends and persists one message per match. A row
// is written whatever the dispatch outcome.
func (o *Orchestrator) dispatchRule(ctx context.Context, now time.Time, rule RuleType,
	matches []RuleMatch, template *models.MessageTemplate, summary *RunSummary,
	sentFmt, failFmt string) {

	date := now.Format("2006-01-02")
	for _, m := range matches {
		customer := m.Customer
		if o.dedup != nil && !o.dedup.Claim(ctx, customer.ID, rule, date) {
			o.logger.Info().
				Str("customer", customer.Name).
				Str("rule", string(rule)).
				Msg("duplicate send suppressed")
			continue
		}

		body := Personalize(template.Content, customer)
		result := o.messenger.SendOne(ctx, OutboundMessage{
			To:           customer.Phone,
			Body:         body,
			Method:       models.MethodWhatsApp,
			CustomerName: customer.Name,
			CustomerID:   &customer.ID,
		})

		row := models.ScheduledMessage{
			CustomerID:     &customer.ID,
			TemplateID:     &template.ID,
			RecipientName:  customer.Name,
			RecipientPhone: customer.Phone,
			MessageType:    template.Type,
			Content:        body,
			Method:         models.MethodWhatsApp,
			ScheduledFor:   now,
			Status:         models.MessageScheduled,
		}
		if result.Success {
			_ = row.Transition(models.MessageSent, now)
			summary.TotalMessagesSent++
			summary.Results = append(summary.Results, fmt.Sprintf(sentFmt, customer.Name))
		} else {
			_ = row.Transition(models.MessageFailed, now)
			row.ErrorMessage = result.Error
			summary.TotalErrors++
			summary.Results = append(summary.Results, fmt.Sprintf(failFmt, customer.Name, result.Error))
		}

		if err := o.store.CreateScheduledMessage(ctx, &row); err != nil {
			o.logger.Error().Err(err).
				Str("customer", customer.Name).
				Msg("failed to persist message record")
		}
	}
}
