// services/rules.go
package services

import (
	"time"

	"aquacare-backend/models"
	"aquacare-backend/utils"
)

type RuleType string

const (
	RuleBirthday       RuleType = "birthday"
	RuleFilterReminder RuleType = "filter_reminder"
	RuleGuarantee      RuleType = "guarantee"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// RuleMatch tags a customer that satisfies a rule with its derived fields.
type RuleMatch struct {
	Customer    models.Customer
	Rule        RuleType
	DaysOverdue int
	Priority    Priority
}

// EvaluateBirthdays returns customers whose birth date falls on today's month
// and day, year ignored. Lookahead offsets are the caller's concern: shift
// "today" before calling.
func EvaluateBirthdays(today time.Time, customers []models.Customer) []RuleMatch {
	var matches []RuleMatch
	for _, c := range customers {
		if c.BirthDate == nil {
			continue
		}
		if utils.SameMonthDay(*c.BirthDate, today) {
			matches = append(matches, RuleMatch{Customer: c, Rule: RuleBirthday})
		}
	}
	return matches
}

// EvaluateFilterDue returns customers whose next service date is today or in
// the past, with days overdue and a priority bucket derived from it.
func EvaluateFilterDue(today time.Time, customers []models.Customer) []RuleMatch {
	var matches []RuleMatch
	for _, c := range customers {
		if c.NextService == nil {
			continue
		}
		overdue := utils.DaysBetween(*c.NextService, today)
		if overdue < 0 {
			continue
		}
		matches = append(matches, RuleMatch{
			Customer:    c,
			Rule:        RuleFilterReminder,
			DaysOverdue: overdue,
			Priority:    ClassifyOverdue(overdue),
		})
	}
	return matches
}

// ClassifyOverdue buckets days overdue into a priority. Thresholds are
// exclusive: exactly 3 days is still Low, exactly 10 still Medium.
func ClassifyOverdue(daysOverdue int) Priority {
	switch {
	case daysOverdue > 10:
		return PriorityHigh
	case daysOverdue > 3:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// EvaluateGuaranteeExpiry returns customers whose guarantee expires exactly
// seven days from today. This is an exact-date match, not a window; expiries
// six or eight days out do not fire.
func EvaluateGuaranteeExpiry(today time.Time, customers []models.Customer) []RuleMatch {
	target := today.AddDate(0, 0, 7)
	var matches []RuleMatch
	for _, c := range customers {
		if c.GuaranteeExpiry == nil {
			continue
		}
		if sameDate(*c.GuaranteeExpiry, target) {
			matches = append(matches, RuleMatch{Customer: c, Rule: RuleGuarantee})
		}
	}
	return matches
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
