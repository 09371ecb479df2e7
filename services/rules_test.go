package services

import (
	"testing"
	"time"

	"aquacare-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestEvaluateBirthdaysIgnoresYear(t *testing.T) {
	customers := []models.Customer{
		{Name: "Asha", BirthDate: datePtr(2024, time.March, 15)},
		{Name: "Ravi", BirthDate: datePtr(1987, time.March, 15)},
		{Name: "Meera", BirthDate: datePtr(1990, time.March, 16)},
		{Name: "NoBirthday"},
	}

	matches := EvaluateBirthdays(date(2026, time.March, 15), customers)

	require.Len(t, matches, 2)
	assert.Equal(t, "Asha", matches[0].Customer.Name)
	assert.Equal(t, "Ravi", matches[1].Customer.Name)
	for _, m := range matches {
		assert.Equal(t, RuleBirthday, m.Rule)
	}
}

func TestEvaluateFilterDue(t *testing.T) {
	today := date(2026, time.June, 20)
	customers := []models.Customer{
		{Name: "DueToday", NextService: datePtr(2026, time.June, 20)},
		{Name: "Overdue5", NextService: datePtr(2026, time.June, 15)},
		{Name: "NotDue", NextService: datePtr(2026, time.June, 21)},
		{Name: "NoDate"},
	}

	matches := EvaluateFilterDue(today, customers)

	require.Len(t, matches, 2)
	assert.Equal(t, "DueToday", matches[0].Customer.Name)
	assert.Equal(t, 0, matches[0].DaysOverdue)
	assert.Equal(t, PriorityLow, matches[0].Priority)
	assert.Equal(t, "Overdue5", matches[1].Customer.Name)
	assert.Equal(t, 5, matches[1].DaysOverdue)
	assert.Equal(t, PriorityMedium, matches[1].Priority)
}

func TestClassifyOverdueThresholds(t *testing.T) {
	cases := []struct {
		daysOverdue int
		want        Priority
	}{
		{0, PriorityLow},
		{3, PriorityLow},    // exactly 3 stays Low
		{4, PriorityMedium},
		{10, PriorityMedium}, // exactly 10 stays Medium
		{11, PriorityHigh},
		{30, PriorityHigh},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyOverdue(tc.daysOverdue), "daysOverdue=%d", tc.daysOverdue)
	}
}

func TestEvaluateGuaranteeExpiryExactDate(t *testing.T) {
	today := date(2026, time.August, 1)
	customers := []models.Customer{
		{Name: "Exactly7", GuaranteeExpiry: datePtr(2026, time.August, 8)},
		{Name: "SixDays", GuaranteeExpiry: datePtr(2026, time.August, 7)},
		{Name: "EightDays", GuaranteeExpiry: datePtr(2026, time.August, 9)},
		{Name: "NoExpiry"},
	}

	matches := EvaluateGuaranteeExpiry(today, customers)

	require.Len(t, matches, 1)
	assert.Equal(t, "Exactly7", matches[0].Customer.Name)
	assert.Equal(t, RuleGuarantee, matches[0].Rule)
}
