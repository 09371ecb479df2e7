package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionScheduledToSent(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)
	m := ScheduledMessage{ID: uuid.New(), Status: MessageScheduled}

	err := m.Transition(MessageSent, now)

	require.NoError(t, err)
	assert.Equal(t, MessageSent, m.Status)
	require.NotNil(t, m.SentAt)
	assert.Equal(t, now, *m.SentAt)
}

func TestTransitionScheduledToFailed(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)
	m := ScheduledMessage{ID: uuid.New(), Status: MessageScheduled}

	err := m.Transition(MessageFailed, now)

	require.NoError(t, err)
	assert.Equal(t, MessageFailed, m.Status)
	assert.Nil(t, m.SentAt)
}

func TestTransitionRejectsTerminalStates(t *testing.T) {
	now := time.Now()
	for _, terminal := range []MessageStatus{MessageSent, MessageFailed} {
		m := ScheduledMessage{ID: uuid.New(), Status: terminal}

		err := m.Transition(MessageSent, now)

		assert.Error(t, err, "status %s should be terminal", terminal)
		assert.Equal(t, terminal, m.Status)
	}
}

func TestTransitionRejectsScheduledTarget(t *testing.T) {
	m := ScheduledMessage{ID: uuid.New(), Status: MessageScheduled}

	err := m.Transition(MessageScheduled, time.Now())

	assert.Error(t, err)
	assert.Equal(t, MessageScheduled, m.Status)
}
