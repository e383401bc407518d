package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestAdvanceConsumesAttempts(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	window := 12 * time.Hour

	ga := NewGameAttempt(1, GameDice, 3, now)

	for i := 0; i < 3; i++ {
		ok, _ := ga.Advance(now.Add(time.Duration(i)*time.Minute), 3, window)
		require.True(t, ok, "attempt %d should be allowed", i+1)
	}
	assert.Equal(t, 0, ga.AttemptsRemaining)

	ok, resetsAt := ga.Advance(now.Add(5*time.Minute), 3, window)
	assert.False(t, ok)
	// the window anchors at the depleting attempt, not the first one
	assert.Equal(t, now.Add(2*time.Minute).Add(window), resetsAt)
}

func TestAdvanceRefillsAfterWindow(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	window := 12 * time.Hour

	ga := NewGameAttempt(1, GameWheel, 3, now)
	for i := 0; i < 3; i++ {
		ok, _ := ga.Advance(now, 3, window)
		require.True(t, ok)
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"one ms before reset", now.Add(window - time.Millisecond), false},
		{"exactly at reset", now.Add(window), true},
		{"one ms after reset", now.Add(window + time.Millisecond), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := *ga
			ok, _ := probe.Advance(tt.at, 3, window)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestAdvanceRefillRestoresFullBudget(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	window := 12 * time.Hour

	ga := NewGameAttempt(7, GameCoinFlip, 3, now)
	for i := 0; i < 3; i++ {
		ga.Advance(now, 3, window)
	}

	later := now.Add(window + time.Hour)
	ok, _ := ga.Advance(later, 3, window)
	require.True(t, ok)
	assert.Equal(t, 2, ga.AttemptsRemaining)
	assert.Equal(t, later, ga.WindowStartedAt)
}

func TestAdvanceNeverOverspends(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		window := 12 * time.Hour
		maxAttempts := rapid.IntRange(1, 5).Draw(t, "maxAttempts")
		start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

		ga := NewGameAttempt(1, GameClicker, maxAttempts, start)

		now := start
		granted := 0
		windowStart := start
		for i := 0; i < 50; i++ {
			step := time.Duration(rapid.Int64Range(0, int64(2*time.Hour)).Draw(t, "step"))
			now = now.Add(step)

			ok, _ := ga.Advance(now, maxAttempts, window)
			if now.Sub(windowStart) >= window {
				granted = 0
				windowStart = now
			}
			if ok {
				granted++
				if ga.AttemptsRemaining == 0 {
					windowStart = now
				}
			}
			if granted > maxAttempts {
				t.Fatalf("granted %d attempts inside one window, budget is %d", granted, maxAttempts)
			}
			if ga.AttemptsRemaining < 0 {
				t.Fatalf("attempts remaining went negative: %d", ga.AttemptsRemaining)
			}
		}
	})
}
