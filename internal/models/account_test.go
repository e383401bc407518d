package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanChangeMembership(t *testing.T) {
	tests := []struct {
		current string
		target  string
		want    bool
	}{
		{MembershipFree, MembershipVIP, true},
		{MembershipFree, MembershipPlatinum, true},
		{MembershipVIP, MembershipSilver, true},
		{MembershipGold, MembershipPlatinum, true},
		{MembershipGold, MembershipVIP, false},
		{MembershipPlatinum, MembershipGold, false},
		{MembershipVIP, MembershipVIP, false},
		// dropping back to free is the cancel path
		{MembershipGold, MembershipFree, true},
		{MembershipFree, MembershipFree, true},
		{MembershipGold, "diamond", false},
		{MembershipGold, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.current+"->"+tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, CanChangeMembership(tt.current, tt.target))
		})
	}
}

func TestCanClaim(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	fresh := &Account{}
	assert.True(t, fresh.CanClaim(now), "never-claimed account is always eligible")

	future := now.Add(time.Hour)
	onCooldown := &Account{NextClaimAt: &future}
	assert.False(t, onCooldown.CanClaim(now))

	elapsed := &Account{NextClaimAt: &now}
	assert.True(t, elapsed.CanClaim(now), "deadline itself counts as eligible")

	past := now.Add(-time.Second)
	ready := &Account{NextClaimAt: &past}
	assert.True(t, ready.CanClaim(now))
}

func TestSecondsUntil(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(0), SecondsUntil(now, now))
	assert.Equal(t, int64(0), SecondsUntil(now.Add(-time.Minute), now))
	assert.Equal(t, int64(60), SecondsUntil(now.Add(time.Minute), now))
	// partial seconds round up so a countdown never renders 0 early
	assert.Equal(t, int64(1), SecondsUntil(now.Add(time.Millisecond), now))
	assert.Equal(t, int64(2), SecondsUntil(now.Add(time.Second+time.Millisecond), now))
}
