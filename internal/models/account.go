package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	MembershipFree     = "free"
	MembershipVIP      = "vip"
	MembershipSilver   = "silver"
	MembershipGold     = "gold"
	MembershipPlatinum = "platinum"
)

// ordinal order, lowest first
var membershipRank = map[string]int{
	MembershipFree:     0,
	MembershipVIP:      1,
	MembershipSilver:   2,
	MembershipGold:     3,
	MembershipPlatinum: 4,
}

func ValidMembership(tier string) bool {
	_, ok := membershipRank[tier]
	return ok
}

// CanChangeMembership enforces the upgrade-only rule. Dropping back to
// free is the cancel path and is always allowed; every other target must
// rank strictly above the current tier.
func CanChangeMembership(current, target string) bool {
	if !ValidMembership(target) {
		return false
	}
	if target == MembershipFree {
		return true
	}
	return membershipRank[target] > membershipRank[current]
}

type Account struct {
	bun.BaseModel `bun:"table:account"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	IdentityKey   string     `bun:"identity_key,unique" json:"identity_key"`
	Username      string     `bun:"username" json:"username"`
	Balance       int64      `bun:"balance,default:0" json:"balance"`
	Membership    string     `bun:"membership,default:'free'" json:"membership"`
	LastClaimAt   *time.Time `bun:"last_claim_at" json:"last_claim_at"`
	NextClaimAt   *time.Time `bun:"next_claim_at" json:"next_claim_at"`
	CreatedAt     time.Time  `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time  `bun:"updated_at" json:"updated_at"`

	IsNewAccount bool `bun:"-" json:"is_new_account"`
}

// CanClaim reports whether the mining cooldown has elapsed. A never-claimed
// account behaves exactly like an eligible one.
func (a *Account) CanClaim(now time.Time) bool {
	return a.NextClaimAt == nil || !now.Before(*a.NextClaimAt)
}

// SecondsUntil rounds up, so a caller rendering a countdown never shows 0
// while the deadline is still in the future.
func SecondsUntil(deadline, now time.Time) int64 {
	d := deadline.Sub(now)
	if d <= 0 {
		return 0
	}
	return int64((d + time.Second - 1) / time.Second)
}

// IdentityFromAuth only use in middleware and the verify flow
type IdentityFromAuth struct {
	IdentityKey string `json:"identity_key"`
	Username    string `json:"username"`
}

type VerifyProof struct {
	NullifierHash     string `json:"nullifier_hash"`
	MerkleRoot        string `json:"merkle_root"`
	Proof             string `json:"proof"`
	VerificationLevel string `json:"verification_level"`
}
