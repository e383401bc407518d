package models

import (
	"time"

	"github.com/uptrace/bun"
)

// LedgerEntry records every balance mutation with its source, e.g.
// "mining:claim" or "game:wheel". Append-only.
type LedgerEntry struct {
	bun.BaseModel `bun:"table:ledger_entry"`
	ID            string    `bun:"id,pk" json:"id"`
	AccountID     int64     `bun:"account_id" json:"account_id"`
	Amount        int64     `bun:"amount" json:"amount"`
	Source        string    `bun:"source" json:"source"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
