package datastore

import (
	"context"
	"database/sql"
	"time"

	"fortex/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableAccount(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Account)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Account)(nil)).Index("index_account_identity_key").IfNotExists().Unique().Column("identity_key").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Account)(nil)).Index("index_account_membership").IfNotExists().Column("membership").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindAccountByID(ctx context.Context, db *bun.DB, accountID int64) (*models.Account, error) {
	var account models.Account
	err := db.NewSelect().Model(&account).Where("id = ?", accountID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func FindAccountByIdentityKey(ctx context.Context, db *bun.DB, identityKey string) (*models.Account, error) {
	var account models.Account
	err := db.NewSelect().Model(&account).Where("identity_key = ?", identityKey).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// UpsertAccount binds an identity key to exactly one row even when two
// first-time verifications race: the unique index on identity_key makes the
// insert-or-update a single atomic statement and both callers get the
// surviving row back.
func UpsertAccount(ctx context.Context, db *bun.DB, account *models.Account) (*models.Account, error) {
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	_, err := db.NewInsert().Model(account).
		On("CONFLICT (identity_key) DO UPDATE").
		Set("username = EXCLUDED.username").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	account.IsNewAccount = account.CreatedAt.Equal(account.UpdatedAt)
	return account, nil
}

// ClaimBalance is the cooldown compare-and-swap: the eligibility check and
// the mutation are one UPDATE, so of N concurrent claims only one can match
// the WHERE clause before next_claim_at moves into the future. Returns
// sql.ErrNoRows when the account is still cooling down.
func ClaimBalance(ctx context.Context, db *bun.DB, accountID int64, amount int64, now time.Time, cooldown time.Duration) (*models.Account, error) {
	account := new(models.Account)
	next := now.Add(cooldown)

	res, err := db.NewUpdate().Model(account).
		Set("balance = balance + ?", amount).
		Set("last_claim_at = ?", now).
		Set("next_claim_at = ?", next).
		Set("updated_at = ?", now).
		Where("id = ?", accountID).
		Where("next_claim_at IS NULL OR next_claim_at <= ?", now).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, sql.ErrNoRows
	}

	return account, nil
}

// AddBalance is the cooldown-free increment used by game rewards. The
// arithmetic stays SQL-side so concurrent adds never lose an update.
func AddBalance(ctx context.Context, db *bun.DB, accountID int64, amount int64) (*models.Account, error) {
	account := new(models.Account)

	res, err := db.NewUpdate().Model(account).
		Set("balance = balance + ?", amount).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", accountID).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, sql.ErrNoRows
	}

	return account, nil
}

// UpdateMembership swaps the tier only if the row still carries the tier the
// caller validated against, so two racing upgrades cannot leapfrog the
// ordering check. Returns sql.ErrNoRows on a lost race or missing account.
func UpdateMembership(ctx context.Context, db *bun.DB, accountID int64, currentTier, targetTier string) (*models.Account, error) {
	account := new(models.Account)

	res, err := db.NewUpdate().Model(account).
		Set("membership = ?", targetTier).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", accountID).
		Where("membership = ?", currentTier).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, sql.ErrNoRows
	}

	return account, nil
}

func CountAccounts(ctx context.Context, db *bun.DB) (int, error) {
	count, err := db.NewSelect().Model((*models.Account)(nil)).Count(ctx)
	if err != nil {
		return 0, err
	}

	return count, nil
}
