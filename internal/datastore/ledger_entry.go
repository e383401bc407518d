package datastore

import (
	"context"

	"fortex/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableLedgerEntry(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.LedgerEntry)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.LedgerEntry)(nil)).Index("index_ledger_entry_account_id").IfNotExists().Column("account_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertLedgerEntry(ctx context.Context, db *bun.DB, entry *models.LedgerEntry) error {
	_, err := db.NewInsert().Model(entry).Exec(ctx)
	return err
}

func GetLedgerEntriesByAccount(ctx context.Context, db *bun.DB, accountID int64, limit, offset int) ([]*models.LedgerEntry, error) {
	var entries []*models.LedgerEntry
	err := db.NewSelect().Model(&entries).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
