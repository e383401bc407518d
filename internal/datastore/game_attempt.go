package datastore

import (
	"context"

	"fortex/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableGameAttempt(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.GameAttempt)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.GameAttempt)(nil)).Index("index_game_attempt_account_id").IfNotExists().Column("account_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.GameAttempt)(nil)).Index("index_game_attempt_account_id_game_slug").IfNotExists().Unique().Column("account_id", "game_slug").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetGameAttempt(ctx context.Context, db *bun.DB, accountID int64, gameSlug string) (*models.GameAttempt, error) {
	var attempt models.GameAttempt
	err := db.NewSelect().Model(&attempt).Where("account_id = ?", accountID).Where("game_slug = ?", gameSlug).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &attempt, nil
}

func GetGameAttemptsByAccount(ctx context.Context, db *bun.DB, accountID int64) ([]*models.GameAttempt, error) {
	var attempts []*models.GameAttempt
	err := db.NewSelect().Model(&attempts).Where("account_id = ?", accountID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return attempts, nil
}

func UpsertGameAttempt(ctx context.Context, db *bun.DB, attempt *models.GameAttempt) error {
	_, err := db.NewInsert().Model(attempt).
		On("CONFLICT (account_id, game_slug) DO UPDATE").
		Set("attempts_remaining = EXCLUDED.attempts_remaining").
		Set("window_started_at = EXCLUDED.window_started_at").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}
