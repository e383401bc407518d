package datastore

import (
	"context"

	"fortex/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableGame(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Game)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Game)(nil)).Index("index_game_slug").IfNotExists().Unique().Column("slug").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func SeedGames(ctx context.Context, db *bun.DB) error {
	games := make([]*models.Game, 0, len(models.Games))
	for i := range models.Games {
		game := models.Games[i]
		games = append(games, &game)
	}

	_, err := db.NewInsert().Model(&games).On("CONFLICT (slug) DO NOTHING").Exec(ctx)
	return err
}

func GetGames(ctx context.Context, db *bun.DB) ([]*models.Game, error) {
	var games []*models.Game
	err := db.NewSelect().Model(&games).Where("enabled = true").Order("priority ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return games, nil
}

func GetGameBySlug(ctx context.Context, db *bun.DB, slug string) (*models.Game, error) {
	var game models.Game
	err := db.NewSelect().Model(&game).Where("slug = ?", slug).Where("enabled = true").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &game, nil
}
