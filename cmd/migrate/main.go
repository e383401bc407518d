package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"

	"fortex/internal/datastore"
	"fortex/internal/models"
	"fortex/internal/services"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandConfigMigration(),
			commandSeedGames(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableAccount(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableGame(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableGameAttempt(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableLedgerEntry(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableConfig(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

// insert default configs to db
func commandConfigMigration() *cli.Command {
	return &cli.Command{
		Name:        "migrate-config",
		Description: "Insert default configs to db",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			configs := []models.Config{
				{Key: services.CONFIG_MINING_COOLDOWN_HOURS, Value: fmt.Sprint(services.DEFAULT_MINING_COOLDOWN_HOURS)},
				{Key: services.CONFIG_MINING_CLAIM_MAX, Value: fmt.Sprint(services.DEFAULT_MINING_CLAIM_MAX)},
				{Key: services.CONFIG_GAME_MAX_ATTEMPTS, Value: fmt.Sprint(services.DEFAULT_GAME_MAX_ATTEMPTS)},
				{Key: services.CONFIG_GAME_COOLDOWN_HOURS, Value: fmt.Sprint(services.DEFAULT_GAME_COOLDOWN_HOURS)},
				{Key: services.CONFIG_VERIFY_RATE_PER_MIN, Value: fmt.Sprint(services.DEFAULT_VERIFY_RATE_PER_MIN)},
			}

			for _, config := range configs {
				err = datastore.InsertConfig(ctx, db, config)
				if err != nil {
					log.Println(err)
				}
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

func commandSeedGames() *cli.Command {
	return &cli.Command{
		Name:        "seed-games",
		Description: "Insert the default game catalog",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.SeedGames(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			fmt.Println("Seed success")

			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	db := bun.NewDB(sqldb, pgdialect.New())
	return db, nil
}
