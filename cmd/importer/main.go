package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"recycling-api/internal/config"
	"recycling-api/internal/logger"
	"recycling-api/internal/migrations"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	configDir := flag.String("config", "configs", "Directory holding app.env")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if *file == "" {
		log.Fatal().Msg("--file flag is required")
	}

	log.Info().Str("file", *file).Msg("starting import")

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open CSV file")
	}
	defer f.Close()

	now := time.Now()
	records, err := parseCSV(f, now)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse CSV")
	}
	log.Info().Int("records", len(records)).Msg("parsed CSV")

	// Ensure the schema exists
	if err := migrations.Up(cfg.DBSource); err != nil {
		log.Fatal().Err(err).Msg("cannot migrate db")
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close(ctx)

	before, err := countPoints(ctx, conn)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot count existing points")
	}

	if err := insertRecords(ctx, conn, records); err != nil {
		log.Fatal().Err(err).Msg("cannot insert records")
	}

	if err := verifyImport(ctx, conn, before, len(records)); err != nil {
		log.Fatal().Err(err).Msg("import verification failed")
	}

	log.Info().Int("records", len(records)).Msg("import finished")
}

func insertRecords(ctx context.Context, conn *pgx.Conn, records []PointRecord) error {
	_, err := conn.CopyFrom(
		ctx,
		pgx.Identifier{"recycling_points"},
		[]string{"name", "latitude", "longitude", "fill_level", "waste_type", "last_emptied_at", "created_at"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{r.Name, r.Latitude, r.Longitude, r.FillLevel, r.WasteType, r.ImportedAt, r.ImportedAt}, nil
		}),
	)
	return err
}

func countPoints(ctx context.Context, conn *pgx.Conn) (int, error) {
	var count int
	err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM recycling_points").Scan(&count)
	return count, err
}

func verifyImport(ctx context.Context, conn *pgx.Conn, before, imported int) error {
	after, err := countPoints(ctx, conn)
	if err != nil {
		return err
	}
	if after-before != imported {
		return errors.New("record count mismatch after import")
	}
	return nil
}
