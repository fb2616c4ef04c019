// Command import загружает файл с местами в PostgreSQL.
//
// Expects the JSON layout produced by cmd/geocode: a top-level "places"
// array of destination objects. Places that already exist are skipped.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"example.com/travlapes/backend/internal/config"
	"example.com/travlapes/backend/internal/database"
	"example.com/travlapes/backend/internal/models"
	"example.com/travlapes/backend/internal/repository"
)

type placesFile struct {
	Places []models.Destination `json:"places"`
}

func main() {
	input := flag.String("in", "places_with_coordinates.json", "destinations JSON file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(context.Background(), logger, *input); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, input string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	payload, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	var doc placesFile
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	destinations := repository.NewDestinationRepository(db)

	var created, skipped int
	for _, dest := range doc.Places {
		if _, err := destinations.Create(ctx, dest); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				skipped++
				continue
			}
			return fmt.Errorf("create destination %d (%s): %w", dest.ID, dest.Name, err)
		}
		created++
	}

	logger.Info("import finished",
		slog.Int("created", created),
		slog.Int("skipped", skipped),
		slog.Int("total", len(doc.Places)),
	)
	return nil
}
