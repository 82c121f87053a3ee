package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"moviehub/database"
	"moviehub/internal/config"
	"moviehub/internal/fixtures"
)

func main() {
	file := flag.String("file", "fixtures.yaml", "YAML catalog document to import")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("could not open %s: %v", *file, err)
	}
	defer f.Close()

	doc, err := fixtures.Load(f)
	if err != nil {
		log.Fatalf("could not read %s: %v", *file, err)
	}

	db, err := database.Connect(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	sum, err := fixtures.Import(ctx, db, doc, logger)
	if err != nil {
		logger.Error("import_failed", "file", *file, "error", err)
		os.Exit(1)
	}
	logger.Info("import_completed",
		"file", *file,
		"categories", sum.Categories,
		"genres", sum.Genres,
		"actors", sum.Actors,
		"rating_stars", sum.RatingStars,
		"movies", sum.Movies,
		"shots", sum.Shots,
		"staff_users", sum.StaffUsers,
	)
}
