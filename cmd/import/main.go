package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"herodex/internal/dataset"
	"herodex/internal/store"
	"herodex/pkg/database"
	"herodex/pkg/utils"
)

func main() {
	utils.LoadEnv()
	cfg := utils.LoadServerConfig()

	from := flag.String("from", dataset.DefaultURL, "dataset URL or JSON file path")
	dbPath := flag.String("db", database.DefaultConfig(cfg.DBPath).Path, "sqlite snapshot path")
	rollback := flag.Bool("rollback", false, "revert the latest schema migration and exit")
	flag.Parse()

	db := database.MustOpen(database.Config{Path: *dbPath})
	defer db.Close()

	if *rollback {
		err := database.Rollback(db)
		switch {
		case errors.Is(err, database.ErrNoChange):
			log.Printf("[import] %s has no migration to roll back", *dbPath)
		case err != nil:
			log.Fatalf("[import] rollback failed: %v", err)
		default:
			log.Printf("[import] rolled back latest migration on %s", *dbPath)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("[import] db migrate failed: %v", err)
	}

	var src dataset.Source
	if dataset.Kind(*from) == "http" {
		src = dataset.NewHTTPSource(*from, cfg.FetchTimeout)
	} else {
		src = &dataset.FileSource{Path: *from}
	}

	data, err := dataset.Load(ctx, src, log.Default())
	if err != nil {
		log.Fatalf("[import] fetch failed: %v", err)
	}

	repo := store.NewRepo(db)
	if err := dataset.Snapshot(ctx, repo, data.Records()); err != nil {
		log.Fatalf("[import] save failed: %v", err)
	}

	n, err := repo.Count(ctx)
	if err != nil {
		log.Fatalf("[import] count failed: %v", err)
	}
	log.Printf("[import] imported %d heroes into %s", n, *dbPath)
}
