package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"herodex/internal/dataset"
	"herodex/internal/store"
	"herodex/pkg/database"
	"herodex/pkg/utils"
)

func main() {
	utils.LoadEnv()
	cfg := utils.LoadServerConfig()

	var (
		outPath = flag.String("out", "data/all.json", "output JSON path")
		dbPath  = flag.String("db", database.DefaultConfig(cfg.DBPath).Path, "sqlite snapshot path")
		limit   = flag.Int("limit", 0, "how many heroes to export (0 = all)")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := database.MustOpen(database.Config{Path: *dbPath, ReadOnly: true})
	defer db.Close()

	records, err := (&dataset.StoreSource{Repo: store.NewRepo(db), Path: *dbPath}).FetchAll(ctx)
	if err != nil {
		log.Fatalf("[export] read snapshot failed: %v", err)
	}
	if len(records) == 0 {
		log.Fatalf("[export] snapshot %s is empty; run import first", *dbPath)
	}
	if *limit > 0 && *limit < len(records) {
		records = records[:*limit]
	}

	b, err := dataset.Marshal(records)
	if err != nil {
		log.Fatalf("[export] marshal failed: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatalf("[export] mkdir failed: %v", err)
	}
	if err := os.WriteFile(*outPath, b, 0o644); err != nil {
		log.Fatalf("[export] write failed: %v", err)
	}

	log.Printf("[export] exported %d heroes to %s", len(records), *outPath)
}
