package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"herodex/internal/dataset"
	"herodex/internal/options"
	"herodex/internal/tui"
	"herodex/pkg/utils"
)

func main() {
	utils.LoadEnv()
	cfg := utils.LoadServerConfig()

	source := flag.String("source", cfg.Source, "dataset URL, JSON file or sqlite:<path>")
	query := flag.String("query", "", "initial view as a URL query string, e.g. q=bat&sort=name,desc")
	theme := flag.String("theme", "catppuccin", "color theme: "+strings.Join(tui.Themes(), "|"))
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "herotui [--source SRC] [--query QS] [--theme NAME]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	src, closeSrc, err := dataset.OpenSource(*source, cfg.DBPath, cfg.FetchTimeout)
	if err != nil {
		log.Fatalf("open source failed: %v", err)
	}
	defer closeSrc()

	ctx := context.Background()
	loadCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	data, err := dataset.Load(loadCtx, src, log.Default())
	cancel()
	if err != nil {
		log.Fatalf("dataset load failed: %v", err)
	}

	opts := tui.Options{Theme: *theme, Query: *query}
	if err := tui.Run(ctx, data, options.Compute(data.Records()), opts); err != nil {
		log.Fatal(err)
	}
}
