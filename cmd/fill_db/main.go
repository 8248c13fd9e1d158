// Command fill_db bulk-inserts questions over a pinned pgx connection.
//
//	fill_db --count 1000000 --batch 5000
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Jam721/VkWebHomework/config"
	"github.com/Jam721/VkWebHomework/internal/database"
	"github.com/Jam721/VkWebHomework/internal/seed"
)

func main() {
	config.MustLoad("config.yaml")
	seedConf := config.Conf.Seed

	count := flag.Int("count", seedConf.Count, "number of questions to create")
	batch := flag.Int("batch", seedConf.Batch, "questions per transaction")
	flag.Parse()

	if *count <= 0 || *batch <= 0 {
		log.Fatalf("count and batch must be positive")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.InitDatabase(); err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer database.Close()

	pool, err := database.OpenPgxPool(ctx)
	if err != nil {
		log.Fatalf("open pgx pool: %v", err)
	}
	defer pool.Close()

	session, err := seed.AcquirePgxSession(ctx, pool)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer session.Release()

	loader := seed.NewBulkLoader(database.GetDB(), session, os.Stdout)
	if _, err := loader.Run(ctx, seed.BulkOptions{Count: *count, Batch: *batch}); err != nil {
		log.Fatalf("bulk load: %v", err)
	}

	if _, err := seed.RecomputeCounters(ctx, database.GetDB(), seedConf.CounterBatch, os.Stdout); err != nil {
		log.Fatalf("update counters: %v", err)
	}
}
