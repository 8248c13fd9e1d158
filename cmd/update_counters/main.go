// Command update_counters recomputes question like/dislike counters from the
// rating tables.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/Jam721/VkWebHomework/config"
	"github.com/Jam721/VkWebHomework/internal/database"
	"github.com/Jam721/VkWebHomework/internal/seed"
)

func main() {
	config.MustLoad("config.yaml")

	batch := flag.Int("batch", config.Conf.Seed.CounterBatch, "questions per update")
	flag.Parse()

	if err := database.InitDatabase(); err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer database.Close()

	if _, err := seed.RecomputeCounters(context.Background(), database.GetDB(), *batch, os.Stdout); err != nil {
		log.Fatalf("update counters: %v", err)
	}
}
