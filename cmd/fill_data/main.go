// Command fill_data generates a proportional test dataset.
//
//	fill_data <ratio>
//
// creates ratio users and tags, 10*ratio questions, 100*ratio answers and
// up to 200*ratio ratings.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/Jam721/VkWebHomework/config"
	"github.com/Jam721/VkWebHomework/internal/cache"
	"github.com/Jam721/VkWebHomework/internal/database"
	"github.com/Jam721/VkWebHomework/internal/leaderboard"
	"github.com/Jam721/VkWebHomework/internal/seed"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s <ratio>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	ratio, err := strconv.Atoi(flag.Arg(0))
	if err != nil || ratio <= 0 {
		log.Fatalf("ratio must be a positive integer, got %q", flag.Arg(0))
	}

	config.MustLoad("config.yaml")
	if err := database.InitDatabase(); err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer database.Close()

	ctx := context.Background()
	filler := seed.NewFiller(database.GetDB(), rand.New(rand.NewSource(time.Now().UnixNano())), os.Stdout)
	_, err = filler.Run(ctx, seed.FillOptions{
		Ratio:        ratio,
		Batch:        config.Conf.Seed.Batch,
		CounterBatch: config.Conf.Seed.CounterBatch,
	})
	if err != nil {
		log.Fatalf("fill: %v", err)
	}

	// the sidebar is cached in redis when the server runs with it
	if database.RedisDB != nil {
		board := leaderboard.NewService(
			leaderboard.NewRepository(database.GetDB()),
			cache.NewRedisCache(database.RedisDB.Client, "qa-forum:"),
			leaderboard.Options{},
		)
		if err := board.Invalidate(ctx); err != nil {
			log.Printf("[fill_data] warning: could not clear leaderboard cache: %v", err)
		}
	}
}
