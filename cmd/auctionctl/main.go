// Command auctionctl loads a symbol's order book, runs it through the
// clearing core, and reports the outcome — optionally replaying the
// whole fetch/clear/persist cycle across several rounds and printing
// latency statistics, mirroring the teacher's replay-and-report main
// loop.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	_ "github.com/lib/pq"

	"github.com/grd/stat"

	"github.com/lightsgoout/callauction/bookstore"
	"github.com/lightsgoout/callauction/clearing/decimalprice"
)

const nanoToSeconds = 1e-9

func main() {
	dsn := flag.String("dsn", "user=kolombet dbname=exchange sslmode=disable", "Postgres connection string")
	symbol := flag.String("symbol", "SYM", "trading symbol to clear")
	generate := flag.Int("generate", 0, "generate N random asks and N random bids before each round (0 disables fixture generation)")
	rounds := flag.Int("rounds", 1, "number of fetch/clear/persist rounds to replay")
	seed := flag.Int64("seed", 42, "random seed for fixture generation")
	flag.Parse()

	db, err := sql.Open("postgres", *dsn)
	if err != nil {
		log.Fatalf("auctionctl: open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(*seed))

	fetchLatencies := make([]time.Duration, *rounds)
	clearLatencies := make([]time.Duration, *rounds)
	persistLatencies := make([]time.Duration, *rounds)
	totalLatencies := make([]time.Duration, *rounds)

	for round := 0; round < *rounds; round++ {
		runID := newRunID()
		log.Printf("=== round #%d (%s)", round+1, runID)

		totalBegin := time.Now()

		if *generate > 0 {
			if err := bookstore.ResetSchema(ctx, db); err != nil {
				log.Fatalf("auctionctl: reset schema: %v", err)
			}
			asks, bids := generateFixtureBook(rng, *generate)
			if err := bookstore.BulkLoad(ctx, db, *symbol, asks, bids); err != nil {
				log.Fatalf("auctionctl: bulk load fixtures: %v", err)
			}
			log.Printf("loaded %d asks and %d bids for %s", len(asks), len(bids), *symbol)
		}

		fetchBegin := time.Now()
		asks, bids, err := bookstore.FetchBook(ctx, db, *symbol)
		if err != nil {
			log.Fatalf("auctionctl: fetch book: %v", err)
		}
		fetchLatencies[round] = time.Since(fetchBegin)

		clearBegin := time.Now()
		result, matched := decimalprice.ClearRange(decimalprice.SeqOf(asks), decimalprice.SeqOf(bids))
		clearLatencies[round] = time.Since(clearBegin)

		outcome := bookstore.Outcome{Matched: matched}
		if matched {
			outcome.Low, outcome.High, outcome.Volume = result.Low, result.High, result.Volume
			single, _ := decimalprice.Clear(decimalprice.SeqOf(asks), decimalprice.SeqOf(bids))
			outcome.Price = single.Price
			fmt.Printf("%s: cleared %s @ [%s, %s], price %s, volume %d\n",
				*symbol, runID, result.Low, result.High, single.Price, result.Volume)
		} else {
			fmt.Printf("%s: no match (%s)\n", *symbol, runID)
		}

		persistBegin := time.Now()
		if err := bookstore.PersistRun(ctx, db, *symbol, outcome); err != nil {
			log.Fatalf("auctionctl: persist run: %v", err)
		}
		persistLatencies[round] = time.Since(persistBegin)

		totalLatencies[round] = time.Since(totalBegin)
	}

	reportLatencies("fetch", fetchLatencies)
	reportLatencies("clear", clearLatencies)
	reportLatencies("persist", persistLatencies)
	reportLatencies("total", totalLatencies)
}

// durationSlice adapts a []time.Duration to github.com/grd/stat's Data
// interface, exactly as the teacher's main.go does.
type durationSlice []time.Duration

func (d durationSlice) Get(i int) float64 { return float64(d[i]) }
func (d durationSlice) Len() int          { return len(d) }

func reportLatencies(label string, samples []time.Duration) {
	if len(samples) == 0 {
		return
	}
	data := durationSlice(samples)
	mean := stat.Mean(data)
	stdDev := stat.SdMean(data, mean)
	fmt.Printf("[%s] mean(latency) = %1.6f, sd(latency) = %1.6f\n", label, mean*nanoToSeconds, stdDev*nanoToSeconds)
}
