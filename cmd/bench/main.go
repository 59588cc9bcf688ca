// Command bench runs a synthetic clone/mutate workload against the sharing
// library and exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/IvanBrykalov/cowshare/cow"
	pmet "github.com/IvanBrykalov/cowshare/metrics/prom"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// ---- Flags ----
	var (
		payload   = flag.Int("payload", 64*1024, "base payload size (bytes)")
		mutatePct = flag.Int("mutate", 5, "mutation percentage [0..100]; the rest are pure reads")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		seed     = flag.Int64("seed", 1, "base RNG seed")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := pmet.New(nil, "cowshare", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	// ---- Build the shared base payload ----
	stats := cow.NewTracker()
	opt := cow.Options[[]byte]{Stats: stats, Metrics: metrics}
	base := cow.NewText(strings.Repeat("x", *payload), opt)
	defer base.Release()

	mutatePctVal := *mutatePct
	seedBase := *seed
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}

	// ---- Load generation ----
	// Each iteration clones the base, reads through the clone, and with
	// probability mutatePct appends through it (forcing exactly one copy).
	var ops, mutations uint64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workersN)
	for w := 0; w < workersN; w++ {
		// Each worker mutates through its own clone of the base handle.
		mine := base.Clone()
		go func(id int, mine *cow.Text) {
			defer wg.Done()
			defer mine.Release()

			// Each worker gets its own RNG (rand.Rand is NOT goroutine-safe).
			localR := rand.New(rand.NewSource(seedBase + int64(id)*9973))

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				atomic.AddUint64(&ops, 1)
				c := mine.Clone()
				if int(localR.Int31n(100)) < mutatePctVal {
					atomic.AddUint64(&mutations, 1)
					c.Append("!") // breaks sharing: one private copy
				} else {
					_ = c.Len() // pure read, no copy possible
				}
				c.Release()
			}
		}(w, mine)
	}
	wg.Wait()
	elapsed := time.Since(start)

	// ---- Report ----
	opsN := atomic.LoadUint64(&ops)
	mutN := atomic.LoadUint64(&mutations)
	snap := stats.Snapshot()

	fmt.Printf("payload=%s workers=%d mutate=%d%% dur=%v seed=%d\n",
		humanize.IBytes(uint64(*payload)), workersN, mutatePctVal, elapsed, seedBase)
	fmt.Printf("ops=%d (%.0f ops/s)  mutations=%d\n",
		opsN, float64(opsN)/elapsed.Seconds(), mutN)
	fmt.Printf("%s\n", snap)
}
