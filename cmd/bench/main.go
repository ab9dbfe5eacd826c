// Command bench runs a synthetic two-tier workload against the cache and
// exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gitHBDX/tiercache/cache"
	pmet "github.com/gitHBDX/tiercache/metrics/prom"
	"github.com/gitHBDX/tiercache/policy/lru"
	"github.com/gitHBDX/tiercache/store"
	"github.com/gitHBDX/tiercache/store/bolt"
)

func main() {
	// ---- Flags ----
	var (
		capacity = flag.Int("cap", 100_000, "hot-tier capacity (entries)")
		shards   = flag.Int("shards", 0, "number of shards (0=auto)")
		policyFl = flag.String("policy", "fifo", "eviction policy: fifo | lru")
		coldPath = flag.String("cold", "", "bolt file for the cold tier (empty = temp file, \"off\" = hot-only)")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")

		keys    = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS   = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV   = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		preload = flag.Int("preload", 0, "preload entries (0 = cap/2)")

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
	metrics := pmet.New(nil, "tiercache", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	// ---- Cold tier ----
	var cold store.Store
	switch *coldPath {
	case "off":
		// hot-only run
	case "":
		dir, err := os.MkdirTemp("", "tiercache-bench-")
		if err != nil {
			log.Fatal(err)
		}
		defer os.RemoveAll(dir)
		cold, err = bolt.Open(filepath.Join(dir, "cold.db"), bolt.Options{})
		if err != nil {
			log.Fatal(err)
		}
	default:
		var err error
		cold, err = bolt.Open(*coldPath, bolt.Options{})
		if err != nil {
			log.Fatal(err)
		}
	}

	// ---- Build cache ----
	opt := cache.Options[string, string]{
		Capacity: *capacity,
		Shards:   *shards,
		Store:    cold,
		Metrics:  metrics,
	}
	switch *policyFl {
	case "fifo":
		// nil => FIFO by default
	case "lru":
		opt.Policy = lru.New[string, string]()
	default:
		log.Fatalf("unknown policy: %q (use fifo or lru)", *policyFl)
	}
	c := cache.New[string, string](opt)
	defer func() { _ = c.Close() }()

	// ---- Preload half capacity to get a realistic hit-rate ----
	pl := *preload
	if pl == 0 {
		pl = *capacity / 2
	}
	for i := 0; i < pl; i++ {
		k := "k:" + strconv.Itoa(i)
		if err := c.Set(k, "v"+strconv.Itoa(i)); err != nil {
			log.Fatalf("preload: %v", err)
		}
	}

	// ---- Snapshot flags for goroutines ----
	readPctVal := *readPct
	keysMax := uint64(*keys - 1)
	seedBase := *seed
	zipfSVal := *zipfS
	zipfVVal := *zipfV
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}

	// ---- Load generation ----
	var reads, writes, hits, misses, writeErrs, total uint64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workersN)
	for w := 0; w < workersN; w++ {
		go func(id int) {
			defer wg.Done()

			// Each worker gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			localR := rand.New(rand.NewSource(seedBase + int64(id)*9973))
			localZipf := rand.NewZipf(localR, zipfSVal, zipfVVal, keysMax)

			keyByZipf := func() string {
				return "k:" + strconv.FormatUint(localZipf.Uint64(), 10)
			}

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				atomic.AddUint64(&total, 1)
				if int(localR.Int31n(100)) < readPctVal {
					atomic.AddUint64(&reads, 1)
					if _, ok := c.Get(keyByZipf()); ok {
						atomic.AddUint64(&hits, 1)
					} else {
						atomic.AddUint64(&misses, 1)
					}
				} else {
					atomic.AddUint64(&writes, 1)
					k := keyByZipf()
					if err := c.Set(k, "v"+strconv.Itoa(localR.Int())); err != nil {
						atomic.AddUint64(&writeErrs, 1)
					}
				}
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	// ---- Report ----
	ops := atomic.LoadUint64(&total)
	readsN := atomic.LoadUint64(&reads)
	writesN := atomic.LoadUint64(&writes)
	hitsN := atomic.LoadUint64(&hits)
	missesN := atomic.LoadUint64(&misses)
	writeErrsN := atomic.LoadUint64(&writeErrs)

	hitRate := 0.0
	if readsN > 0 {
		hitRate = float64(hitsN) / float64(readsN) * 100
	}

	fmt.Printf("policy=%s cap=%d shards=%d workers=%d keys=%d cold=%v dur=%v seed=%d\n",
		*policyFl, *capacity, *shards, workersN, *keys, cold != nil, elapsed, seedBase)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d  write-errors=%d\n",
		ops, float64(ops)/elapsed.Seconds(), readsN, writesN, writeErrsN)
	fmt.Printf("hits=%d  misses=%d  hit-rate=%.2f%% (hits include cold promotions)\n", hitsN, missesN, hitRate)
	fmt.Printf("Len()=%d\n", c.Len())
}
