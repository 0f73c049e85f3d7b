package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/IvanBrykalov/lrucache/cache"
	pmet "github.com/IvanBrykalov/lrucache/metrics/prom"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var benchCommand = &cli.Command{
	Name:  "bench",
	Usage: "run a synthetic Zipf workload and expose Prometheus metrics",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "cap", Usage: "cache capacity (entries)"},
		&cli.IntFlag{Name: "shards", Usage: "number of shards (0=auto, 1=strict global LRU)"},
		&cli.IntFlag{Name: "workers", Usage: "number of worker goroutines (0=2*GOMAXPROCS)"},
		&cli.DurationFlag{Name: "duration", Usage: "benchmark duration"},
		&cli.IntFlag{Name: "reads", Usage: "read percentage [0..100]"},
		&cli.IntFlag{Name: "keys", Usage: "keyspace size"},
		&cli.Float64Flag{Name: "zipf.s", Usage: "Zipf s > 1 (skew)"},
		&cli.Float64Flag{Name: "zipf.v", Usage: "Zipf v >= 1"},
		&cli.Int64Flag{Name: "seed", Usage: "random seed (0 = time based)"},
		&cli.IntFlag{Name: "preload", Usage: "preload entries (0 = cap/2)"},
		&cli.StringFlag{Name: "pprof", Usage: "serve pprof at addr (e.g. :6060); empty = disabled"},
		&cli.StringFlag{Name: "http", Usage: "serve Prometheus metrics at addr; empty = disabled"},
	},
	Action: func(ctx *cli.Context) error {
		bc := benchFlags(ctx, cfg.Bench)
		return runBench(ctx.Context, ctx.App.Writer, bc)
	},
}

// benchFlags overlays explicitly set flags on the configured values.
func benchFlags(ctx *cli.Context, bc benchConfig) benchConfig {
	if ctx.IsSet("cap") {
		bc.Capacity = ctx.Int("cap")
	}
	if ctx.IsSet("shards") {
		bc.Shards = ctx.Int("shards")
	}
	if ctx.IsSet("workers") {
		bc.Workers = ctx.Int("workers")
	}
	if ctx.IsSet("duration") {
		bc.Duration = ctx.Duration("duration").String()
	}
	if ctx.IsSet("reads") {
		bc.ReadPct = ctx.Int("reads")
	}
	if ctx.IsSet("keys") {
		bc.Keys = ctx.Int("keys")
	}
	if ctx.IsSet("zipf.s") {
		bc.ZipfS = ctx.Float64("zipf.s")
	}
	if ctx.IsSet("zipf.v") {
		bc.ZipfV = ctx.Float64("zipf.v")
	}
	if ctx.IsSet("seed") {
		bc.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("preload") {
		bc.Preload = ctx.Int("preload")
	}
	if ctx.IsSet("pprof") {
		bc.PprofAddr = ctx.String("pprof")
	}
	if ctx.IsSet("http") {
		bc.MetricsAddr = ctx.String("http")
	}
	return bc
}

func (b benchConfig) validate() error {
	switch {
	case b.ReadPct < 0 || b.ReadPct > 100:
		return fmt.Errorf("reads must be in [0..100], got %d", b.ReadPct)
	case b.Keys < 1:
		return fmt.Errorf("keys must be >= 1, got %d", b.Keys)
	case b.ZipfS <= 1 || b.ZipfV < 1:
		return fmt.Errorf("zipf parameters need s > 1 and v >= 1, got s=%v v=%v", b.ZipfS, b.ZipfV)
	}
	return nil
}

type benchResult struct {
	total, reads, writes atomic.Uint64
}

func runBench(parent context.Context, out io.Writer, bc benchConfig) error {
	if err := bc.validate(); err != nil {
		return err
	}
	duration, err := bc.duration()
	if err != nil {
		return err
	}
	if bc.Workers <= 0 {
		bc.Workers = 2 * runtime.GOMAXPROCS(0)
	}
	if bc.Seed == 0 {
		bc.Seed = time.Now().UnixNano()
	}

	// ---- pprof server (on DefaultServeMux) ----
	if bc.PprofAddr != "" {
		go func() {
			slog.Info("Serving pprof", "addr", bc.PprofAddr)
			if err := http.ListenAndServe(bc.PprofAddr, nil); err != nil {
				slog.Warn("pprof server stopped", "err", err)
			}
		}()
	}

	// ---- Build cache with Prometheus metrics ----
	reg := prometheus.NewRegistry()
	metrics := pmet.New(reg, "lru", "bench", nil)
	c, err := cache.New[string, string](cache.Options[string, string]{
		Capacity: bc.Capacity,
		Shards:   bc.Shards,
		Metrics:  metrics,
		Logger:   slog.Default(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()
	reg.MustRegister(pmet.NewCollector(c, "lru", "bench", nil))

	if bc.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		srv := &http.Server{Addr: bc.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			slog.Info("Serving metrics", "addr", bc.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Warn("metrics server stopped", "err", err)
			}
		}()
		defer srv.Close()
	}

	// ---- Preload half capacity to get a realistic hit-rate ----
	pl := bc.Preload
	if pl == 0 {
		pl = bc.Capacity / 2
	}
	for i := 0; i < pl; i++ {
		c.Put("k:"+strconv.Itoa(i), "v"+strconv.Itoa(i))
	}
	slog.Info("Starting workload", "cap", bc.Capacity, "shards", bc.Shards, "workers", bc.Workers,
		"keys", bc.Keys, "duration", duration, "seed", bc.Seed)

	// ---- Load generation ----
	var res benchResult
	ctx, cancel := context.WithTimeout(parent, duration)
	defer cancel()

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < bc.Workers; w++ {
		g.Go(func() error {
			benchWorker(gctx, c, bc, int64(w), &res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	// ---- Report ----
	st := c.Stats()
	fmt.Fprintf(out, "cap=%d shards=%d workers=%d keys=%d dur=%v seed=%d\n",
		bc.Capacity, bc.Shards, bc.Workers, bc.Keys, elapsed, bc.Seed)
	fmt.Fprintf(out, "ops=%d (%.0f ops/s)  reads=%d  writes=%d\n",
		res.total.Load(), float64(res.total.Load())/elapsed.Seconds(), res.reads.Load(), res.writes.Load())
	fmt.Fprintf(out, "hits=%d  misses=%d  hit-rate=%.2f%%  evictions=%d\n",
		st.Hits, st.Misses, st.HitRate()*100, st.Evictions)
	fmt.Fprintf(out, "Len()=%d Cap()=%d\n", c.Len(), c.Cap())
	return nil
}

// benchWorker issues operations until ctx ends. Each worker gets its own RNG
// and Zipf source (rand.Rand is not goroutine-safe).
func benchWorker(ctx context.Context, c cache.Cache[string, string], bc benchConfig, id int64, res *benchResult) {
	r := rand.New(rand.NewSource(bc.Seed + id*9973))
	zipf := rand.NewZipf(r, bc.ZipfS, bc.ZipfV, uint64(bc.Keys-1))
	key := func() string { return "k:" + strconv.FormatUint(zipf.Uint64(), 10) }

	for ctx.Err() == nil {
		res.total.Add(1)
		if int(r.Int31n(100)) < bc.ReadPct {
			res.reads.Add(1)
			c.Get(key())
			continue
		}
		res.writes.Add(1)
		c.Put(key(), "v"+strconv.Itoa(r.Int()))
	}
}
