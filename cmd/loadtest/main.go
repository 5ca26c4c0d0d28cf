package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	promadapter "github.com/codewandler/csp-go/adapters/prometheus"
	"github.com/codewandler/csp-go/core/csp"
)

// === Config ===

var (
	logLevel    = slog.LevelInfo
	producers   = getEnvInt("PRODUCERS", 16)
	N           = getEnvInt("N", 50_000)
	metricsAddr = getEnv("METRICS_ADDR", "")
	linger      = getEnvBool("LINGER", false)
)

func getEnvBool(key string, fallback bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	return v == "1" || strings.ToLower(v) == "true"
}

func getEnv(key, fallback string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	pm := promadapter.NewProcessMetrics(reg)

	if metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			if err := http.ListenAndServe(metricsAddr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		log.Info("serving metrics", slog.String("addr", metricsAddr))
	}

	fmt.Printf("Producers: %d\n", producers)
	fmt.Printf("Messages per producer: %d\n", N)

	res, err := run(log, pm, producers, N)
	if err != nil {
		log.Error("load test failed", slog.Any("error", err))
		os.Exit(1)
	}

	// === stats ===
	mu := getMemUsage()
	println("==========================================")
	fmt.Printf("total runtime: %.3f seconds\n", res.took.Seconds())
	fmt.Printf("     received: %d\n", res.sink.Received)
	fmt.Printf(" out of order: %d\n", res.sink.OutOfOrder)
	fmt.Printf("   mismatched: %d\n", res.sink.Mismatched)
	fmt.Printf("   messages/s: %d\n", int(float64(res.sink.Received)/res.took.Seconds()))
	fmt.Printf("   mem (heap): %d MiB, gc cycles: %d\n", mu.Alloc/1024/1024, mu.NumGC)

	if linger && metricsAddr != "" {
		log.Info("lingering for metrics scrape, interrupt to exit")
		select {}
	}
}

type result struct {
	sink *Sink
	took time.Duration
}

var errLost = errors.New("messages lost or reordered")

// spawn starts the load test processes; replaced in tests.
var spawn = csp.Spawn

func run(log *slog.Logger, pm csp.ProcessMetrics, producers, n int) (result, error) {
	sink := &Sink{Producers: producers, Expected: producers * n}
	startAt := time.Now()

	sp, err := spawn(csp.Options{ID: "sink", Logger: log, Metrics: pm}, sink)
	if err != nil {
		return result{}, fmt.Errorf("spawn sink: %w", err)
	}

	procs := make([]*csp.Process, 0, producers)
	for i := range producers {
		p, err := spawn(
			csp.Options{ID: fmt.Sprintf("producer-%d", i), Logger: log, Metrics: pm},
			Producer{Sink: sp, N: n},
		)
		if err != nil {
			stop(procs)
			// the sink would wait forever for the missing producers
			sp.Send(&Abort{})
			stop([]*csp.Process{sp})
			return result{sink: sink, took: time.Since(startAt)}, fmt.Errorf("spawn producer %d: %w", i, err)
		}
		procs = append(procs, p)
	}

	stop(procs)
	stop([]*csp.Process{sp})

	res := result{sink: sink, took: time.Since(startAt)}
	if sink.OutOfOrder > 0 || sink.Mismatched > 0 || sink.Received != sink.Expected {
		return res, fmt.Errorf("%w: out_of_order=%d mismatched=%d received=%d/%d",
			errLost, sink.OutOfOrder, sink.Mismatched, sink.Received, sink.Expected)
	}
	return res, nil
}

func stop(procs []*csp.Process) {
	for _, p := range procs {
		p.Wait()
		p.Close()
	}
}

// === stats helpers ===

type MemUsage struct {
	Alloc uint64 // bytes allocated and not yet freed (heap)
	Sys   uint64 // total bytes obtained from OS
	NumGC uint32 // gc cycles
}

func getMemUsage() MemUsage {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemUsage{
		Alloc: m.Alloc,
		Sys:   m.Sys,
		NumGC: m.NumGC,
	}
}
