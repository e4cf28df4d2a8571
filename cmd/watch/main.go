// watch - subscribe to a Limelight camera and print result summaries.
//
// Usage:
//
//	LIMELIGHT_HOST=10.0.0.2 go run ./cmd/watch
//	go run ./cmd/watch -host 10.0.0.2 -interval 100ms -metrics :9090
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teslashibe/go-limelight/internal/config"
	"github.com/teslashibe/go-limelight/internal/log"
	"github.com/teslashibe/go-limelight/pkg/limelight"
)

func main() {
	var (
		configPath  = flag.String("config", "", "YAML config file")
		host        = flag.String("host", "", "camera host (overrides config)")
		port        = flag.Int("port", 0, "camera port (overrides config)")
		interval    = flag.Duration("interval", 0, "poll interval (overrides config)")
		metricsAddr = flag.String("metrics", "", "serve Prometheus metrics on this address")
		logLevel    = flag.String("log-level", "", "debug, info, warn or error")
	)
	flag.Parse()

	cfg, level, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *interval != 0 {
		cfg.PollInterval = *interval
	}
	if *logLevel != "" {
		level = *logLevel
	}
	log.Init(level)

	opts := []limelight.Option{}
	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, limelight.WithMetrics(reg))
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Error("metrics server failed", "err", err)
			}
		}()
	}

	client, err := limelight.New(cfg, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	sub := client.Subscribe()
	defer sub.Close()

	if err := client.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer client.Stop()

	fmt.Printf("Watching %s:%d every %s (Ctrl+C to stop)\n", cfg.Host, cfg.Port, cfg.PollInterval)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	last := time.Now()
	var count int
	for {
		select {
		case <-sigChan:
			fmt.Println("\nBye")
			return
		case res, ok := <-sub.C():
			if !ok {
				return
			}
			count++
			// Print at most a few summaries per second regardless of poll rate.
			if time.Since(last) < 250*time.Millisecond {
				continue
			}
			last = time.Now()
			fmt.Println(summarize(res, count, sub.Dropped()))
		}
	}
}

func summarize(res *limelight.Result, count int, dropped uint64) string {
	s := fmt.Sprintf("[%6d] targets=%v", count, res.HasTargets())
	if res.PipelineType != nil {
		s += " pipeline=" + *res.PipelineType
	}
	if res.Tx != nil && res.Ty != nil {
		s += fmt.Sprintf(" tx=%.2f ty=%.2f", *res.Tx, *res.Ty)
	}
	if n := len(res.Fiducial); n > 0 {
		s += fmt.Sprintf(" fiducials=%d", n)
	}
	if n := len(res.Detector); n > 0 {
		s += fmt.Sprintf(" detections=%d", n)
	}
	if len(res.BotposeMT2) >= 2 {
		s += fmt.Sprintf(" mt2=(%.2f, %.2f)", res.BotposeMT2[0], res.BotposeMT2[1])
	}
	if dropped > 0 {
		s += fmt.Sprintf(" dropped=%d", dropped)
	}
	return s
}
