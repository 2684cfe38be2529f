// Package main implements the bufbench utility, a throughput exercise for
// the streambuf staging buffers. It pushes a configurable amount of data
// through the ring buffer, the dynamic buffer, and the byte-stream adapter,
// then reports per-buffer statistics. With a metrics port set, live buffer
// metrics are exposed in Prometheus format while the run is in progress.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360/streambuf/buffer"
	"github.com/c360/streambuf/metric"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "bufbench"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Benchmark failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}

	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	bufCfg, err := loadBufferConfig(cliCfg)
	if err != nil {
		return err
	}

	slog.Info("Starting buffer benchmark",
		"shape", cliCfg.Shape,
		"capacity", bufCfg.Capacity,
		"extent_size", bufCfg.ExtentSize,
		"chunk", cliCfg.ChunkSize,
		"total_bytes", cliCfg.TotalBytes)

	// Cancel the run on SIGINT/SIGTERM; a partial run still reports stats.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := metric.NewMetricsRegistry()
	if cliCfg.MetricsPort > 0 {
		startMetricsServer(ctx, registry, cliCfg.MetricsPort)
	}

	if cliCfg.Shape == "ring" || cliCfg.Shape == "both" {
		if err := runRing(ctx, bufCfg, registry, cliCfg); err != nil {
			return err
		}
	}

	if cliCfg.Shape == "dynamic" || cliCfg.Shape == "both" {
		if err := runDynamic(ctx, bufCfg, registry, cliCfg); err != nil {
			return err
		}
		if err := runStream(ctx, bufCfg, registry, cliCfg); err != nil {
			return err
		}
	}

	return ctx.Err()
}

// loadBufferConfig builds the buffer configuration from the config file if
// one was given, falling back to the sizing flags.
func loadBufferConfig(cliCfg *CLIConfig) (*buffer.Config, error) {
	if cliCfg.ConfigPath != "" {
		cfg, err := buffer.LoadConfig(cliCfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("loading buffer config: %w", err)
		}
		slog.Info("Loaded buffer configuration", "path", cliCfg.ConfigPath)
		return cfg, nil
	}

	cfg := &buffer.Config{
		Capacity:   cliCfg.Capacity,
		ExtentSize: cliCfg.ExtentSize,
		MinFree:    cliCfg.MinFree,
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid buffer config: %w", err)
	}
	return cfg, nil
}

func startMetricsServer(ctx context.Context, registry *metric.MetricsRegistry, port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(
		registry.PrometheusRegistry(),
		promhttp.HandlerOpts{},
	))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Metrics server listening", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Metrics server failed", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
}

// runRing alternates chunked writes and reads over a fixed-capacity ring
// buffer until the requested amount has moved through it.
func runRing(ctx context.Context, cfg *buffer.Config, registry *metric.MetricsRegistry, cliCfg *CLIConfig) error {
	buf, err := buffer.NewCircularFromConfig(cfg, buffer.WithMetrics[byte](registry, "ring"))
	if err != nil {
		return fmt.Errorf("creating ring buffer: %w", err)
	}

	chunk := make([]byte, cliCfg.ChunkSize)
	dst := make([]byte, cliCfg.ChunkSize)

	start := time.Now()
	moved := 0
	for moved < cliCfg.TotalBytes && ctx.Err() == nil {
		n := buf.Write(chunk)
		if m := buf.Read(dst); m < n {
			return fmt.Errorf("ring buffer lost data: wrote %d, read %d", n, m)
		}
		moved += n
	}

	logSummary("ring", buf.Stats(), moved, time.Since(start))
	return nil
}

// runDynamic writes bursts of several chunks then drains them, driving the
// dynamic buffer through repeated extent growth and eviction.
func runDynamic(ctx context.Context, cfg *buffer.Config, registry *metric.MetricsRegistry, cliCfg *CLIConfig) error {
	buf, err := buffer.NewDynamicFromConfig(cfg, buffer.WithMetrics[byte](registry, "dynamic"))
	if err != nil {
		return fmt.Errorf("creating dynamic buffer: %w", err)
	}

	const burst = 8
	chunk := make([]byte, cliCfg.ChunkSize)
	dst := make([]byte, cliCfg.ChunkSize)

	start := time.Now()
	moved := 0
	for moved < cliCfg.TotalBytes && ctx.Err() == nil {
		for i := 0; i < burst; i++ {
			moved += buf.Write(chunk)
		}
		for !buf.IsEmpty() {
			buf.Read(dst)
		}
	}

	logSummary("dynamic", buf.Stats(), moved, time.Since(start))
	return nil
}

// runStream moves the same volume through the byte-stream adapter, the path
// code using plain io interfaces takes.
func runStream(ctx context.Context, cfg *buffer.Config, registry *metric.MetricsRegistry, cliCfg *CLIConfig) error {
	buf, err := buffer.NewDynamicFromConfig(cfg, buffer.WithMetrics[byte](registry, "stream"))
	if err != nil {
		return fmt.Errorf("creating stream buffer: %w", err)
	}
	stream := buffer.NewStream(buf)

	chunk := make([]byte, cliCfg.ChunkSize)
	dst := make([]byte, cliCfg.ChunkSize)

	start := time.Now()
	moved := 0
	for moved < cliCfg.TotalBytes && ctx.Err() == nil {
		n, err := stream.Write(chunk)
		if err != nil {
			return fmt.Errorf("stream write: %w", err)
		}
		if _, err := stream.Read(dst[:n]); err != nil {
			return fmt.Errorf("stream read: %w", err)
		}
		moved += n
	}

	logSummary("stream", buf.Stats(), moved, time.Since(start))
	return nil
}

func logSummary(name string, stats *buffer.Statistics, moved int, elapsed time.Duration) {
	summary := stats.Summary()
	throughput := 0.0
	if elapsed > 0 {
		throughput = float64(moved) / elapsed.Seconds() / (1 << 20)
	}

	slog.Info("Benchmark complete",
		"buffer", name,
		"bytes_moved", moved,
		"elapsed", elapsed.Round(time.Millisecond),
		"throughput_mib_s", fmt.Sprintf("%.1f", throughput),
		"items_written", summary.ItemsWritten,
		"items_read", summary.ItemsRead,
		"short_writes", summary.ShortWrites,
		"extents_allocated", summary.Grows,
		"extents_released", summary.Evictions,
		"max_len", summary.MaxLen)
}
