package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	Shape       string
	Capacity    int
	ExtentSize  int
	MinFree     int
	ChunkSize   int
	TotalBytes  int
	MetricsPort int
	LogLevel    string
	LogFormat   string
	ShowVersion bool
	ShowHelp    bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("BUFBENCH_CONFIG", ""),
		"Path to buffer configuration file, overrides sizing flags (env: BUFBENCH_CONFIG)")

	flag.StringVar(&cfg.Shape, "shape",
		getEnv("BUFBENCH_SHAPE", "both"),
		"Buffer shape to exercise: ring, dynamic, both (env: BUFBENCH_SHAPE)")

	flag.IntVar(&cfg.Capacity, "capacity",
		getEnvInt("BUFBENCH_CAPACITY", 64*1024),
		"Ring buffer capacity in bytes (env: BUFBENCH_CAPACITY)")

	flag.IntVar(&cfg.ExtentSize, "extent-size",
		getEnvInt("BUFBENCH_EXTENT_SIZE", 4096),
		"Dynamic buffer extent size in bytes (env: BUFBENCH_EXTENT_SIZE)")

	flag.IntVar(&cfg.MinFree, "min-free",
		getEnvInt("BUFBENCH_MIN_FREE", 0),
		"Dynamic buffer growth low-water mark, 0 for half an extent (env: BUFBENCH_MIN_FREE)")

	flag.IntVar(&cfg.ChunkSize, "chunk",
		getEnvInt("BUFBENCH_CHUNK", 1400),
		"Per-operation chunk size in bytes (env: BUFBENCH_CHUNK)")

	flag.IntVar(&cfg.TotalBytes, "total",
		getEnvInt("BUFBENCH_TOTAL", 256*1024*1024),
		"Total bytes to move through each buffer (env: BUFBENCH_TOTAL)")

	flag.IntVar(&cfg.MetricsPort, "metrics-port",
		getEnvInt("BUFBENCH_METRICS_PORT", 0),
		"Prometheus metrics port, 0 to disable (env: BUFBENCH_METRICS_PORT)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("BUFBENCH_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: BUFBENCH_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("BUFBENCH_LOG_FORMAT", "text"),
		"Log format: json, text (env: BUFBENCH_LOG_FORMAT)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")

	// Custom usage
	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	if cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
		}
	}

	validShapes := []string{"ring", "dynamic", "both"}
	if !contains(validShapes, cfg.Shape) {
		return fmt.Errorf("invalid shape: %s", cfg.Shape)
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	if cfg.ChunkSize < 1 {
		return fmt.Errorf("invalid chunk size: %d", cfg.ChunkSize)
	}

	if cfg.TotalBytes < 1 {
		return fmt.Errorf("invalid total byte count: %d", cfg.TotalBytes)
	}

	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", cfg.MetricsPort)
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - Staging Buffer Benchmark

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Exercise both buffer shapes with defaults
  %s

  # Ring buffer only, small capacity, verbose
  %s --shape=ring --capacity=4096 --log-level=debug

  # Sizing from a configuration file, metrics exposed
  %s --config=/etc/bufbench/buffer.yaml --metrics-port=9091

  # Run with environment variables
  export BUFBENCH_SHAPE=dynamic
  export BUFBENCH_EXTENT_SIZE=8192
  %s

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
