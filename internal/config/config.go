package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	CarrierAddress     string
	AuthSecret         string
	SessionTTL         time.Duration
	QueuePollInterval  time.Duration
	AWBPollInterval    time.Duration
	TrackerPoolSize    int
	TrackerBatchSize   int
	ShutdownTimeout    time.Duration
	ReportSnapshotSpec string
}

const (
	defaultRunAddress         = ":8080"
	defaultAuthSecret         = "change-me-in-production"
	defaultSessionTTL         = 12 * time.Hour
	defaultQueuePollInterval  = 5 * time.Second
	defaultAWBPollInterval    = 15 * time.Minute
	defaultTrackerPoolSize    = 4
	defaultTrackerBatchSize   = 32
	defaultShutdownTimeout    = 10 * time.Second
	defaultReportSnapshotSpec = "0 4 * * *"
)

// Load parses configuration from .env (if present), environment variables
// and flags. Flags win over environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		CarrierAddress:     getString(lookup, "CARRIER_ADDRESS", ""),
		AuthSecret:         getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		SessionTTL:         getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		QueuePollInterval:  getDuration(lookup, "QUEUE_POLL_INTERVAL", defaultQueuePollInterval),
		AWBPollInterval:    getDuration(lookup, "AWB_POLL_INTERVAL", defaultAWBPollInterval),
		TrackerPoolSize:    getInt(lookup, "TRACKER_POOL_SIZE", defaultTrackerPoolSize),
		TrackerBatchSize:   getInt(lookup, "TRACKER_BATCH_SIZE", defaultTrackerBatchSize),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		ReportSnapshotSpec: getString(lookup, "REPORT_SNAPSHOT_SPEC", defaultReportSnapshotSpec),
	}

	fs := flag.NewFlagSet("backoffice", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		queuePollStr       = cfg.QueuePollInterval.String()
		awbPollStr         = cfg.AWBPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.CarrierAddress, "r", cfg.CarrierAddress, "Carrier tracking API base URL")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing session tokens")
	fs.IntVar(&cfg.TrackerPoolSize, "tracker-pool", cfg.TrackerPoolSize, "Number of concurrent AWB tracking workers")
	fs.IntVar(&cfg.TrackerBatchSize, "tracker-batch", cfg.TrackerBatchSize, "Maximum archive records per tracking batch")
	fs.StringVar(&queuePollStr, "queue-poll-interval", queuePollStr, "Interval between queue snapshot polls")
	fs.StringVar(&awbPollStr, "awb-poll-interval", awbPollStr, "Interval between carrier tracking polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.ReportSnapshotSpec, "report-snapshot", cfg.ReportSnapshotSpec, "Cron spec for the daily report snapshot")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.QueuePollInterval, err = time.ParseDuration(queuePollStr); err != nil {
		return nil, fmt.Errorf("invalid queue poll interval: %w", err)
	}

	if cfg.AWBPollInterval, err = time.ParseDuration(awbPollStr); err != nil {
		return nil, fmt.Errorf("invalid awb poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if cfg.TrackerPoolSize <= 0 {
		cfg.TrackerPoolSize = defaultTrackerPoolSize
	}

	if cfg.TrackerBatchSize <= 0 {
		cfg.TrackerBatchSize = defaultTrackerBatchSize
	}

	if cfg.QueuePollInterval <= 0 {
		cfg.QueuePollInterval = defaultQueuePollInterval
	}

	if cfg.AWBPollInterval <= 0 {
		cfg.AWBPollInterval = defaultAWBPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
