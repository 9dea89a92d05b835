package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// HTTP
	ListenAddr string

	// Database
	PostgresDSN string

	// Redis (optional; job resolution cache is skipped when unset)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JobCacheTTL   time.Duration

	// SMTP (optional; email delivery is disabled when host is unset)
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// Firebase (optional; push delivery is disabled when unset)
	FirebaseCredentialsFile string

	// Notification dispatcher
	NotifyQueueSize int
	NotifyWorkers   int

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		ListenAddr:      ":8080",
		JobCacheTTL:     10 * time.Minute,
		SMTPPort:        587,
		NotifyQueueSize: 256,
		NotifyWorkers:   4,
		LogLevel:        "info",
	}

	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}

	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		db, err := strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	if ttl := os.Getenv("JOB_CACHE_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid JOB_CACHE_TTL: %w", err)
		}
		cfg.JobCacheTTL = d
	}

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	if port := os.Getenv("SMTP_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
		}
		cfg.SMTPPort = p
	}
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPass = os.Getenv("SMTP_PASS")
	cfg.SMTPFrom = os.Getenv("SMTP_FROM")
	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUser
	}

	cfg.FirebaseCredentialsFile = os.Getenv("FIREBASE_CREDENTIALS_FILE")

	if size := os.Getenv("NOTIFY_QUEUE_SIZE"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil {
			return nil, fmt.Errorf("invalid NOTIFY_QUEUE_SIZE: %w", err)
		}
		cfg.NotifyQueueSize = n
	}

	if workers := os.Getenv("NOTIFY_WORKERS"); workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil {
			return nil, fmt.Errorf("invalid NOTIFY_WORKERS: %w", err)
		}
		cfg.NotifyWorkers = n
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres DSN is empty")
	}

	if c.NotifyQueueSize < 1 {
		return fmt.Errorf("notify queue size must be positive: %d", c.NotifyQueueSize)
	}

	if c.NotifyWorkers < 1 || c.NotifyWorkers > 64 {
		return fmt.Errorf("notify workers must be between 1 and 64: %d", c.NotifyWorkers)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}
