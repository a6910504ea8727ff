// Package config loads runtime settings from a .env file, the process
// environment and command-line flags, in that order of precedence
// (flags win).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

type Config struct {
	HTTPAddr    string
	GRPCAddr    string
	MySQLDSN    string
	RedisAddr   string
	WorkerCount int
	QueueSize   int
	LogLevel    slog.Level
}

func Default() Config {
	return Config{
		HTTPAddr:    ":8080",
		GRPCAddr:    ":50051",
		WorkerCount: 4,
		QueueSize:   10000,
		LogLevel:    slog.LevelInfo,
	}
}

// Load reads .env (if present) and then the environment on top of Default.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv applies variables found through lookup on top of Default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup("HTTP_ADDR"); ok {
		cfg.HTTPAddr = v
	}
	if v, ok := lookup("GRPC_ADDR"); ok {
		cfg.GRPCAddr = v
	}
	if v, ok := lookup("MYSQL_DSN"); ok {
		cfg.MySQLDSN = v
	}
	if v, ok := lookup("REDIS_ADDR"); ok {
		cfg.RedisAddr = v
	}
	if v, ok := lookup("WORKER_COUNT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("WORKER_COUNT: %w", err)
		}
		cfg.WorkerCount = n
	}
	if v, ok := lookup("QUEUE_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("QUEUE_SIZE: %w", err)
		}
		cfg.QueueSize = n
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		level, err := ParseLevel(v)
		if err != nil {
			return Config{}, err
		}
		cfg.LogLevel = level
	}
	return cfg, nil
}

// BindFlags registers flags that override the loaded values when set.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.HTTPAddr, "http-addr", c.HTTPAddr, "HTTP listen address")
	fs.StringVar(&c.GRPCAddr, "grpc-addr", c.GRPCAddr, "gRPC listen address")
	fs.StringVar(&c.MySQLDSN, "mysql-dsn", c.MySQLDSN, "MySQL DSN for the transaction journal (empty disables it)")
	fs.StringVar(&c.RedisAddr, "redis-addr", c.RedisAddr, "Redis address for the stock mirror and alerts (empty disables it)")
	fs.IntVar(&c.WorkerCount, "workers", c.WorkerCount, "number of sink workers")
	fs.IntVar(&c.QueueSize, "queue-size", c.QueueSize, "event queue capacity")
	fs.Var(&levelValue{&c.LogLevel}, "log-level", "log level (debug, info, warn, error)")
}

func (c Config) Validate() error {
	if c.WorkerCount < 1 {
		return fmt.Errorf("worker count must be at least 1, got %d", c.WorkerCount)
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("queue size cannot be negative, got %d", c.QueueSize)
	}
	return nil
}

func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

// NewLogger returns a JSON logger on stderr and installs it as the default.
func NewLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

type levelValue struct {
	level *slog.Level
}

func (v *levelValue) String() string {
	if v.level == nil {
		return slog.LevelInfo.String()
	}
	return v.level.String()
}

func (v *levelValue) Set(s string) error {
	level, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*v.level = level
	return nil
}

func (v *levelValue) Type() string { return "level" }
