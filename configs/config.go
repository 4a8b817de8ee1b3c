package configs

import (
	"os"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config is the service configuration, read once at startup from the
// environment (optionally seeded from a .env file).
type Config struct {
	Port           int
	UploadDir      string
	MaxUploadBytes int64
	BatchWorkers   int
	CleanupMaxAge  int // seconds a preview/upload file may linger
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.UploadDir, validation.Required),
		validation.Field(&c.MaxUploadBytes, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.BatchWorkers, validation.Min(1)),
		validation.Field(&c.CleanupMaxAge, validation.Min(1)),
	)
}

// Load reads configuration from the environment. A .env file is picked up
// when present, matching local development setups.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug(".env not found, using process environment")
	}
	c := &Config{
		Port:           envInt("PORT", 8080),
		UploadDir:      envStr("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: int64(envInt("MAX_UPLOAD_MB", 16)) << 20,
		BatchWorkers:   envInt("BATCH_WORKERS", 4),
		CleanupMaxAge:  envInt("CLEANUP_MAX_AGE_SECONDS", 3600),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Logging configures the shared logrus logger.
func Logging(service string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stdout)
	if lvl, err := log.ParseLevel(envStr("LOG_LEVEL", "info")); err == nil {
		log.SetLevel(lvl)
	}
	log.WithField("service", service).Info("logging configured")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
