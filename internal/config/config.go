package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type TimelineDayMode string

const (
	// TimelineDayInstant counts whole 24h periods between absolute instants.
	TimelineDayInstant TimelineDayMode = "instant"
	// TimelineDayCalendar counts calendar days in the configured timezone.
	TimelineDayCalendar TimelineDayMode = "calendar"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	Database DatabaseConfig
	RedisURL string

	Kafka      KafkaConfig
	Cloudinary CloudinaryConfig
	CORS       CORSConfig
	Timeline   TimelineConfig
	Reminder   ReminderConfig
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type CloudinaryConfig struct {
	URL       string
	CloudName string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

// Enabled reports whether enough credentials are present to talk to Cloudinary.
func (c CloudinaryConfig) Enabled() bool {
	return c.URL != "" || (c.CloudName != "" && c.APIKey != "" && c.APISecret != "")
}

type CORSConfig struct {
	AllowedOrigins []string
}

type TimelineConfig struct {
	DayMode  TimelineDayMode
	Location *time.Location
}

type ReminderConfig struct {
	Schedule string
	Window   time.Duration
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:        get("PORT", "8080"),
		Environment: get("ENVIRONMENT", "development"),
		RedisURL:    get("REDIS_URL", ""),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg.Database.URL = get("DATABASE_URL", "")
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var err error
	if cfg.Database.MaxOpenConns, err = atoi(get("DB_MAX_OPEN_CONNS", "25"), "DB_MAX_OPEN_CONNS"); err != nil {
		return nil, err
	}
	if cfg.Database.MaxIdleConns, err = atoi(get("DB_MAX_IDLE_CONNS", "5"), "DB_MAX_IDLE_CONNS"); err != nil {
		return nil, err
	}
	if cfg.Database.ConnMaxLifetime, err = duration(get("DB_CONN_MAX_LIFETIME", "1h"), "DB_CONN_MAX_LIFETIME"); err != nil {
		return nil, err
	}

	cfg.Kafka = KafkaConfig{
		Brokers: splitList(get("KAFKA_BROKERS", "")),
		Topic:   get("EVENTS_TOPIC", "course-service.events"),
	}

	cfg.Cloudinary = CloudinaryConfig{
		URL:       get("CLOUDINARY_URL", ""),
		CloudName: get("CLOUDINARY_CLOUD_NAME", ""),
		APIKey:    get("CLOUDINARY_API_KEY", ""),
		APISecret: get("CLOUDINARY_API_SECRET", ""),
	}
	if cfg.Cloudinary.Timeout, err = duration(get("MEDIA_TIMEOUT", "30s"), "MEDIA_TIMEOUT"); err != nil {
		return nil, err
	}

	cfg.CORS.AllowedOrigins = splitList(get("CORS_ALLOWED_ORIGINS", "http://localhost:5173"))

	mode := TimelineDayMode(strings.ToLower(get("TIMELINE_DAY_MODE", string(TimelineDayInstant))))
	if mode != TimelineDayInstant && mode != TimelineDayCalendar {
		return nil, fmt.Errorf("invalid TIMELINE_DAY_MODE %q: must be instant or calendar", mode)
	}
	loc, err := time.LoadLocation(get("TIMELINE_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMELINE_TIMEZONE: %w", err)
	}
	cfg.Timeline = TimelineConfig{DayMode: mode, Location: loc}

	cfg.Reminder.Schedule = get("REMINDER_SCHEDULE", "@every 1h")
	if strings.EqualFold(cfg.Reminder.Schedule, "off") {
		cfg.Reminder.Schedule = ""
	}
	if cfg.Reminder.Window, err = duration(get("REMINDER_WINDOW", "24h"), "REMINDER_WINDOW"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func atoi(v, key string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}

func duration(v, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
