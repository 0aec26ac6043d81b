package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	MQTT         MQTTConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Notification NotificationConfig
	Tickets      TicketsConfig
	Reports      ReportsConfig
	Maintenance  CategoryConfig
	Tooling      CategoryConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	// AllowedOrigins is a comma separated CORS origin list; "*" allows any origin.
	AllowedOrigins string
	InstanceID     string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr          string
	Password      string
	DB            int
	NotifyChannel string
}

// MQTTConfig configures the optional broker sink. An empty broker disables it.
type MQTTConfig struct {
	Broker      string
	ClientID    string
	TopicPrefix string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines operator token parameters.
type AuthConfig struct {
	Enabled               bool
	JWTSecret             string
	AccessTokenTTLMinutes int
}

// NotificationConfig sizes the change-notification pipeline.
type NotificationConfig struct {
	QueueSize int
	SSEBuffer int
}

// TicketsConfig holds lifecycle settings shared by both categories.
type TicketsConfig struct {
	InitialStatusID        int64
	TerminalStatusID       int64
	ListOrder              string
	DescriptionPlaceholder string
	MissingRefPlaceholder  string
}

// ReportsConfig controls period grouping.
type ReportsConfig struct {
	TimeZone string
}

// CategoryConfig holds the settings that differ between maintenance and tooling.
type CategoryConfig struct {
	Locale                string
	InitUpdatedAtOnCreate bool
	DeleteEnabled         bool
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	initialStatus, err := strconv.ParseInt(getEnv("TICKET_INITIAL_STATUS_ID", "1"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TICKET_INITIAL_STATUS_ID: %w", err)
	}
	terminalStatus, err := strconv.ParseInt(getEnv("TICKET_TERMINAL_STATUS_ID", "3"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TICKET_TERMINAL_STATUS_ID: %w", err)
	}

	listOrder := strings.ToLower(getEnv("LIST_ORDER", "desc"))
	if listOrder != "asc" && listOrder != "desc" {
		return nil, fmt.Errorf("invalid LIST_ORDER %q: expected asc or desc", listOrder)
	}

	reportTZ := getEnv("REPORT_TIMEZONE", "UTC")
	if _, err := time.LoadLocation(reportTZ); err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "failtrack"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			AllowedOrigins:        normalizeOrigins(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
			InstanceID:            getEnv("APP_INSTANCE_ID", uuid.NewString()),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:          getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:      os.Getenv("REDIS_PASSWORD"),
			DB:            redisDB,
			NotifyChannel: getEnv("REDIS_NOTIFY_CHANNEL", "failtrack:changes"),
		},
		MQTT: MQTTConfig{
			Broker:      os.Getenv("MQTT_BROKER"),
			ClientID:    getEnv("MQTT_CLIENT_ID", "failtrack-api"),
			TopicPrefix: getEnv("MQTT_TOPIC_PREFIX", "failtrack"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			Enabled:               getEnvAsBool("AUTH_ENABLED", false),
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 720),
		},
		Notification: NotificationConfig{
			QueueSize: getEnvAsInt("NOTIFY_QUEUE_SIZE", 256),
			SSEBuffer: getEnvAsInt("NOTIFY_SSE_BUFFER", 25),
		},
		Tickets: TicketsConfig{
			InitialStatusID:        initialStatus,
			TerminalStatusID:       terminalStatus,
			ListOrder:              listOrder,
			DescriptionPlaceholder: getEnv("TICKET_DESCRIPTION_PLACEHOLDER", "Sin descripción"),
			MissingRefPlaceholder:  getEnv("TICKET_MISSING_REF_PLACEHOLDER", "N/A"),
		},
		Reports: ReportsConfig{
			TimeZone: reportTZ,
		},
		Maintenance: CategoryConfig{
			Locale:                getEnv("MAINTENANCE_LOCALE", "es-ES"),
			InitUpdatedAtOnCreate: getEnvAsBool("MAINTENANCE_INIT_UPDATED_AT", true),
			DeleteEnabled:         getEnvAsBool("MAINTENANCE_DELETE_ENABLED", false),
		},
		Tooling: CategoryConfig{
			Locale:                getEnv("TOOLING_LOCALE", "es-MX"),
			InitUpdatedAtOnCreate: getEnvAsBool("TOOLING_INIT_UPDATED_AT", true),
			DeleteEnabled:         getEnvAsBool("TOOLING_DELETE_ENABLED", true),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Location resolves the report time zone. Load already validated it.
func (r ReportsConfig) Location() *time.Location {
	loc, err := time.LoadLocation(r.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func normalizeOrigins(raw string) string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			origins = append(origins, part)
		}
	}
	return strings.Join(origins, ",")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
