package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Redis     RedisConfig
	NATS      NATSConfig
	Session   SessionConfig
	Search    SearchConfig
	Chat      ChatConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NATSConfig configures the event bus. An empty URL disables eventing and
// the audit trail.
type NATSConfig struct {
	URL string
}

type SessionConfig struct {
	Secret string
	Expiry time.Duration
}

// SearchConfig points at the downstream AI search service.
type SearchConfig struct {
	URL     string
	Timeout time.Duration
}

// ChatConfig holds the governance limits applied to every client.
type ChatConfig struct {
	MaxMessagesPerDay int
	MaxMessageLength  int
	DenylistPath      string
}

// RateLimitConfig throttles anonymous session creation per source IP.
type RateLimitConfig struct {
	SessionPerMinute int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Load .env file if it exists (ignore error if missing)
	_ = k.Load(file.Provider(".env"), dotenv.Parser())

	// Load environment variables (override .env)
	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, "_", "."))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: k.String("server.host"),
			Port: k.Int("server.port"),
		},
		DB: DBConfig{
			Host:     k.String("db.host"),
			Port:     k.Int("db.port"),
			User:     k.String("db.user"),
			Password: k.String("db.password"),
			Name:     k.String("db.name"),
			SSLMode:  k.String("db.sslmode"),
			MaxConns: int32(k.Int("db.max.conns")),
		},
		Redis: RedisConfig{
			Host:     k.String("redis.host"),
			Port:     k.Int("redis.port"),
			Password: k.String("redis.password"),
			DB:       k.Int("redis.db"),
		},
		NATS: NATSConfig{
			URL: k.String("nats.url"),
		},
		Session: SessionConfig{
			Secret: k.String("session.secret"),
		},
		Search: SearchConfig{
			URL: k.String("search.url"),
		},
		Chat: ChatConfig{
			MaxMessagesPerDay: k.Int("chat.max.messages.per.day"),
			MaxMessageLength:  k.Int("chat.max.message.length"),
			DenylistPath:      k.String("chat.denylist.path"),
		},
		RateLimit: RateLimitConfig{
			SessionPerMinute: k.Int("ratelimit.session.per.minute"),
		},
		Log: LogConfig{
			Level:  k.String("log.level"),
			Format: k.String("log.format"),
		},
	}

	if origins := k.String("cors.allowed.origins"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, o)
			}
		}
	}

	// Apply defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.DB.Host == "" {
		cfg.DB.Host = "localhost"
	}
	if cfg.DB.Port == 0 {
		cfg.DB.Port = 5432
	}
	if cfg.DB.User == "" {
		cfg.DB.User = "chatgate"
	}
	if cfg.DB.Name == "" {
		cfg.DB.Name = "chatgate"
	}
	if cfg.DB.SSLMode == "" {
		cfg.DB.SSLMode = "disable"
	}
	if cfg.DB.MaxConns == 0 {
		cfg.DB.MaxConns = 25
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Chat.MaxMessagesPerDay == 0 {
		cfg.Chat.MaxMessagesPerDay = 10
	}
	if cfg.Chat.MaxMessageLength == 0 {
		cfg.Chat.MaxMessageLength = 300
	}
	if cfg.RateLimit.SessionPerMinute == 0 {
		cfg.RateLimit.SessionPerMinute = 30
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "debug"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	// Parse durations
	sessionExpStr := k.String("session.expiry")
	if sessionExpStr == "" {
		sessionExpStr = "720h"
	}
	cfg.Session.Expiry, err = time.ParseDuration(sessionExpStr)
	if err != nil {
		return nil, fmt.Errorf("parsing session expiry: %w", err)
	}

	searchTimeoutStr := k.String("search.timeout")
	if searchTimeoutStr == "" {
		searchTimeoutStr = "30s"
	}
	cfg.Search.Timeout, err = time.ParseDuration(searchTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("parsing search timeout: %w", err)
	}

	return cfg, nil
}
