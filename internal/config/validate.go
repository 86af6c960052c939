package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// Validate checks Config for production-critical problems.
// It collects all errors into a single joined error.
func (c *Config) Validate() error {
	var errs []string

	// Session secret
	if len(c.Session.Secret) < 32 {
		errs = append(errs, "SESSION_SECRET must be at least 32 characters")
	}

	// Search service
	if c.Search.URL == "" {
		errs = append(errs, "SEARCH_URL is required")
	} else if u, err := url.Parse(c.Search.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, "SEARCH_URL must be an absolute URL")
	}

	// Governance limits
	if c.Chat.MaxMessagesPerDay < 1 {
		errs = append(errs, fmt.Sprintf("CHAT_MAX_MESSAGES_PER_DAY must be positive, got %d", c.Chat.MaxMessagesPerDay))
	}
	if c.Chat.MaxMessageLength < 1 {
		errs = append(errs, fmt.Sprintf("CHAT_MAX_MESSAGE_LENGTH must be positive, got %d", c.Chat.MaxMessageLength))
	}
	if c.RateLimit.SessionPerMinute < 1 {
		errs = append(errs, fmt.Sprintf("RATELIMIT_SESSION_PER_MINUTE must be positive, got %d", c.RateLimit.SessionPerMinute))
	}

	// DB password
	if c.DB.Password == "" {
		errs = append(errs, "DB_PASSWORD is required")
	}

	// Port ranges
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT must be 1-65535, got %d", c.Server.Port))
	}
	if c.DB.Port < 1 || c.DB.Port > 65535 {
		errs = append(errs, fmt.Sprintf("DB_PORT must be 1-65535, got %d", c.DB.Port))
	}
	if c.Redis.Port < 1 || c.Redis.Port > 65535 {
		errs = append(errs, fmt.Sprintf("REDIS_PORT must be 1-65535, got %d", c.Redis.Port))
	}

	// Eventing: warn only, the gate works without the audit trail
	if c.NATS.URL == "" {
		slog.Warn("NATS_URL is empty, governance events and the audit trail are disabled")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  " + strings.Join(errs, "\n  "))
	}
	return nil
}
