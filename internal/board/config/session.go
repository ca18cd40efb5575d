package config

import "time"

// SessionConfig содержит настройки сессий доски.
type SessionConfig struct {
	CookieName    string        `yaml:"cookie_name" env:"NOTEBOARD_SESSION_COOKIE" env-default:"noteboard_session"`
	CookieSecure  bool          `yaml:"cookie_secure" env:"NOTEBOARD_SESSION_COOKIE_SECURE" env-default:"false"`
	IdleTTL       time.Duration `yaml:"idle_ttl" env:"NOTEBOARD_SESSION_IDLE_TTL" env-default:"30m"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"NOTEBOARD_SESSION_SWEEP_INTERVAL" env-default:"1m"`
	ResolveLimit  int           `yaml:"resolve_limit" env:"NOTEBOARD_SESSION_RESOLVE_LIMIT" env-default:"8"`
	MaxSessions   int           `yaml:"max_sessions" env:"NOTEBOARD_SESSION_MAX" env-default:"10000"`
}
