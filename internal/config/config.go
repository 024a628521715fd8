// Package config defines bot configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and environment vars.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsAddr configures the ops HTTP listen address, e.g. ":9080".
	MetricsAddr string `koanf:"metrics_addr"`

	// DiscordToken is the bot token used to open the gateway session.
	DiscordToken string `koanf:"discord_token"`

	// Prefix gates which messages are treated as commands.
	Prefix string `koanf:"prefix"`

	// ConfigChannel names the channel whose messages hold ranking state.
	ConfigChannel string `koanf:"config_channel"`

	// ScanWindow bounds every store read to the last N channel messages.
	ScanWindow int `koanf:"scan_window"`

	// FetchTimeoutMS bounds a single history fetch round trip.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// ReportNotFound makes add/query against unknown rankings answer with an
	// error instead of the reference silent no-op.
	ReportNotFound bool `koanf:"report_not_found"`

	// TrimAccounts trims surrounding whitespace from /addMultiple entries.
	TrimAccounts bool `koanf:"trim_accounts"`

	// DedupeAccounts drops repeated ids within one /addMultiple command.
	DedupeAccounts bool `koanf:"dedupe_accounts"`

	// RiotAPIKey authenticates account lookups.
	RiotAPIKey string `koanf:"riot_api_key"`

	// RiotAccountBaseURL is the regional host for account-v1 lookups.
	RiotAccountBaseURL string `koanf:"riot_account_base_url"`

	// RiotPlatformBaseURL is the platform host for league-v4 lookups.
	RiotPlatformBaseURL string `koanf:"riot_platform_base_url"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:            "info",
		MetricsAddr:         ":9080",
		Prefix:              "!",
		ConfigChannel:       "desarrollo-ranky",
		ScanWindow:          100,
		FetchTimeoutMS:      10_000,
		ReportNotFound:      false,
		TrimAccounts:        false,
		DedupeAccounts:      false,
		RiotAccountBaseURL:  "https://europe.api.riotgames.com",
		RiotPlatformBaseURL: "https://euw1.api.riotgames.com",
	}
	return c
}
