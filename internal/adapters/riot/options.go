// Package riot resolves raw riot-id strings into display-ready ranked
// accounts via the Riot HTTP API.
package riot

import (
	"net/http"

	"github.com/desierto/ranky/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithAccountBaseURL overrides the regional host for account-v1 lookups.
func WithAccountBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.accountBaseURL = u
		}
	}
}

// WithPlatformBaseURL overrides the platform host for league-v4 lookups.
func WithPlatformBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.platformBaseURL = u
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}
