// Package repository makes the configuration channel's recent history behave
// like a small keyed store of ranking records.
package repository

import (
	"time"

	"github.com/desierto/ranky/pkg/logger"
)

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithChannelName sets the fixed configuration channel name.
func WithChannelName(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.channelName = name
		}
	}
}

// WithScanWindow bounds every read to the last n channel messages.
func WithScanWindow(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.scanWindow = n
		}
	}
}

// WithFetchTimeout bounds a single history fetch round trip.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}
