// Package repository makes the configuration channel's recent history behave
// like a small keyed store of ranking records. Every read is a bounded scan
// of the last N messages; rankings older than the window are invisible to
// all operations.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/desierto/ranky/internal/adapters/chat"
	"github.com/desierto/ranky/internal/domain/ranking"
	"github.com/desierto/ranky/pkg/logger"
	"github.com/desierto/ranky/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultChannelName  = "desarrollo-ranky"
	defaultScanWindow   = 100
	defaultFetchTimeout = 10 * time.Second
)

// Record pairs a ranking configuration with its storage identity, the id of
// the message holding its current serialized state. Updates edit that same
// message, so the identity never changes over a record's lifetime.
type Record struct {
	MessageID string
	Config    ranking.Config
}

// Store scans, creates, and updates ranking records in the configuration
// channel.
type Store struct {
	client       chat.Client
	channelName  string
	scanWindow   int
	fetchTimeout time.Duration
	logger       logger.Logger

	// mu guards locks; each entry serializes check-then-act sequences for
	// one (channel, lowercase name) pair within this process.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Store over the given chat client.
func New(client chat.Client, opts ...Option) *Store {
	s := &Store{
		client:       client,
		channelName:  defaultChannelName,
		scanWindow:   defaultScanWindow,
		fetchTimeout: defaultFetchTimeout,
		locks:        make(map[string]*sync.Mutex),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("store")
	}
	return s
}

// FindConfigChannel locates the single configuration channel by its fixed
// name among all channels visible to the bot.
func (s *Store) FindConfigChannel(ctx context.Context) (chat.Channel, error) {
	channels, err := s.client.ChannelsByName(ctx, s.channelName)
	if err != nil {
		return chat.Channel{}, fmt.Errorf("list channels: %w", err)
	}
	if len(channels) == 0 {
		return chat.Channel{}, ErrConfigChannelNotFound
	}
	return channels[0], nil
}

// LockName serializes operations for one ranking name in one channel. The
// returned func releases the lock. Holding it across an exists/create or
// find/update sequence closes the check-then-act race within this process.
func (s *Store) LockName(channelID, name string) func() {
	key := channelID + "\x00" + strings.ToLower(name)

	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Exists reports whether any message inside the scan window decodes to a
// ranking whose name matches case-insensitively.
func (s *Store) Exists(ctx context.Context, channelID, name string) (bool, error) {
	_, err := s.find(ctx, channelID, name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrRankingNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Find returns the first record matching name in retrieval order (newest
// first). Returns ErrRankingNotFound when no message in the window matches.
func (s *Store) Find(ctx context.Context, channelID, name string) (Record, error) {
	return s.find(ctx, channelID, name)
}

// Create posts a new message holding the serialized empty configuration for
// name. Uniqueness is the caller's concern: check Exists under LockName
// first.
func (s *Store) Create(ctx context.Context, channelID, name string) error {
	body, err := ranking.New(name).Encode()
	if err != nil {
		return err
	}
	if _, err := s.client.PostMessage(ctx, channelID, body); err != nil {
		return fmt.Errorf("post ranking %q: %w", name, err)
	}
	metrics.RecordRankingCreated()
	s.logger.Info(ctx, "ranking created",
		logger.String("name", name),
		logger.String("channel", channelID),
	)
	return nil
}

// Update replaces the content of the record's message with its current
// configuration. The record must come from a Find against the same channel.
func (s *Store) Update(ctx context.Context, channelID string, rec Record) error {
	body, err := rec.Config.Encode()
	if err != nil {
		return err
	}
	if err := s.client.EditMessage(ctx, channelID, rec.MessageID, body); err != nil {
		return fmt.Errorf("edit ranking %q: %w", rec.Config.Name, err)
	}
	metrics.RecordRankingUpdate()
	return nil
}

func (s *Store) find(ctx context.Context, channelID, name string) (Record, error) {
	msgs, err := s.scan(ctx, channelID)
	if err != nil {
		return Record{}, err
	}
	for _, m := range msgs {
		cfg, ok := ranking.Decode(m.Content)
		if !ok {
			continue
		}
		if strings.EqualFold(cfg.Name, name) {
			return Record{MessageID: m.ID, Config: cfg}, nil
		}
	}
	return Record{}, ErrRankingNotFound
}

// scan fetches the scan window with a bounded timeout. Expiry surfaces as a
// transport failure, never as not-found.
func (s *Store) scan(ctx context.Context, channelID string) ([]chat.Message, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	start := time.Now()
	msgs, err := s.client.RecentMessages(fetchCtx, channelID, s.scanWindow)
	metrics.RecordStoreScan()
	metrics.RecordHistoryFetchLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, fmt.Errorf("fetch history for channel %s: %w", channelID, err)
	}
	return msgs, nil
}
