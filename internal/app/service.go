// Package service wires the command parser, the ranking store, and the
// account resolver into the bot's message dispatcher.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/desierto/ranky/internal/adapters/chat"
	"github.com/desierto/ranky/internal/adapters/repository"
	"github.com/desierto/ranky/internal/adapters/riot"
	"github.com/desierto/ranky/internal/domain/command"
	"github.com/desierto/ranky/pkg/logger"
	"github.com/desierto/ranky/pkg/metrics"
)

// successAddMessage is the literal acknowledgement for add commands.
const successAddMessage = "Account successfully added to the ranking"

// embedColor is the leaderboard embed color.
const embedColor = 0x000000

// Resolver turns a raw account id into a display-ready account.
type Resolver interface {
	Resolve(ctx context.Context, id string) (riot.Account, error)
}

// Service dispatches inbound chat messages. It is stateless across messages;
// every message is handled independently.
type Service struct {
	client   chat.Client
	resolver Resolver
	parser   *command.Parser
	store    *repository.Store

	prefix         string
	configChannel  string
	scanWindow     int
	fetchTimeout   time.Duration
	reportNotFound bool
	trimAccounts   bool
	dedupeAccounts bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithPrefix sets the command prefix.
func WithPrefix(prefix string) Option {
	return func(s *Service) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithConfigChannel sets the configuration channel name.
func WithConfigChannel(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.configChannel = name
		}
	}
}

// WithScanWindow bounds store reads to the last n messages.
func WithScanWindow(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.scanWindow = n
		}
	}
}

// WithFetchTimeout bounds a single history fetch round trip.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithReportNotFound makes add/query against unknown rankings answer with an
// error message instead of staying silent.
func WithReportNotFound(report bool) Option {
	return func(s *Service) {
		s.reportNotFound = report
	}
}

// WithTrimAccounts trims surrounding whitespace from /addMultiple entries.
func WithTrimAccounts(trim bool) Option {
	return func(s *Service) {
		s.trimAccounts = trim
	}
}

// WithDedupeAccounts drops repeated ids within one /addMultiple command.
func WithDedupeAccounts(dedupe bool) Option {
	return func(s *Service) {
		s.dedupeAccounts = dedupe
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service over the given chat client and resolver.
func New(client chat.Client, resolver Resolver, opts ...Option) *Service {
	s := &Service{
		client:        client,
		resolver:      resolver,
		prefix:        "!",
		configChannel: "desarrollo-ranky",
		scanWindow:    100,
		fetchTimeout:  10 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.parser = command.NewParser(
		command.WithPrefix(s.prefix),
		command.WithTrimAccounts(s.trimAccounts),
		command.WithDedupeAccounts(s.dedupeAccounts),
	)
	s.store = repository.New(client,
		repository.WithChannelName(s.configChannel),
		repository.WithScanWindow(s.scanWindow),
		repository.WithFetchTimeout(s.fetchTimeout),
		repository.WithLogger(s.logger.Named("store")),
	)

	return s
}

// HandleMessage dispatches one inbound message. channelID is the channel the
// message arrived in; responses go back there, while ranking state lives in
// the configuration channel. The returned error is for the caller's logging;
// user-visible reporting has already happened by the time it is non-nil.
func (s *Service) HandleMessage(ctx context.Context, channelID, content string) error {
	cmd, err := s.parser.Parse(content)
	if err != nil {
		// Malformed arguments on a recognized prefix: echo and re-signal.
		return s.report(ctx, channelID, err)
	}
	if cmd.Kind == command.KindNone {
		return nil
	}

	metrics.RecordCommandParsed(cmd.Kind.String())
	s.logger.Debug(ctx, "command received",
		logger.String("kind", cmd.Kind.String()),
		logger.String("ranking", cmd.Ranking),
	)

	switch cmd.Kind {
	case command.KindCreate:
		err = s.createRanking(ctx, channelID, cmd.Ranking)
	case command.KindQuery:
		err = s.queryRanking(ctx, channelID, cmd.Ranking)
	case command.KindAddAccount:
		err = s.addAccounts(ctx, channelID, cmd.Ranking, []string{cmd.Account})
	case command.KindAddMultiple:
		err = s.addAccounts(ctx, channelID, cmd.Ranking, cmd.Accounts)
	case command.KindSetDeadline, command.KindRemoveAccount:
		// Recognized intents with no behavior yet; deliberately silent.
		return nil
	}

	if err != nil {
		metrics.RecordCommandError(cmd.Kind.String())
		return err
	}
	metrics.RecordCommandCompleted(cmd.Kind.String())
	return nil
}

func (s *Service) createRanking(ctx context.Context, channelID, name string) error {
	channel, err := s.store.FindConfigChannel(ctx)
	if err != nil {
		return s.report(ctx, channelID, err)
	}

	unlock := s.store.LockName(channel.ID, name)
	defer unlock()

	exists, err := s.store.Exists(ctx, channel.ID, name)
	if err != nil {
		return err
	}
	if exists {
		return s.report(ctx, channelID, repository.ErrRankingAlreadyExists)
	}
	return s.store.Create(ctx, channel.ID, name)
}

func (s *Service) queryRanking(ctx context.Context, channelID, name string) error {
	channel, err := s.store.FindConfigChannel(ctx)
	if err != nil {
		return s.report(ctx, channelID, err)
	}

	rec, err := s.store.Find(ctx, channel.ID, name)
	if err != nil {
		if errors.Is(err, repository.ErrRankingNotFound) {
			return s.notFound(ctx, channelID, name)
		}
		return err
	}

	accounts := make([]riot.Account, 0, len(rec.Config.Accounts))
	for _, id := range rec.Config.Accounts {
		account, err := s.resolver.Resolve(ctx, id)
		if err != nil {
			if errors.Is(err, riot.ErrAccountNotFound) {
				return s.report(ctx, channelID, err)
			}
			return err
		}
		accounts = append(accounts, account)
	}
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].Before(accounts[j])
	})

	lines := make([]string, 0, len(accounts))
	for _, a := range accounts {
		lines = append(lines, a.RankingLine())
	}

	_ = s.client.SendTyping(ctx, channelID)
	embed := chat.Embed{
		Title:       fmt.Sprintf("\U0001F451 RANKING %s \U0001F451", strings.ToUpper(name)),
		Description: strings.Join(lines, "\n"),
		Color:       embedColor,
		Fields: []chat.EmbedField{
			{Name: "Creator", Value: "Maiky"},
		},
	}
	if err := s.client.PostEmbed(ctx, channelID, embed); err != nil {
		return fmt.Errorf("send leaderboard: %w", err)
	}
	return nil
}

func (s *Service) addAccounts(ctx context.Context, channelID, name string, ids []string) error {
	channel, err := s.store.FindConfigChannel(ctx)
	if err != nil {
		return s.report(ctx, channelID, err)
	}

	unlock := s.store.LockName(channel.ID, name)
	defer unlock()

	rec, err := s.store.Find(ctx, channel.ID, name)
	if err != nil {
		if errors.Is(err, repository.ErrRankingNotFound) {
			return s.notFound(ctx, channelID, name)
		}
		return err
	}

	rec.Config = rec.Config.WithAccounts(ids)

	_ = s.client.SendTyping(ctx, channelID)
	if err := s.store.Update(ctx, channel.ID, rec); err != nil {
		return err
	}
	metrics.RecordAccountsAdded(len(ids))

	if _, err := s.client.PostMessage(ctx, channelID, successAddMessage); err != nil {
		return fmt.Errorf("send acknowledgement: %w", err)
	}
	return nil
}

// notFound applies the configured policy for commands against unknown
// rankings: the reference behavior is a silent no-op.
func (s *Service) notFound(ctx context.Context, channelID, name string) error {
	if !s.reportNotFound {
		s.logger.Debug(ctx, "unknown ranking ignored", logger.String("ranking", name))
		return nil
	}
	return s.report(ctx, channelID, repository.ErrRankingNotFound)
}

// report echoes a domain error into the originating channel, then re-signals
// it to the caller.
func (s *Service) report(ctx context.Context, channelID string, err error) error {
	if _, sendErr := s.client.PostMessage(ctx, channelID, err.Error()); sendErr != nil {
		s.logger.Error(ctx, "failed to report error", logger.Error(sendErr))
	}
	return err
}
