// Package discord adapts a discordgo gateway session to the chat.Client
// contract.
package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/desierto/ranky/internal/adapters/chat"
	"github.com/desierto/ranky/pkg/logger"
)

// Session wraps a discordgo session. It implements chat.Client.
type Session struct {
	s      *discordgo.Session
	logger logger.Logger
}

// Option applies a configuration option to the Session.
type Option func(*Session)

// WithLogger sets a custom logger for the adapter.
func WithLogger(l logger.Logger) Option {
	return func(c *Session) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a gateway session for the given bot token. The session is not
// connected until Open is called.
func New(token string, opts ...Option) (*Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	c := &Session{s: s}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("discord")
	}
	return c, nil
}

// OnMessage registers fn for every inbound message that was not authored by
// the bot itself. Must be called before Open.
func (c *Session) OnMessage(fn func(channelID, authorID, content string)) {
	c.s.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if s.State.User != nil && m.Author.ID == s.State.User.ID {
			return
		}
		fn(m.ChannelID, m.Author.ID, m.Content)
	})
}

// Open connects the websocket session.
func (c *Session) Open() error {
	if err := c.s.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	c.logger.Info(context.Background(), "gateway connected",
		logger.Int("guilds", len(c.s.State.Guilds)),
	)
	return nil
}

// Close disconnects the websocket session.
func (c *Session) Close() error {
	if err := c.s.Close(); err != nil {
		return fmt.Errorf("close discord session: %w", err)
	}
	return nil
}

// ChannelsByName lists guild text channels whose name matches,
// case-insensitively, across every guild the bot can see.
func (c *Session) ChannelsByName(ctx context.Context, name string) ([]chat.Channel, error) {
	var out []chat.Channel
	for _, g := range c.s.State.Guilds {
		channels, err := c.s.GuildChannels(g.ID, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("list channels for guild %s: %w", g.ID, err)
		}
		for _, ch := range channels {
			if ch.Type != discordgo.ChannelTypeGuildText {
				continue
			}
			if strings.EqualFold(ch.Name, name) {
				out = append(out, chat.Channel{ID: ch.ID, Name: ch.Name})
			}
		}
	}
	return out, nil
}

// RecentMessages fetches up to limit most-recent messages, newest first, as
// the Discord history API returns them.
func (c *Session) RecentMessages(ctx context.Context, channelID string, limit int) ([]chat.Message, error) {
	msgs, err := c.s.ChannelMessages(channelID, limit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch messages for channel %s: %w", channelID, err)
	}
	out := make([]chat.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, chat.Message{ID: m.ID, Content: m.Content})
	}
	return out, nil
}

// PostMessage sends content and returns the new message id.
func (c *Session) PostMessage(ctx context.Context, channelID, content string) (string, error) {
	m, err := c.s.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("send message to channel %s: %w", channelID, err)
	}
	return m.ID, nil
}

// EditMessage replaces the content of an existing message.
func (c *Session) EditMessage(ctx context.Context, channelID, messageID, content string) error {
	if _, err := c.s.ChannelMessageEdit(channelID, messageID, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("edit message %s in channel %s: %w", messageID, channelID, err)
	}
	return nil
}

// PostEmbed sends a rich embed response.
func (c *Session) PostEmbed(ctx context.Context, channelID string, embed chat.Embed) error {
	fields := make([]*discordgo.MessageEmbedField, 0, len(embed.Fields))
	for _, f := range embed.Fields {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	msg := &discordgo.MessageEmbed{
		Title:       embed.Title,
		Description: embed.Description,
		Color:       embed.Color,
		Fields:      fields,
	}
	if _, err := c.s.ChannelMessageSendEmbed(channelID, msg, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send embed to channel %s: %w", channelID, err)
	}
	return nil
}

// SendTyping triggers the typing indicator.
func (c *Session) SendTyping(ctx context.Context, channelID string) error {
	if err := c.s.ChannelTyping(channelID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send typing to channel %s: %w", channelID, err)
	}
	return nil
}
