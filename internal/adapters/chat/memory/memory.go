// Package memory provides an in-memory chat.Client used by tests. History is
// kept newest first, matching the platform contract.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/desierto/ranky/internal/adapters/chat"
)

// Client is an in-memory chat platform. The zero value is not usable; call
// New.
type Client struct {
	mu       sync.Mutex
	channels []chat.Channel
	messages map[string][]chat.Message // channel id -> newest first
	embeds   map[string][]chat.Embed
	typing   map[string]int
	fetchErr error
}

// New creates an empty in-memory chat platform.
func New() *Client {
	return &Client{
		messages: make(map[string][]chat.Message),
		embeds:   make(map[string][]chat.Embed),
		typing:   make(map[string]int),
	}
}

// AddChannel registers a channel and returns it.
func (c *Client) AddChannel(name string) chat.Channel {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := chat.Channel{ID: uuid.NewString(), Name: name}
	c.channels = append(c.channels, ch)
	return ch
}

// FailFetch makes every subsequent RecentMessages call return err. Pass nil
// to restore normal behavior.
func (c *Client) FailFetch(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchErr = err
}

// ChannelsByName lists channels matching name, case-insensitively.
func (c *Client) ChannelsByName(_ context.Context, name string) ([]chat.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []chat.Channel
	for _, ch := range c.channels {
		if strings.EqualFold(ch.Name, name) {
			out = append(out, ch)
		}
	}
	return out, nil
}

// RecentMessages returns up to limit messages, newest first.
func (c *Client) RecentMessages(ctx context.Context, channelID string, limit int) ([]chat.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fetchErr != nil {
		return nil, c.fetchErr
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch canceled: %w", err)
	}
	msgs, ok := c.messages[channelID]
	if !ok && !c.hasChannel(channelID) {
		return nil, fmt.Errorf("%w: %s", chat.ErrUnknownChannel, channelID)
	}
	if limit < len(msgs) {
		msgs = msgs[:limit]
	}
	out := make([]chat.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// PostMessage prepends a new message and returns its id.
func (c *Client) PostMessage(_ context.Context, channelID, content string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasChannel(channelID) {
		return "", fmt.Errorf("%w: %s", chat.ErrUnknownChannel, channelID)
	}
	m := chat.Message{ID: uuid.NewString(), Content: content}
	c.messages[channelID] = append([]chat.Message{m}, c.messages[channelID]...)
	return m.ID, nil
}

// EditMessage replaces a message's content in place.
func (c *Client) EditMessage(_ context.Context, channelID, messageID, content string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	msgs := c.messages[channelID]
	for i := range msgs {
		if msgs[i].ID == messageID {
			msgs[i].Content = content
			return nil
		}
	}
	return fmt.Errorf("%w: %s", chat.ErrUnknownMessage, messageID)
}

// PostEmbed records a rich response.
func (c *Client) PostEmbed(_ context.Context, channelID string, embed chat.Embed) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasChannel(channelID) {
		return fmt.Errorf("%w: %s", chat.ErrUnknownChannel, channelID)
	}
	c.embeds[channelID] = append(c.embeds[channelID], embed)
	return nil
}

// SendTyping counts typing indicators per channel.
func (c *Client) SendTyping(_ context.Context, channelID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.typing[channelID]++
	return nil
}

// Messages returns a copy of a channel's history, newest first.
func (c *Client) Messages(channelID string) []chat.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]chat.Message, len(c.messages[channelID]))
	copy(out, c.messages[channelID])
	return out
}

// Embeds returns the embeds recorded for a channel.
func (c *Client) Embeds(channelID string) []chat.Embed {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]chat.Embed, len(c.embeds[channelID]))
	copy(out, c.embeds[channelID])
	return out
}

// TypingCount returns how many typing indicators a channel received.
func (c *Client) TypingCount(channelID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.typing[channelID]
}

func (c *Client) hasChannel(id string) bool {
	for _, ch := range c.channels {
		if ch.ID == id {
			return true
		}
	}
	return false
}
