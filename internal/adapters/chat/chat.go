// Package chat defines the chat-platform contract consumed by the store and
// the dispatcher. Implementations live in subpackages; the rest of the bot
// never imports a platform SDK directly.
package chat

import "context"

// Channel identifies a text channel visible to the bot.
type Channel struct {
	ID   string
	Name string
}

// Message is one channel message as returned by a history fetch.
type Message struct {
	ID      string
	Content string
}

// EmbedField is one labeled field inside an Embed.
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Embed is the platform-neutral shape of a rich response.
type Embed struct {
	Title       string
	Description string
	Color       int
	Fields      []EmbedField
}

// Client is the full platform surface the bot depends on. History fetches
// return messages newest first.
type Client interface {
	// ChannelsByName lists text channels matching name, case-insensitively.
	ChannelsByName(ctx context.Context, name string) ([]Channel, error)

	// RecentMessages fetches up to limit most-recent messages, newest first.
	RecentMessages(ctx context.Context, channelID string, limit int) ([]Message, error)

	// PostMessage sends content and returns the new message's id.
	PostMessage(ctx context.Context, channelID, content string) (string, error)

	// EditMessage replaces the content of an existing message in place.
	EditMessage(ctx context.Context, channelID, messageID, content string) error

	// PostEmbed sends a rich response.
	PostEmbed(ctx context.Context, channelID string, embed Embed) error

	// SendTyping triggers a typing indicator. Best-effort; failures carry no
	// contract.
	SendTyping(ctx context.Context, channelID string) error
}
