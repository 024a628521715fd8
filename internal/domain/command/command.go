// Package command parses raw chat messages into typed bot commands.
package command

import (
	"strings"
)

// Keyword tokens recognized inside a prefixed message.
const (
	CreateKeyword        = "/create"
	SetDeadlineKeyword   = "/setDeadline"
	AddAccountKeyword    = "/addAccount"
	AddMultipleKeyword   = "/addMultiple"
	RemoveAccountKeyword = "/removeAccount"
	RankingKeyword       = "/ranking"
)

// Kind identifies which command a message carries.
type Kind int

const (
	// KindNone means the message is not a command.
	KindNone Kind = iota
	KindCreate
	KindSetDeadline
	KindAddAccount
	KindAddMultiple
	KindRemoveAccount
	KindQuery
)

// String returns a stable label for metrics and logs.
func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "create"
	case KindSetDeadline:
		return "set_deadline"
	case KindAddAccount:
		return "add_account"
	case KindAddMultiple:
		return "add_multiple"
	case KindRemoveAccount:
		return "remove_account"
	case KindQuery:
		return "ranking"
	default:
		return "none"
	}
}

// Command is the parsed form of one inbound message.
type Command struct {
	Kind     Kind
	Ranking  string
	Account  string
	Accounts []string
}

// Parser turns raw message text into Commands. It never panics on malformed
// input; anything without the prefix or a known keyword yields KindNone.
type Parser struct {
	prefix string
	trim   bool
	dedupe bool
}

// Option applies a configuration option to the Parser.
type Option func(*Parser)

// WithPrefix sets the command prefix that gates parsing.
func WithPrefix(prefix string) Option {
	return func(p *Parser) {
		if prefix != "" {
			p.prefix = prefix
		}
	}
}

// WithTrimAccounts trims surrounding whitespace from /addMultiple entries.
// The reference behavior keeps entries raw.
func WithTrimAccounts(trim bool) Option {
	return func(p *Parser) {
		p.trim = trim
	}
}

// WithDedupeAccounts drops repeated ids within one /addMultiple command.
func WithDedupeAccounts(dedupe bool) Option {
	return func(p *Parser) {
		p.dedupe = dedupe
	}
}

// NewParser creates a Parser with default configuration.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		prefix: "!",
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// keyword pairs a token with the Kind it selects.
type keyword struct {
	token string
	kind  Kind
}

// keywords are checked by substring containment; when several appear in one
// message the leftmost occurrence wins, so a message maps to exactly one
// command.
var keywords = []keyword{
	{CreateKeyword, KindCreate},
	{SetDeadlineKeyword, KindSetDeadline},
	{AddAccountKeyword, KindAddAccount},
	{AddMultipleKeyword, KindAddMultiple},
	{RemoveAccountKeyword, KindRemoveAccount},
	{RankingKeyword, KindQuery},
}

// Parse reads raw message text into a Command. Messages that do not start
// with the prefix, or contain no known keyword, return KindNone and no error.
func (p *Parser) Parse(raw string) (Command, error) {
	if !strings.HasPrefix(raw, p.prefix) {
		return Command{Kind: KindNone}, nil
	}

	kind := leftmostKind(raw)

	switch kind {
	case KindNone, KindSetDeadline, KindRemoveAccount:
		return Command{Kind: kind}, nil
	case KindCreate, KindQuery:
		name, err := rankingName(raw)
		if err != nil {
			return Command{Kind: KindNone}, err
		}
		return Command{Kind: kind, Ranking: name}, nil
	case KindAddAccount:
		name, err := rankingName(raw)
		if err != nil {
			return Command{Kind: KindNone}, err
		}
		account, err := accountToAdd(raw)
		if err != nil {
			return Command{Kind: KindNone}, err
		}
		return Command{Kind: kind, Ranking: name, Account: account}, nil
	case KindAddMultiple:
		name, err := rankingName(raw)
		if err != nil {
			return Command{Kind: KindNone}, err
		}
		accounts, err := p.accountsToAdd(raw, name)
		if err != nil {
			return Command{Kind: KindNone}, err
		}
		return Command{Kind: kind, Ranking: name, Accounts: accounts}, nil
	}
	return Command{Kind: KindNone}, nil
}

// leftmostKind picks the keyword occurring earliest in the message.
func leftmostKind(raw string) Kind {
	kind := KindNone
	best := len(raw)
	for _, kw := range keywords {
		if idx := strings.Index(raw, kw.token); idx >= 0 && idx < best {
			best = idx
			kind = kw.kind
		}
	}
	return kind
}

// quotedSegments returns the text between each pair of double quotes.
func quotedSegments(raw string) []string {
	parts := strings.Split(raw, `"`)
	segments := make([]string, 0, len(parts)/2)
	for i := 1; i < len(parts); i += 2 {
		segments = append(segments, parts[i])
	}
	return segments
}

// rankingName extracts the first quoted segment.
func rankingName(raw string) (string, error) {
	segments := quotedSegments(raw)
	if len(segments) == 0 {
		return "", ErrMissingRankingName
	}
	return segments[0], nil
}

// accountToAdd rejoins every quoted segment after the ranking name with
// single spaces, so account ids may themselves span several quoted tokens.
func accountToAdd(raw string) (string, error) {
	segments := quotedSegments(raw)
	if len(segments) < 2 {
		return "", ErrMissingAccount
	}
	return strings.Join(segments[1:], " "), nil
}

// accountsToAdd takes the comma-separated list that follows the ranking
// name. The name is located by substring search and skipped along with its
// closing quote and the following separator, mirroring the stored layout
// `"name" a,b,c`.
func (p *Parser) accountsToAdd(raw, name string) ([]string, error) {
	idx := strings.Index(raw, name)
	if idx < 0 {
		return nil, ErrMissingAccount
	}
	start := idx + len(name) + 2
	if start >= len(raw) {
		return nil, ErrMissingAccount
	}
	accounts := strings.Split(raw[start:], ",")
	if p.trim {
		for i := range accounts {
			accounts[i] = strings.TrimSpace(accounts[i])
		}
	}
	if p.dedupe {
		accounts = dedupe(accounts)
	}
	return accounts, nil
}

// dedupe drops repeats while keeping first-occurrence order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
