// Package ranking contains the serializable configuration record that
// represents one ranking inside a chat message body.
package ranking

import (
	"encoding/json"
	"fmt"
)

// Config is one ranking's persisted state: its unique name and the ordered
// list of account identifiers. The JSON form is the literal message body
// posted to the configuration channel.
type Config struct {
	Name     string   `json:"name"`
	Accounts []string `json:"accounts"`
}

// New returns an empty Config for name. The account list is non-nil so the
// encoded form is stable under round-trips.
func New(name string) Config {
	return Config{Name: name, Accounts: []string{}}
}

// Encode produces the deterministic message body for c.
func (c Config) Encode() (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode ranking: %w", err)
	}
	return string(b), nil
}

// Decode attempts to read a Config back from a message body. It reports
// ok=false for anything that is not a valid encoding, so callers can scan
// arbitrary channel chatter safely.
func Decode(body string) (Config, bool) {
	var c Config
	if err := json.Unmarshal([]byte(body), &c); err != nil {
		return Config{}, false
	}
	if c.Name == "" {
		return Config{}, false
	}
	if c.Accounts == nil {
		c.Accounts = []string{}
	}
	return c, true
}

// WithAccount returns a copy of c with id appended. Duplicates are kept;
// membership policy is the caller's concern.
func (c Config) WithAccount(id string) Config {
	return c.WithAccounts([]string{id})
}

// WithAccounts returns a copy of c with ids appended in order. An empty
// list is legal and yields an equal copy.
func (c Config) WithAccounts(ids []string) Config {
	accounts := make([]string, 0, len(c.Accounts)+len(ids))
	accounts = append(accounts, c.Accounts...)
	accounts = append(accounts, ids...)
	return Config{Name: c.Name, Accounts: accounts}
}
