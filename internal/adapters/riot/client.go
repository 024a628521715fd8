package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/desierto/ranky/pkg/logger"
	"github.com/desierto/ranky/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultAccountBaseURL  = "https://europe.api.riotgames.com"
	defaultPlatformBaseURL = "https://euw1.api.riotgames.com"
	defaultRequestTimeout  = 10 * time.Second

	soloQueue = "RANKED_SOLO_5x5"
)

// Client resolves riot ids against the account-v1 and league-v4 endpoints.
type Client struct {
	http            *http.Client
	apiKey          string
	accountBaseURL  string
	platformBaseURL string
	logger          logger.Logger
}

// NewClient creates a Client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		http:            &http.Client{Timeout: defaultRequestTimeout},
		apiKey:          apiKey,
		accountBaseURL:  defaultAccountBaseURL,
		platformBaseURL: defaultPlatformBaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logger.Get().Named("riot")
	}
	return c
}

// accountResponse mirrors account-v1 by-riot-id.
type accountResponse struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// leagueEntry mirrors one league-v4 entry.
type leagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// Resolve turns a raw riot id ("gameName#tagLine") into an Account with its
// current solo-queue standing. An id that does not resolve fails with
// ErrAccountNotFound carrying the offending id.
func (c *Client) Resolve(ctx context.Context, id string) (Account, error) {
	gameName, tagLine, ok := strings.Cut(id, "#")
	if !ok || gameName == "" || tagLine == "" {
		return Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}

	acctURL := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.accountBaseURL, url.PathEscape(gameName), url.PathEscape(tagLine))
	var acct accountResponse
	if err := c.get(ctx, "account_by_riot_id", acctURL, &acct); err != nil {
		if errorsIsNotFound(err) {
			return Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
		}
		return Account{}, err
	}

	entriesURL := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s",
		c.platformBaseURL, url.PathEscape(acct.PUUID))
	var entries []leagueEntry
	if err := c.get(ctx, "league_entries", entriesURL, &entries); err != nil {
		if errorsIsNotFound(err) {
			return Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
		}
		return Account{}, err
	}

	account := Account{GameName: acct.GameName, TagLine: acct.TagLine}
	for _, e := range entries {
		if e.QueueType != soloQueue {
			continue
		}
		account.Tier = e.Tier
		account.Division = e.Rank
		account.LeaguePoints = e.LeaguePoints
		account.Wins = e.Wins
		account.Losses = e.Losses
		break
	}
	c.logger.Debug(ctx, "account resolved",
		logger.String("riot_id", account.RiotID()),
		logger.Bool("ranked", account.Ranked()),
	)
	return account, nil
}

// get performs one authenticated GET and decodes the JSON body into v.
func (c *Client) get(ctx context.Context, endpoint, rawURL string, v any) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build riot request: %w", err)
	}
	req.Header.Set("X-Riot-Token", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordRiotRequestError(endpoint)
		return fmt.Errorf("riot request %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.RecordRiotRequest(endpoint, float64(time.Since(start).Milliseconds()))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errNotFoundStatus
	case resp.StatusCode != http.StatusOK:
		metrics.RecordRiotRequestError(endpoint)
		return fmt.Errorf("riot request %s: unexpected status %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		metrics.RecordRiotRequestError(endpoint)
		return fmt.Errorf("decode riot response %s: %w", endpoint, err)
	}
	return nil
}
