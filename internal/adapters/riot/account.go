// Package riot resolves raw riot-id strings into display-ready ranked
// accounts via the Riot HTTP API.
package riot

import (
	"fmt"
	"strings"
)

// tierOrder ranks solo-queue tiers from weakest to strongest.
var tierOrder = []string{
	"IRON", "BRONZE", "SILVER", "GOLD", "PLATINUM",
	"EMERALD", "DIAMOND", "MASTER", "GRANDMASTER", "CHALLENGER",
}

// divisionOrder ranks divisions from weakest to strongest.
var divisionOrder = []string{"IV", "III", "II", "I"}

// Account is a resolved riot account together with its solo-queue standing.
type Account struct {
	GameName     string
	TagLine      string
	Tier         string
	Division     string
	LeaguePoints int
	Wins         int
	Losses       int
}

// RiotID returns the canonical gameName#tagLine form.
func (a Account) RiotID() string {
	return a.GameName + "#" + a.TagLine
}

// Ranked reports whether the account has a solo-queue entry this season.
func (a Account) Ranked() bool {
	return a.Tier != ""
}

// Before orders accounts for leaderboard display, strongest first: tier,
// then division, then league points. Unranked accounts sort last, by name.
func (a Account) Before(o Account) bool {
	at, ot := indexOf(tierOrder, a.Tier), indexOf(tierOrder, o.Tier)
	if at != ot {
		return at > ot
	}
	ad, od := indexOf(divisionOrder, a.Division), indexOf(divisionOrder, o.Division)
	if ad != od {
		return ad > od
	}
	if a.LeaguePoints != o.LeaguePoints {
		return a.LeaguePoints > o.LeaguePoints
	}
	return strings.ToLower(a.RiotID()) < strings.ToLower(o.RiotID())
}

// RankingLine formats the account as one leaderboard row.
func (a Account) RankingLine() string {
	if !a.Ranked() {
		return fmt.Sprintf("%s: UNRANKED", a.RiotID())
	}
	return fmt.Sprintf("%s: %s %s (%d LP) %dW %dL",
		a.RiotID(), a.Tier, a.Division, a.LeaguePoints, a.Wins, a.Losses)
}

func indexOf(order []string, v string) int {
	for i, s := range order {
		if s == v {
			return i
		}
	}
	return -1
}
