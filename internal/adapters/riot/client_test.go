package riot_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/desierto/ranky/internal/adapters/riot"
	"github.com/desierto/ranky/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// fakeRiot serves the two endpoints Resolve touches.
func fakeRiot(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/riot/account/v1/accounts/by-riot-id/Faker/KR1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"puuid":"puuid-faker","gameName":"Faker","tagLine":"KR1"}`))
	})
	mux.HandleFunc("/lol/league/v4/entries/by-puuid/puuid-faker", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"queueType":"RANKED_FLEX_SR","tier":"GOLD","rank":"I","leaguePoints":10,"wins":1,"losses":1},
			{"queueType":"RANKED_SOLO_5x5","tier":"CHALLENGER","rank":"I","leaguePoints":1420,"wins":300,"losses":150}
		]`))
	})
	mux.HandleFunc("/riot/account/v1/accounts/by-riot-id/Nobody/EUW", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"status":{"status_code":404}}`, http.StatusNotFound)
	})
	return httptest.NewServer(mux)
}

func TestResolve(t *testing.T) {
	Convey("Given a riot client against a fake API", t, func() {
		srv := fakeRiot(t)
		defer srv.Close()

		ctx := context.Background()
		client := riot.NewClient("test-key",
			riot.WithAccountBaseURL(srv.URL),
			riot.WithPlatformBaseURL(srv.URL),
		)

		Convey("When resolving a known riot id", func() {
			acct, err := client.Resolve(ctx, "Faker#KR1")

			Convey("Then the solo-queue entry is picked", func() {
				So(err, ShouldBeNil)
				So(acct.RiotID(), ShouldEqual, "Faker#KR1")
				So(acct.Tier, ShouldEqual, "CHALLENGER")
				So(acct.Division, ShouldEqual, "I")
				So(acct.LeaguePoints, ShouldEqual, 1420)
				So(acct.Ranked(), ShouldBeTrue)
			})
		})

		Convey("When resolving an unknown riot id", func() {
			_, err := client.Resolve(ctx, "Nobody#EUW")

			Convey("Then it fails with ErrAccountNotFound carrying the id", func() {
				So(err, ShouldWrap, riot.ErrAccountNotFound)
				So(err.Error(), ShouldContainSubstring, "Nobody#EUW")
			})
		})

		Convey("When the id has no tag line", func() {
			_, err := client.Resolve(ctx, "Faker")

			So(err, ShouldWrap, riot.ErrAccountNotFound)
		})
	})
}

func TestAccountOrdering(t *testing.T) {
	Convey("Given accounts across tiers and divisions", t, func() {
		unranked := riot.Account{GameName: "Casual", TagLine: "EUW"}
		gold2 := riot.Account{GameName: "Mid", TagLine: "EUW", Tier: "GOLD", Division: "II", LeaguePoints: 50}
		gold1 := riot.Account{GameName: "Top", TagLine: "EUW", Tier: "GOLD", Division: "I", LeaguePoints: 10}
		chall := riot.Account{GameName: "Faker", TagLine: "KR1", Tier: "CHALLENGER", Division: "I", LeaguePoints: 1420}

		accounts := []riot.Account{unranked, gold2, chall, gold1}

		Convey("When sorting with Before", func() {
			sort.SliceStable(accounts, func(i, j int) bool {
				return accounts[i].Before(accounts[j])
			})

			Convey("Then the strongest standing comes first and unranked last", func() {
				So(accounts[0].GameName, ShouldEqual, "Faker")
				So(accounts[1].GameName, ShouldEqual, "Top")
				So(accounts[2].GameName, ShouldEqual, "Mid")
				So(accounts[3].GameName, ShouldEqual, "Casual")
			})
		})
	})
}

func TestRankingLine(t *testing.T) {
	Convey("Given ranked and unranked accounts", t, func() {
		ranked := riot.Account{
			GameName: "Faker", TagLine: "KR1",
			Tier: "CHALLENGER", Division: "I", LeaguePoints: 1420, Wins: 300, Losses: 150,
		}
		unranked := riot.Account{GameName: "Casual", TagLine: "EUW"}

		Convey("Then the leaderboard rows read as expected", func() {
			So(ranked.RankingLine(), ShouldEqual, "Faker#KR1: CHALLENGER I (1420 LP) 300W 150L")
			So(unranked.RankingLine(), ShouldEqual, "Casual#EUW: UNRANKED")
		})
	})
}
