package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(
			WithPrometheusRegistry(reg),
			WithNamespace("test"),
			WithSubsystem("bot"),
		)

		Convey("Then it should register its collectors without panicking", func() {
			So(m, ShouldNotBeNil)

			families, err := reg.Gather()
			So(err, ShouldBeNil)
			So(families, ShouldNotBeNil)
		})
	})
}

func TestRecordHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording across all metric families", func() {
			RecordCommandParsed("create")
			RecordCommandCompleted("create")
			RecordCommandError("ranking")
			RecordStoreScan()
			RecordHistoryFetchLatency(12.5)
			RecordRankingCreated()
			RecordRankingUpdate()
			RecordAccountsAdded(3)
			RecordRiotRequest("account_by_riot_id", 40)
			RecordRiotRequestError("league_entries")
			RecordHTTPRequest("healthz", "GET", "200")
			RecordHTTPRequestDuration("healthz", "GET", "200", 1.2)

			Convey("Then the custom registry should expose samples", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
