package command_test

import (
	"testing"

	"github.com/desierto/ranky/internal/domain/command"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParsePrefixGate(t *testing.T) {
	Convey("Given a parser with the default prefix", t, func() {
		p := command.NewParser()

		Convey("When the message lacks the prefix", func() {
			cmd, err := p.Parse(`/create "Worlds"`)

			Convey("Then it is not a command", func() {
				So(err, ShouldBeNil)
				So(cmd.Kind, ShouldEqual, command.KindNone)
			})
		})

		Convey("When the message is plain chatter", func() {
			cmd, err := p.Parse("good game everyone")

			Convey("Then it is not a command", func() {
				So(err, ShouldBeNil)
				So(cmd.Kind, ShouldEqual, command.KindNone)
			})
		})

		Convey("When the prefix is present but no keyword follows", func() {
			cmd, err := p.Parse("!hello there")

			Convey("Then it is not a command", func() {
				So(err, ShouldBeNil)
				So(cmd.Kind, ShouldEqual, command.KindNone)
			})
		})
	})
}

func TestParseCommands(t *testing.T) {
	Convey("Given a parser with the default prefix", t, func() {
		p := command.NewParser()

		Convey("When parsing a create command", func() {
			cmd, err := p.Parse(`!/create "Worlds"`)

			So(err, ShouldBeNil)
			So(cmd.Kind, ShouldEqual, command.KindCreate)
			So(cmd.Ranking, ShouldEqual, "Worlds")
		})

		Convey("When parsing a ranking query", func() {
			cmd, err := p.Parse(`!/ranking "Worlds 2024"`)

			So(err, ShouldBeNil)
			So(cmd.Kind, ShouldEqual, command.KindQuery)
			So(cmd.Ranking, ShouldEqual, "Worlds 2024")
		})

		Convey("When parsing an addAccount command", func() {
			cmd, err := p.Parse(`!/addAccount "Worlds" "Faker#KR1"`)

			So(err, ShouldBeNil)
			So(cmd.Kind, ShouldEqual, command.KindAddAccount)
			So(cmd.Ranking, ShouldEqual, "Worlds")
			So(cmd.Account, ShouldEqual, "Faker#KR1")
		})

		Convey("When the account spans several quoted tokens", func() {
			cmd, err := p.Parse(`!/addAccount "Worlds" "Hide on" "bush#KR1"`)

			So(err, ShouldBeNil)
			So(cmd.Account, ShouldEqual, "Hide on bush#KR1")
		})

		Convey("When parsing an addMultiple command", func() {
			cmd, err := p.Parse(`!/addMultiple "Worlds" Faker#KR1, Chovy#KR1,Zeus#KR1`)

			So(err, ShouldBeNil)
			So(cmd.Kind, ShouldEqual, command.KindAddMultiple)
			So(cmd.Ranking, ShouldEqual, "Worlds")

			Convey("Then entries keep their raw whitespace", func() {
				So(cmd.Accounts, ShouldResemble, []string{"Faker#KR1", " Chovy#KR1", "Zeus#KR1"})
			})
		})

		Convey("When parsing the recognized no-op intents", func() {
			deadline, err := p.Parse(`!/setDeadline "Worlds" tomorrow`)
			So(err, ShouldBeNil)
			So(deadline.Kind, ShouldEqual, command.KindSetDeadline)

			remove, err := p.Parse(`!/removeAccount "Worlds" "Faker#KR1"`)
			So(err, ShouldBeNil)
			So(remove.Kind, ShouldEqual, command.KindRemoveAccount)
		})
	})
}

func TestParseLeftmostKeywordWins(t *testing.T) {
	Convey("Given a message containing several keywords", t, func() {
		p := command.NewParser()

		cmd, err := p.Parse(`!/create "a /ranking inside the name"`)

		Convey("Then only the leftmost keyword is dispatched", func() {
			So(err, ShouldBeNil)
			So(cmd.Kind, ShouldEqual, command.KindCreate)
			So(cmd.Ranking, ShouldEqual, "a /ranking inside the name")
		})
	})
}

func TestParseMalformedInput(t *testing.T) {
	Convey("Given a parser with the default prefix", t, func() {
		p := command.NewParser()

		Convey("When create has no quoted name", func() {
			cmd, err := p.Parse("!/create Worlds")

			So(err, ShouldWrap, command.ErrMissingRankingName)
			So(cmd.Kind, ShouldEqual, command.KindNone)
		})

		Convey("When addAccount has no account segment", func() {
			cmd, err := p.Parse(`!/addAccount "Worlds"`)

			So(err, ShouldWrap, command.ErrMissingAccount)
			So(cmd.Kind, ShouldEqual, command.KindNone)
		})

		Convey("When addMultiple ends right after the name", func() {
			_, err := p.Parse(`!/addMultiple "Worlds"`)

			So(err, ShouldWrap, command.ErrMissingAccount)
		})
	})
}

func TestParsePolicies(t *testing.T) {
	Convey("Given a parser with trim and dedupe enabled", t, func() {
		p := command.NewParser(
			command.WithPrefix("!"),
			command.WithTrimAccounts(true),
			command.WithDedupeAccounts(true),
		)

		cmd, err := p.Parse(`!/addMultiple "Worlds" Faker#KR1, Faker#KR1 , Chovy#KR1`)

		Convey("Then entries are trimmed and deduplicated in order", func() {
			So(err, ShouldBeNil)
			So(cmd.Accounts, ShouldResemble, []string{"Faker#KR1", "Chovy#KR1"})
		})
	})

	Convey("Given a parser with a custom prefix", t, func() {
		p := command.NewParser(command.WithPrefix("?"))

		Convey("Then the default prefix no longer gates commands", func() {
			cmd, err := p.Parse(`!/create "Worlds"`)
			So(err, ShouldBeNil)
			So(cmd.Kind, ShouldEqual, command.KindNone)

			cmd, err = p.Parse(`?/create "Worlds"`)
			So(err, ShouldBeNil)
			So(cmd.Kind, ShouldEqual, command.KindCreate)
		})
	})
}
