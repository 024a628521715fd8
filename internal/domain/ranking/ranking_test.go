package ranking_test

import (
	"testing"

	"github.com/desierto/ranky/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRoundTrip(t *testing.T) {
	Convey("Given ranking configurations", t, func() {
		Convey("When encoding and decoding an empty ranking", func() {
			c := ranking.New("Worlds")
			body, err := c.Encode()
			So(err, ShouldBeNil)

			got, ok := ranking.Decode(body)

			Convey("Then the round-trip should be lossless", func() {
				So(ok, ShouldBeTrue)
				So(got, ShouldResemble, c)
			})
		})

		Convey("When encoding and decoding a populated ranking", func() {
			c := ranking.New("Worlds").WithAccounts([]string{"Faker#KR1", "Chovy#KR1", "Faker#KR1"})
			body, err := c.Encode()
			So(err, ShouldBeNil)

			got, ok := ranking.Decode(body)

			Convey("Then accounts should survive in order, duplicates included", func() {
				So(ok, ShouldBeTrue)
				So(got, ShouldResemble, c)
				So(got.Accounts, ShouldResemble, []string{"Faker#KR1", "Chovy#KR1", "Faker#KR1"})
			})
		})
	})
}

func TestDecodeRejectsChatter(t *testing.T) {
	Convey("Given message bodies that are not ranking encodings", t, func() {
		bodies := []string{
			"",
			"hello everyone",
			"{not json",
			`"just a string"`,
			`42`,
			`null`,
			`{"accounts":["a"]}`,
			`{"name":""}`,
		}

		Convey("Then Decode should report ok=false for each", func() {
			for _, body := range bodies {
				_, ok := ranking.Decode(body)
				So(ok, ShouldBeFalse)
			}
		})
	})
}

func TestWithAccounts(t *testing.T) {
	Convey("Given an empty ranking", t, func() {
		empty := ranking.New("R")

		Convey("When appending in two steps", func() {
			c := empty.WithAccounts([]string{"a", "b"}).WithAccounts([]string{"c"})

			Convey("Then insertion order is preserved", func() {
				So(c.Accounts, ShouldResemble, []string{"a", "b", "c"})
			})
		})

		Convey("When appending an empty list", func() {
			c := empty.WithAccounts(nil)

			Convey("Then the copy equals the original", func() {
				So(c, ShouldResemble, empty)
			})
		})

		Convey("When appending to a copy", func() {
			base := empty.WithAccount("a")
			_ = base.WithAccount("b")

			Convey("Then the base value is untouched", func() {
				So(base.Accounts, ShouldResemble, []string{"a"})
			})
		})
	})
}
