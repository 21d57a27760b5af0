package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/okian/fpl-tracker/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func intPtr(v int) *int { return &v }

func TestTable(t *testing.T) {
	Convey("Given a table with a sparse row", t, func() {
		table := types.Table{
			Title:   "Total Points by Season",
			Seasons: []string{"2021/22", "2022/23"},
			Rows: []types.Row{
				{TeamID: "1", Values: []*int{nil, intPtr(1500)}},
			},
		}

		Convey("Then it is not empty", func() {
			So(table.Empty(), ShouldBeFalse)
		})

		Convey("Then the missing cell stays aligned as nil", func() {
			So(table.Rows[0].Values, ShouldHaveLength, len(table.Seasons))
			So(table.Rows[0].Values[0], ShouldBeNil)
			So(*table.Rows[0].Values[1], ShouldEqual, 1500)
		})

		Convey("When encoded as JSON", func() {
			b, err := json.Marshal(table)
			So(err, ShouldBeNil)

			Convey("Then missing cells are null", func() {
				So(string(b), ShouldContainSubstring, `"values":[null,1500]`)
				So(string(b), ShouldContainSubstring, `"team_id":"1"`)
			})
		})
	})

	Convey("Given a zero table", t, func() {
		Convey("Then it is empty", func() {
			So(types.Table{}.Empty(), ShouldBeTrue)
		})
	})
}
