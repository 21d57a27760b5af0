package teamcli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/okian/fpl-tracker/internal/domain/types"
)

// printTable writes t as aligned columns: team ID, then one column per season.
func printTable(w io.Writer, t types.Table) error {
	if _, err := fmt.Fprintf(w, "%s\n", t.Title); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := append([]string{"Team ID"}, t.Seasons...)
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row.Values)+1)
		cells = append(cells, row.TeamID)
		for _, v := range row.Values {
			if v == nil {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, strconv.Itoa(*v))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
