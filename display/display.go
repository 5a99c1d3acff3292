// Package display renders the level structure of a skip list for the
// console, top level first.
package display

import (
	"cmp"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/viif/xsf-skip-list/skiplist"
)

// Render writes one table row per level, highest level on top. Each
// entry is shown as key:value, matching the snapshot line format.
func Render[K cmp.Ordered, V any](w io.Writer, sl *skiplist.SkipList[K, V]) {
	levels := sl.Levels()

	rows := make([][]string, 0, len(levels))
	for level := len(levels) - 1; level >= 0; level-- {
		parts := make([]string, 0, len(levels[level]))
		for _, entry := range levels[level] {
			parts = append(parts, fmt.Sprintf("%v:%v", entry.Key, entry.Value))
		}
		rows = append(rows, []string{
			fmt.Sprintf("level %d", level),
			strings.Join(parts, " "),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Level", "Entries"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}
