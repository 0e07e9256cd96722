package report

import (
	"fmt"
	"io"
	"strings"

	"profitScope/internal/model"
)

const separatorWidth = 80

// WriteTable renders the ranked projection table. Columns are fixed
// width: address left 42, pair left 20, APR right 10 and cumulative
// profit right 22, both with two decimals.
func WriteTable(w io.Writer, projections []model.PoolProjection) error {
	if _, err := fmt.Fprintf(w, "%-42s %-20s %10s %22s\n",
		"Pool Address", "Pair", "APR (%)", "Cumulative Profit ($)"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", separatorWidth)); err != nil {
		return err
	}

	for _, p := range projections {
		if _, err := fmt.Fprintf(w, "%-42s %-20s %10.2f %22.2f\n",
			p.Address, p.Pair, p.APR, p.CumulativeProfit); err != nil {
			return err
		}
	}
	return nil
}

// RenderTable returns the table as a string.
func RenderTable(projections []model.PoolProjection) string {
	var sb strings.Builder
	_ = WriteTable(&sb, projections)
	return sb.String()
}
