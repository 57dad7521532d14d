package report

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/kickdirtbb/framing/internal/domain/types"
)

var tableHeaders = []string{ //nolint:gochecknoglobals
	"#", "Catcher", "Team", "Matchup", "Shadow CS%", "Extra", "Lost", "Net", "Shadow", "Called", "Total CS%",
}

// firstNumericColumn is the index of the first right-aligned column.
const firstNumericColumn = 4

// RenderTable renders records as a rounded table.
func RenderTable(records []types.CatcherGameMetrics) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(tableHeaders))
	for i, h := range tableHeaders {
		header[i] = h
	}
	tw.AppendHeader(header)

	for i, m := range records {
		tw.AppendRow(table.Row{
			strconv.Itoa(i + 1),
			m.PlayerName,
			m.Team,
			m.Matchup,
			percent(m.CalledStrikeRate),
			strconv.Itoa(m.ExtraStrikes),
			strconv.Itoa(m.LostStrikes),
			signed(m.NetStrikes()),
			strconv.Itoa(m.ShadowZonePitches),
			strconv.Itoa(m.TotalCalledPitches),
			percent(m.TotalStrikeRate),
		})
	}

	configs := make([]table.ColumnConfig, 0, len(tableHeaders))
	for i := range tableHeaders {
		align := text.AlignLeft
		if i == 0 || i >= firstNumericColumn {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func percent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
