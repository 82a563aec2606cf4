package report

import (
	"context"
	"fmt"

	"github.com/gookit/color"
	prtable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/werf/logboek"
)

func buildStepsTable(ctx context.Context, result *ResultV1) prtable.Writer {
	table := prtable.NewWriter()
	setTableStyle(ctx, table, 4)

	table.AppendHeader(prtable.Row{
		color.New(color.Bold).Sprintf("STEP"),
		color.New(color.Bold).Sprintf("TIMESTAMP"),
		color.New(color.Bold).Sprintf("DURATION"),
		color.New(color.Bold).Sprintf("TOTAL"),
	})

	for _, step := range result.Steps {
		timestamp := formatTimestamp(step.Timestamp)
		if step.Timestamp == nil {
			timestamp = color.New(color.Gray).Sprintf("absent")
		}

		duration := fmt.Sprintf("%d", step.DurationSeconds)
		if step.DurationSeconds < 0 {
			duration = color.New(color.LightRed).Sprint(duration)
		}

		table.AppendRow(prtable.Row{
			color.New(color.Cyan).Sprint(step.Name),
			timestamp,
			duration,
			step.TotalSeconds,
		})
	}

	return table
}

func buildPhasesTable(ctx context.Context, result *ResultV1) prtable.Writer {
	table := prtable.NewWriter()
	setTableStyle(ctx, table, 3)

	table.AppendHeader(prtable.Row{
		color.New(color.Bold).Sprintf("PHASE"),
		color.New(color.Bold).Sprintf("SECONDS"),
		color.New(color.Bold).Sprintf("DURATION"),
	})

	for _, phase := range result.Phases {
		table.AppendRow(prtable.Row{
			color.New(color.Cyan).Sprint(phase.Label),
			phase.DurationSeconds,
			phase.Human,
		})
	}

	return table
}

func setTableStyle(ctx context.Context, table prtable.Writer, columns int) {
	style := prtable.StyleBoxDefault
	style.PaddingLeft = " "
	style.PaddingRight = " "

	tableWidth := logboek.Context(ctx).Streams().ContentWidth()
	if tableWidth < 20 {
		tableWidth = 140
	} else if tableWidth > 200 {
		tableWidth = 200
	}

	paddingsWidth := columns * (len(style.PaddingLeft) + len(style.PaddingRight))

	var columnConfigs []prtable.ColumnConfig
	for i := 1; i <= columns; i++ {
		align := text.AlignRight
		if i == 1 || (columns == 4 && i == 2) {
			align = text.AlignLeft
		}

		columnConfigs = append(columnConfigs, prtable.ColumnConfig{
			Number:   i,
			Align:    align,
			WidthMax: (tableWidth - paddingsWidth) / columns,
		})
	}

	table.SetColumnConfigs(columnConfigs)
	table.SetStyle(prtable.Style{
		Box:     style,
		Color:   prtable.ColorOptionsDefault,
		Format:  prtable.FormatOptionsDefault,
		HTML:    prtable.DefaultHTMLOptions,
		Options: prtable.OptionsNoBordersAndSeparators,
		Title:   prtable.TitleOptionsDefault,
	})
	table.SuppressTrailingSpaces()
}
