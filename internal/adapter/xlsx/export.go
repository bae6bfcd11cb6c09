// Package xlsx exports the mood log to an Excel workbook.
package xlsx

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"vibematrix/internal/app"
	"vibematrix/internal/domain"
)

const (
	logSheet   = "Moods"
	trendSheet = "Energy"
)

// Export writes the log and its weekly energy trend to path, replacing any
// existing file.
func Export(path string, entries []domain.MoodEntry) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if err := f.SetSheetName("Sheet1", logSheet); err != nil {
		return err
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := writeRows(f, logSheet, header, []any{"Date", "Emoji", "Mood", "Message", "Tag", "Energy"}, len(entries), func(i int) []any {
		e := entries[i]
		return []any{
			e.Date.In(time.Local).Format("2006-01-02 15:04:05"),
			e.Emoji, e.Name, e.Message, e.Tag,
			domain.EnergyScore(e.Emoji),
		}
	}); err != nil {
		return fmt.Errorf("sheet %s: %w", logSheet, err)
	}

	trend := app.WeeklyEnergyTrend(entries)
	if _, err := f.NewSheet(trendSheet); err != nil {
		return err
	}
	if err := writeRows(f, trendSheet, header, []any{"Day", "Average energy"}, len(trend), func(i int) []any {
		return []any{trend[i].Date, trend[i].Average}
	}); err != nil {
		return fmt.Errorf("sheet %s: %w", trendSheet, err)
	}

	if err := f.SetColWidth(logSheet, "A", "A", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(logSheet, "C", "D", 40); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeRows(f *excelize.File, sheet string, style int, header []any, n int, row func(i int) []any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row(i)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
