// Package export renders booking reports for the admin back-office.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"dayroom/internal/model"
)

var reportColumns = []string{
	"ID", "Room ID", "Date", "Start", "End", "Status", "Client", "Phone", "Comment", "Created At",
}

// WriteBookingsReport writes an xlsx workbook with one row per booking,
// grouped on a single "Bookings" sheet ordered as supplied.
func WriteBookingsReport(w io.Writer, bookings []model.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Bookings"
	f.SetSheetName("Sheet1", sheet)

	row := 1
	if err := writeRow(f, sheet, row, toCells(reportColumns)); err != nil {
		return err
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, row)
		endCell, _ := excelize.CoordinatesToCellName(len(reportColumns), row)
		_ = f.SetCellStyle(sheet, startCell, endCell, style)
	}

	for _, b := range bookings {
		row++
		cells := []any{
			b.ID, b.RoomID, b.Date, b.StartTime, b.EndTime, string(b.Status),
			b.ClientName, b.ClientPhone, b.Comment, b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writeRow(f, sheet, row, cells); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	for i, val := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, val); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}

func toCells(cols []string) []any {
	out := make([]any, len(cols))
	for i, c := range cols {
		out[i] = c
	}
	return out
}
