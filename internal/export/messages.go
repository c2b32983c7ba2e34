package export

import (
	"fmt"
	"io"

	"homestay/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	MessagesSheet = "Messages"
	ContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var messageHeaders = []string{"ID", "Name", "Email", "Message", "Received"}

// WriteMessages renders contact messages as an xlsx workbook, one row per
// message in the order given.
func WriteMessages(w io.Writer, msgs []models.Message) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(MessagesSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for i, h := range messageHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(MessagesSheet, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	_ = f.SetCellStyle(MessagesSheet, "A1", "E1", headerStyle)

	for i, m := range msgs {
		row := i + 2
		values := []interface{}{m.ID, m.Name, m.Email, m.Message, m.CreatedAt.Format("2006-01-02 15:04:05")}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(MessagesSheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	_ = f.SetColWidth(MessagesSheet, "A", "A", 8)
	_ = f.SetColWidth(MessagesSheet, "B", "C", 28)
	_ = f.SetColWidth(MessagesSheet, "D", "D", 60)
	_ = f.SetColWidth(MessagesSheet, "E", "E", 20)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
