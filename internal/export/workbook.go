// Package export writes a generated schedule to a spreadsheet.
package export

import (
	"bytes"
	"fmt"

	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the plan.
const SheetName = "Study Plan"

// ContentType is the MIME type of the workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Columns is the header row, one row per scheduled module below it.
var Columns = []string{"Day", "Date", "Course", "Module", "Topics", "Colab Link"}

// AttachmentName is the download name the server suggests.
func AttachmentName(startDate string, pace domain.Pace) string {
	if pace == "" {
		pace = domain.PaceBalanced
	}
	return fmt.Sprintf("study_plan_%s_%s.xlsx", startDate, pace)
}

// Workbook renders req as an xlsx file.
func Workbook(req contract.ExportRequest) ([]byte, error) {
	start, err := domain.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	row := 2
	for _, day := range req.Schedule {
		if day.DayNumber < 1 {
			return nil, fmt.Errorf("day_number %d out of range", day.DayNumber)
		}
		date := domain.FormatDate(start.AddDate(0, 0, day.DayNumber-1))
		for _, topic := range day.Topics {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return nil, err
			}
			values := []any{day.DayNumber, date, topic.Course, topic.Module, topic.Topics, topic.ColabLink}
			if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
				return nil, fmt.Errorf("writing row %d: %w", row, err)
			}
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("encoding workbook: %w", err)
	}
	return buf.Bytes(), nil
}
