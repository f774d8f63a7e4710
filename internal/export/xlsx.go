// Package export renders survey responses as a spreadsheet.
package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/act-survey-api/internal/dto"
)

// SheetName is the worksheet holding the rows.
const SheetName = "Survey Responses"

// ContentType is the MIME type of WriteXLSX output.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const dateLayout = "2006-01-02 15:04:05"

// Columns is the header row, in output order.
var Columns = []string{
	"id",
	"name",
	"age",
	"gender",
	"phone",
	"q1_score",
	"q2_score",
	"q3_score",
	"q4_score",
	"q5_score",
	"total_score",
	"submission_date",
	"score_interpretation",
}

// FileName returns the download name for an export taken at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("ACT_Survey_Data_%s.xlsx", now.Format("20060102_150405"))
}

// WriteXLSX renders the rows into an in-memory workbook.
func WriteXLSX(rows []dto.ExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), SheetName)

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return nil, fmt.Errorf("open stream writer: %w", err)
	}

	if err := sw.SetRow("A1", toCells(Columns)); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, rowCells(row)); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row.ID, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("flush sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func rowCells(row dto.ExportRow) []interface{} {
	age := ""
	if row.Age != nil {
		age = strconv.Itoa(*row.Age)
	}

	return []interface{}{
		row.ID,
		row.Name,
		age,
		row.Gender,
		row.Phone,
		row.Q1Score,
		row.Q2Score,
		row.Q3Score,
		row.Q4Score,
		row.Q5Score,
		row.TotalScore,
		row.SubmissionDate.UTC().Format(dateLayout),
		row.ScoreInterpretation,
	}
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
