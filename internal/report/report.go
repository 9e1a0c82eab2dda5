// Package report renders statistics into downloadable documents: an
// Excel workbook per test and a CSV of the registered users.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/sardorbek/kalit/internal/dto"
	"github.com/xuri/excelize/v2"
)

var excelHeaders = []string{"Name", "Username", "Phone", "Score", "Answers", "Submitted at", "Attempts"}

// TestStatisticsExcel builds an .xlsx workbook with one row per graded
// submission, in the report's order (best score first).
func TestStatisticsExcel(report *dto.StatisticsReportDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetColWidth(sheet, "A", "G", 20); err != nil {
		return nil, fmt.Errorf("formatting report for %s: %w", report.TestCode, err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("formatting report for %s: %w", report.TestCode, err)
	}

	for col, header := range excelHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, boldStyle); err != nil {
			return nil, err
		}
	}

	for i, entry := range report.Entries {
		row := i + 2
		values := []interface{}{
			entry.Name,
			entry.Username,
			entry.Phone,
			fmt.Sprintf("%.2f%%", entry.Score),
			entry.UserAnswers,
			entry.SubmittedAt.Format("2006-01-02 15:04:05"),
			entry.AttemptCount,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing report for %s: %w", report.TestCode, err)
	}
	return buf.Bytes(), nil
}

// UsersCSV renders the registered-user listing for admins. Empty handle
// and phone render as N/A, matching the chat-side listing.
func UsersCSV(users []dto.UserDTO) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"ID", "Name", "Username", "Phone"}); err != nil {
		return nil, err
	}
	for _, u := range users {
		username := "N/A"
		if u.Username != "" {
			username = "@" + u.Username
		}
		phone := u.Phone
		if phone == "" {
			phone = "N/A"
		}
		record := []string{strconv.FormatInt(u.ID, 10), u.Name, username, phone}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
