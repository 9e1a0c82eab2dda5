package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sardorbek/kalit/internal/dto"
	"github.com/xuri/excelize/v2"
)

func TestUsersCSV(t *testing.T) {
	users := []dto.UserDTO{
		{ID: 1, Name: "Aziza", Username: "aziza", Phone: "+998901234567"},
		{ID: 2, Name: "Bek"},
	}

	out, err := UsersCSV(users)
	if err != nil {
		t.Fatalf("UsersCSV returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows:\n%s", len(lines), out)
	}
	if lines[0] != "ID,Name,Username,Phone" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "1,Aziza,@aziza,+998901234567" {
		t.Errorf("row = %q", lines[1])
	}
	if lines[2] != "2,Bek,N/A,N/A" {
		t.Errorf("missing handle and phone should render as N/A, got %q", lines[2])
	}
}

func TestTestStatisticsExcel(t *testing.T) {
	report := &dto.StatisticsReportDTO{
		TestCode: "QUIZ",
		TestName: "History Quiz",
		Entries: []dto.StatisticsEntryDTO{
			{Name: "Aziza", Username: "aziza", Score: 100, UserAnswers: "abcd",
				SubmittedAt: time.Date(2025, 5, 1, 10, 30, 0, 0, time.UTC), AttemptCount: 1},
			{Name: "Bek", Score: 50, UserAnswers: "abdc",
				SubmittedAt: time.Date(2025, 5, 1, 11, 0, 0, 0, time.UTC), AttemptCount: 2},
		},
	}

	out, err := TestStatisticsExcel(report)
	if err != nil {
		t.Fatalf("TestStatisticsExcel returned error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("reading rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 entries", len(rows))
	}
	if rows[0][0] != "Name" || rows[0][3] != "Score" {
		t.Errorf("header row = %v", rows[0])
	}
	if rows[1][0] != "Aziza" || rows[1][3] != "100.00%" {
		t.Errorf("first entry row = %v", rows[1])
	}
	if rows[2][0] != "Bek" || rows[2][5] != "2025-05-01 11:00:00" {
		t.Errorf("second entry row = %v", rows[2])
	}
}
