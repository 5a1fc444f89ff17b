package main

import (
	"os"
	"testing"
)

func writeTempCSV(t *testing.T, data string) string {
	t.Helper()
	file, err := os.CreateTemp(t.TempDir(), "tickets-*.csv")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	if _, err := file.WriteString(data); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("close csv: %v", err)
	}
	return file.Name()
}

func TestLoadTicketsHeaderVariants(t *testing.T) {
	csvData := "Priority,STATUS,Subject,Message,Resolution Time Hours,Created-Date\n" +
		"High,Open,Refund,please refund me,4,2026-01-01\n"

	loaded, err := loadTickets(writeTempCSV(t, csvData))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(loaded.Records))
	}
	if got := getValue(loaded.Records[0], loaded.Columns.resolution); got != "4" {
		t.Fatalf("resolution column mismatch: got %q", got)
	}
	if got := getValue(loaded.Records[0], loaded.Columns.created); got != "2026-01-01" {
		t.Fatalf("created column mismatch: got %q", got)
	}
}

func TestLoadTicketsMissingCounts(t *testing.T) {
	csvData := "priority,status,subject,message,resolution_time_hours,created_date\n" +
		"High,Open,Refund,please refund me,4,2026-01-01\n" +
		",Open,,short,,\n" +
		"Low,,Question,what is this charge,8,2026-01-02\n"

	loaded, err := loadTickets(writeTempCSV(t, csvData))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := map[string]int{
		"priority":              1,
		"status":                1,
		"subject":               1,
		"message":               0,
		"resolution_time_hours": 1,
		"created_date":          1,
	}
	for _, entry := range loaded.MissingCounts {
		if entry.Missing != want[entry.Column] {
			t.Errorf("column %s: expected %d missing, got %d", entry.Column, want[entry.Column], entry.Missing)
		}
	}
}

func TestLoadTicketsMissingRequiredColumn(t *testing.T) {
	csvData := "priority,status,subject,resolution_time_hours,created_date\n" +
		"High,Open,Refund,4,2026-01-01\n"

	if _, err := loadTickets(writeTempCSV(t, csvData)); err == nil {
		t.Fatal("expected error for missing message column")
	}
}

func TestLoadTicketsMissingFile(t *testing.T) {
	if _, err := loadTickets("no-such-file.csv"); err == nil {
		t.Fatal("expected error for missing input file")
	}
}
