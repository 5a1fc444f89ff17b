package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const reportTitle = "Customer Support Ticket Quality Audit Report"

var exportColumns = []string{
	"priority",
	"status",
	"subject",
	"message",
	"resolution_time_hours",
	"created_date",
	"issue_type",
	"is_flagged",
	"flag_reason",
}

// AuditReport is the JSON export shape: the aggregates plus every
// cleaned ticket with its derived fields.
type AuditReport struct {
	Summary Summary  `json:"summary"`
	Tickets []Ticket `json:"tickets"`
}

func writeReport(summary Summary, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var b strings.Builder
	b.WriteString(reportTitle + "\n")
	b.WriteString(strings.Repeat("=", len(reportTitle)-1) + "\n\n")
	for _, entry := range summary.Entries() {
		b.WriteString(entry.Key + ": " + entry.Value + "\n")
	}

	_, err = file.WriteString(b.String())
	return err
}

func exportTickets(tickets []Ticket, path string, flaggedOnly bool) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(exportColumns); err != nil {
		return err
	}
	for _, ticket := range tickets {
		if flaggedOnly && !ticket.IsFlagged {
			continue
		}
		record := []string{
			ticket.Priority,
			ticket.Status,
			ticket.Subject,
			ticket.Message,
			strconv.FormatFloat(ticket.ResolutionTimeHours, 'g', -1, 64),
			formatDate(ticket.CreatedDate),
			ticket.IssueType,
			strconv.FormatBool(ticket.IsFlagged),
			ticket.FlagReason,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeJSON(report AuditReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func printSummary(summary Summary) {
	fmt.Println("\nSummary")
	fmt.Println(strings.Repeat("-", 38))
	for _, entry := range summary.Entries() {
		fmt.Printf("%s: %s\n", entry.Key, entry.Value)
	}
}
