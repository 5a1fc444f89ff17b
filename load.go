package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var requiredColumns = []string{
	"priority",
	"status",
	"subject",
	"message",
	"resolution_time_hours",
	"created_date",
}

type ticketColumns struct {
	priority   int
	status     int
	subject    int
	message    int
	resolution int
	created    int
}

type ColumnMissing struct {
	Column  string
	Missing int
}

// LoadResult holds the raw CSV records plus the diagnostics the audit
// prints before cleaning starts.
type LoadResult struct {
	Headers       []string
	Records       [][]string
	Columns       ticketColumns
	MissingCounts []ColumnMissing
}

func loadTickets(path string) (*LoadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read header: %w", err)
	}

	colMap := normalizeHeaders(headers)
	cols := ticketColumns{}
	lookups := []struct {
		target *int
		names  []string
	}{
		{&cols.priority, []string{"priority", "ticket_priority"}},
		{&cols.status, []string{"status", "ticket_status"}},
		{&cols.subject, []string{"subject", "title"}},
		{&cols.message, []string{"message", "body", "description"}},
		{&cols.resolution, []string{"resolution_time_hours", "resolution_hours", "resolution_time"}},
		{&cols.created, []string{"created_date", "created_at", "date"}},
	}
	for i, lookup := range lookups {
		idx, ok := findColumn(colMap, lookup.names)
		if !ok {
			return nil, fmt.Errorf("missing %s column", requiredColumns[i])
		}
		*lookup.target = idx
	}

	records := [][]string{}
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("unable to read CSV: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		records = append(records, record)
	}

	result := &LoadResult{
		Headers: headers,
		Records: records,
		Columns: cols,
	}
	result.MissingCounts = countMissing(records, cols)
	return result, nil
}

func countMissing(records [][]string, cols ticketColumns) []ColumnMissing {
	indexes := []int{cols.priority, cols.status, cols.subject, cols.message, cols.resolution, cols.created}
	counts := make([]ColumnMissing, len(requiredColumns))
	for i, column := range requiredColumns {
		counts[i].Column = column
	}
	for _, record := range records {
		for i, idx := range indexes {
			if getValue(record, idx) == "" {
				counts[i].Missing++
			}
		}
	}
	return counts
}

func normalizeHeaders(headers []string) map[string]int {
	result := make(map[string]int, len(headers))
	for idx, header := range headers {
		normalized := normalizeHeader(header)
		if _, exists := result[normalized]; !exists {
			result[normalized] = idx
		}
	}
	return result
}

func normalizeHeader(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = strings.ReplaceAll(value, " ", "")
	value = strings.ReplaceAll(value, "_", "")
	value = strings.ReplaceAll(value, "-", "")
	return value
}

func findColumn(headers map[string]int, names []string) (int, bool) {
	for _, name := range names {
		if idx, ok := headers[normalizeHeader(name)]; ok {
			return idx, true
		}
	}
	return -1, false
}

func getValue(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
