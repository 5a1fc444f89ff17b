package main

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	defaultPriority = "Low"
	defaultStatus   = "Open"
)

// Ticket is one cleaned support ticket. A zero CreatedDate means the
// source date was missing or unparseable.
type Ticket struct {
	Priority            string    `json:"priority"`
	Status              string    `json:"status"`
	Subject             string    `json:"subject"`
	Message             string    `json:"message"`
	ResolutionTimeHours float64   `json:"resolution_time_hours"`
	CreatedDate         time.Time `json:"created_date"`
	IssueType           string    `json:"issue_type"`
	IsFlagged           bool      `json:"is_flagged"`
	FlagReason          string    `json:"flag_reason"`
}

var titleCaser = cases.Title(language.Und)

// dedupeRecords drops exact duplicate rows, keeping the first occurrence.
func dedupeRecords(records [][]string) ([][]string, int) {
	seen := make(map[string]bool, len(records))
	kept := make([][]string, 0, len(records))
	for _, record := range records {
		key := strings.Join(record, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, record)
	}
	return kept, len(records) - len(kept)
}

// cleanTickets turns raw records into tickets: text fields trimmed,
// priority/status title-cased with defaults for empty values, dates
// coerced to the unknown marker when they fail to parse. A missing or
// unparseable resolution time becomes NaN until imputeResolutionTimes
// fills it.
func cleanTickets(records [][]string, cols ticketColumns) []Ticket {
	tickets := make([]Ticket, 0, len(records))
	for _, record := range records {
		ticket := Ticket{
			Priority: titleField(getValue(record, cols.priority), defaultPriority),
			Status:   titleField(getValue(record, cols.status), defaultStatus),
			Subject:  getValue(record, cols.subject),
			Message:  getValue(record, cols.message),
		}

		ticket.ResolutionTimeHours = math.NaN()
		if raw := getValue(record, cols.resolution); raw != "" {
			if value, err := strconv.ParseFloat(raw, 64); err == nil {
				ticket.ResolutionTimeHours = value
			}
		}

		if parsed, err := parseDate(getValue(record, cols.created)); err == nil {
			ticket.CreatedDate = dateOnly(parsed)
		}

		tickets = append(tickets, ticket)
	}
	return tickets
}

func titleField(value string, fallback string) string {
	if value == "" {
		return fallback
	}
	return titleCaser.String(value)
}

// imputeResolutionTimes replaces missing resolution times with the median
// of the present values and returns the median used.
func imputeResolutionTimes(tickets []Ticket) ([]Ticket, float64) {
	median := medianResolution(tickets)
	result := make([]Ticket, len(tickets))
	copy(result, tickets)
	for i := range result {
		if math.IsNaN(result[i].ResolutionTimeHours) {
			result[i].ResolutionTimeHours = median
		}
	}
	return result, median
}

func medianResolution(tickets []Ticket) float64 {
	values := make([]float64, 0, len(tickets))
	for _, ticket := range tickets {
		if !math.IsNaN(ticket.ResolutionTimeHours) {
			values = append(values, ticket.ResolutionTimeHours)
		}
	}
	if len(values) == 0 {
		return 0
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 0 {
		return (values[mid-1] + values[mid]) / 2
	}
	return values[mid]
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty date")
	}
	layouts := []string{
		"2006-01-02",
		"2006/01/02",
		"01/02/2006",
		"01-02-2006",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z07:00",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %s", value)
}

func dateOnly(value time.Time) time.Time {
	if value.IsZero() {
		return value
	}
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format("2006-01-02")
}
