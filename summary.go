package main

import "fmt"

type IssueCount struct {
	IssueType string `json:"issue_type"`
	Count     int    `json:"count"`
}

// Summary holds the audit aggregates. The flagged/not-flagged averages
// are nil when their subset is empty and render as "N/A" in the report.
type Summary struct {
	TotalTickets            int          `json:"total_tickets"`
	FlaggedTickets          int          `json:"flagged_tickets"`
	FlaggedPercent          float64      `json:"flagged_percent"`
	AvgResolutionHours      float64      `json:"average_resolution_time_hours"`
	AvgResolutionFlagged    *float64     `json:"avg_resolution_flagged_hours"`
	AvgResolutionNotFlagged *float64     `json:"avg_resolution_not_flagged_hours"`
	IssueCounts             []IssueCount `json:"issue_counts"`
}

type SummaryEntry struct {
	Key   string
	Value string
}

func buildSummary(tickets []Ticket) Summary {
	summary := Summary{TotalTickets: len(tickets)}

	totalHours := 0.0
	flaggedHours := 0.0
	notFlaggedHours := 0.0
	notFlaggedCount := 0
	countsByIssue := map[string]int{}
	issueOrder := []string{}

	for _, ticket := range tickets {
		totalHours += ticket.ResolutionTimeHours
		if ticket.IsFlagged {
			summary.FlaggedTickets++
			flaggedHours += ticket.ResolutionTimeHours
		} else {
			notFlaggedCount++
			notFlaggedHours += ticket.ResolutionTimeHours
		}
		if _, seen := countsByIssue[ticket.IssueType]; !seen {
			issueOrder = append(issueOrder, ticket.IssueType)
		}
		countsByIssue[ticket.IssueType]++
	}

	if summary.TotalTickets > 0 {
		summary.FlaggedPercent = float64(summary.FlaggedTickets) / float64(summary.TotalTickets) * 100
		summary.AvgResolutionHours = totalHours / float64(summary.TotalTickets)
	}
	if summary.FlaggedTickets > 0 {
		avg := flaggedHours / float64(summary.FlaggedTickets)
		summary.AvgResolutionFlagged = &avg
	}
	if notFlaggedCount > 0 {
		avg := notFlaggedHours / float64(notFlaggedCount)
		summary.AvgResolutionNotFlagged = &avg
	}

	for _, issue := range issueOrder {
		summary.IssueCounts = append(summary.IssueCounts, IssueCount{IssueType: issue, Count: countsByIssue[issue]})
	}

	return summary
}

// Entries returns the report lines in their fixed order: totals first,
// then one issue_count_<type> entry per issue type in first-seen order.
func (s Summary) Entries() []SummaryEntry {
	entries := []SummaryEntry{
		{Key: "total_tickets", Value: fmt.Sprintf("%d", s.TotalTickets)},
		{Key: "flagged_tickets", Value: fmt.Sprintf("%d", s.FlaggedTickets)},
		{Key: "flagged_percent", Value: formatFloat(s.FlaggedPercent)},
		{Key: "average_resolution_time_hours", Value: formatFloat(s.AvgResolutionHours)},
		{Key: "avg_resolution_flagged_hours", Value: formatOptionalFloat(s.AvgResolutionFlagged)},
		{Key: "avg_resolution_not_flagged_hours", Value: formatOptionalFloat(s.AvgResolutionNotFlagged)},
	}
	for _, entry := range s.IssueCounts {
		entries = append(entries, SummaryEntry{
			Key:   "issue_count_" + entry.IssueType,
			Value: fmt.Sprintf("%d", entry.Count),
		})
	}
	return entries
}

func formatFloat(value float64) string {
	return fmt.Sprintf("%v", value)
}

func formatOptionalFloat(value *float64) string {
	if value == nil {
		return "N/A"
	}
	return formatFloat(*value)
}
