package main

import "testing"

func TestBuildSummaryCounts(t *testing.T) {
	tickets := []Ticket{
		{IssueType: "Billing", IsFlagged: true, FlagReason: reasonTooShort, ResolutionTimeHours: 10},
		{IssueType: "Technical", ResolutionTimeHours: 20},
		{IssueType: "Billing", ResolutionTimeHours: 30},
		{IssueType: "Other", IsFlagged: true, FlagReason: reasonAllCaps, ResolutionTimeHours: 40},
	}

	summary := buildSummary(tickets)

	if summary.TotalTickets != 4 || summary.FlaggedTickets != 2 {
		t.Fatalf("expected 4 total / 2 flagged, got %d / %d", summary.TotalTickets, summary.FlaggedTickets)
	}
	if !floatEqual(summary.FlaggedPercent, 50) {
		t.Fatalf("expected 50%%, got %v", summary.FlaggedPercent)
	}
	if !floatEqual(summary.AvgResolutionHours, 25) {
		t.Fatalf("expected avg 25, got %v", summary.AvgResolutionHours)
	}
	if summary.AvgResolutionFlagged == nil || !floatEqual(*summary.AvgResolutionFlagged, 25) {
		t.Fatalf("unexpected flagged avg: %v", summary.AvgResolutionFlagged)
	}
	if summary.AvgResolutionNotFlagged == nil || !floatEqual(*summary.AvgResolutionNotFlagged, 25) {
		t.Fatalf("unexpected not-flagged avg: %v", summary.AvgResolutionNotFlagged)
	}

	// Issue counts keep first-seen order and omit absent categories.
	wantCounts := []IssueCount{
		{IssueType: "Billing", Count: 2},
		{IssueType: "Technical", Count: 1},
		{IssueType: "Other", Count: 1},
	}
	if len(summary.IssueCounts) != len(wantCounts) {
		t.Fatalf("expected %d issue counts, got %d", len(wantCounts), len(summary.IssueCounts))
	}
	for i, want := range wantCounts {
		if summary.IssueCounts[i] != want {
			t.Fatalf("issue count %d: got %+v, want %+v", i, summary.IssueCounts[i], want)
		}
	}
}

func TestBuildSummaryEmptyDataset(t *testing.T) {
	summary := buildSummary(nil)

	if summary.TotalTickets != 0 || summary.FlaggedTickets != 0 {
		t.Fatalf("expected zero totals, got %d / %d", summary.TotalTickets, summary.FlaggedTickets)
	}
	if summary.FlaggedPercent != 0 {
		t.Fatalf("expected flagged percent 0, got %v", summary.FlaggedPercent)
	}
	if summary.AvgResolutionFlagged != nil || summary.AvgResolutionNotFlagged != nil {
		t.Fatalf("expected nil subset averages for empty dataset")
	}
	if len(summary.IssueCounts) != 0 {
		t.Fatalf("expected no issue counts, got %d", len(summary.IssueCounts))
	}
}

func TestSummaryEntriesSentinels(t *testing.T) {
	summary := buildSummary([]Ticket{
		{IssueType: "Other", ResolutionTimeHours: 12},
	})

	entries := summary.Entries()
	wantKeys := []string{
		"total_tickets",
		"flagged_tickets",
		"flagged_percent",
		"average_resolution_time_hours",
		"avg_resolution_flagged_hours",
		"avg_resolution_not_flagged_hours",
		"issue_count_Other",
	}
	if len(entries) != len(wantKeys) {
		t.Fatalf("expected %d entries, got %d", len(wantKeys), len(entries))
	}
	for i, key := range wantKeys {
		if entries[i].Key != key {
			t.Fatalf("entry %d: got key %q, want %q", i, entries[i].Key, key)
		}
	}

	// No flagged tickets: the flagged average is the N/A sentinel, not 0.
	if entries[4].Value != "N/A" {
		t.Fatalf("expected N/A for flagged average, got %q", entries[4].Value)
	}
	if entries[5].Value != "12" {
		t.Fatalf("expected not-flagged average 12, got %q", entries[5].Value)
	}
}
