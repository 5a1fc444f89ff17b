package main

import "testing"

func TestClassifyIssueCategoryOrder(t *testing.T) {
	rules := defaultIssueRules()

	cases := []struct {
		name    string
		subject string
		message string
		want    string
	}{
		{"billing keyword", "Refund request", "please process my refund", "Billing"},
		{"technical keyword", "App broken", "I hit an error on startup", "Technical"},
		{"account keyword", "Help", "cannot verify my email address", "Account"},
		{"delivery keyword", "Where is my order", "the shipping is delayed", "Delivery"},
		{"no keyword", "Hello", "just saying thanks", "Other"},
		{"billing beats technical", "Login error", "I was charged twice", "Billing"},
		{"technical beats account", "Password reset", "login keeps failing with an error", "Technical"},
		{"account beats delivery", "Late delivery", "also update my account email", "Account"},
		{"case folded", "REFUND NOW", "", "Billing"},
		{"keyword from subject only", "Invoice question", "nothing else to add here", "Billing"},
		{"embedded substring", "", "the lateness of this order is unacceptable", "Delivery"},
		{"empty subject and message", "", "", "Other"},
	}

	for _, tc := range cases {
		got := classifyIssue(tc.subject, tc.message, rules)
		if got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestClassifyTicketsAssignsEveryRow(t *testing.T) {
	tickets := []Ticket{
		{Subject: "Refund", Message: "refund my payment"},
		{Subject: "", Message: ""},
		{Subject: "bug", Message: "bug"},
	}

	labeled := classifyTickets(tickets, defaultIssueRules())
	if len(labeled) != len(tickets) {
		t.Fatalf("expected %d tickets, got %d", len(tickets), len(labeled))
	}
	for i, ticket := range labeled {
		if ticket.IssueType == "" {
			t.Fatalf("ticket %d has no issue type", i)
		}
	}
	if labeled[0].IssueType != "Billing" || labeled[1].IssueType != "Other" || labeled[2].IssueType != "Technical" {
		t.Fatalf("unexpected labels: %q %q %q", labeled[0].IssueType, labeled[1].IssueType, labeled[2].IssueType)
	}

	// Input slice must not be mutated.
	if tickets[0].IssueType != "" {
		t.Fatalf("classifyTickets mutated its input")
	}
}
