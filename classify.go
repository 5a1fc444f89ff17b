package main

import "strings"

// issueRule ties an issue type to its keyword set. Rules are evaluated in
// slice order and the first set with any substring hit wins, so the order
// of defaultIssueRules is part of the classification contract.
type issueRule struct {
	Label    string
	Keywords []string
}

const issueOther = "Other"

func defaultIssueRules() []issueRule {
	return []issueRule{
		{Label: "Billing", Keywords: []string{"refund", "charge", "invoice", "payment"}},
		{Label: "Technical", Keywords: []string{"error", "bug", "crash", "login", "failed"}},
		{Label: "Account", Keywords: []string{"password", "email", "account", "verify"}},
		{Label: "Delivery", Keywords: []string{"delivery", "shipping", "late", "tracking"}},
	}
}

// classifyIssue labels a ticket from its subject and message. Matching is
// plain substring containment on the lowercased combined text, so a
// keyword inside a longer word still counts.
func classifyIssue(subject string, message string, rules []issueRule) string {
	text := strings.ToLower(subject + " " + message)
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return rule.Label
			}
		}
	}
	return issueOther
}

func classifyTickets(tickets []Ticket, rules []issueRule) []Ticket {
	result := make([]Ticket, len(tickets))
	copy(result, tickets)
	for i := range result {
		result[i].IssueType = classifyIssue(result[i].Subject, result[i].Message, rules)
	}
	return result
}
