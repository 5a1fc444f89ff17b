package main

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	reasonTooShort    = "Message too short"
	reasonAllCaps     = "Message in all caps"
	reasonPunctuation = "Excessive punctuation"
)

// flagRules holds the tunable parts of the quality heuristics. The rule
// order itself (short, caps, punctuation) is fixed.
type flagRules struct {
	MinMessageLength int
	PunctuationMarks []string
}

func defaultFlagRules() flagRules {
	return flagRules{
		MinMessageLength: 20,
		PunctuationMarks: []string{"!!!", "???"},
	}
}

// flagTicket applies the quality rules to a cleaned message. Rules are
// mutually exclusive: the first one that fires sets the reason and the
// rest are not checked.
func flagTicket(message string, rules flagRules) (bool, string) {
	if utf8.RuneCountInString(message) < rules.MinMessageLength {
		return true, reasonTooShort
	}
	if isAllUpper(message) {
		return true, reasonAllCaps
	}
	for _, mark := range rules.PunctuationMarks {
		if strings.Contains(message, mark) {
			return true, reasonPunctuation
		}
	}
	return false, ""
}

// isAllUpper reports whether the text has at least one uppercase letter
// and no lowercase letter. Text with no cased characters at all is not
// considered uppercase.
func isAllUpper(text string) bool {
	hasUpper := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}

func flagTickets(tickets []Ticket, rules flagRules) []Ticket {
	result := make([]Ticket, len(tickets))
	copy(result, tickets)
	for i := range result {
		result[i].IsFlagged, result[i].FlagReason = flagTicket(result[i].Message, rules)
	}
	return result
}
