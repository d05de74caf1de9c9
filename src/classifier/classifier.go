// Package classifier labels transactions as income or expense.
package classifier

import "strings"

// incomeKeywords fire on a case-insensitive substring match anywhere in the
// description.
var incomeKeywords = []string{"salary", "income", "refund"}

// IsIncome reports whether a transaction description denotes income.
//
// The heuristic looks at the description only; amount sign, payment method
// and category carry no signal. A refund described without the word
// "refund" will be counted as an expense.
func IsIncome(description string) bool {
	lower := strings.ToLower(description)
	for _, kw := range incomeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	// Covers phrasings like "Company Salary Credit". Redundant with the
	// keyword list since "salary" already fires on its own.
	return strings.Contains(lower, "company") && strings.Contains(lower, "salary")
}
