package models

import "time"

// TransactionRecord is one typed row parsed from a categorized bank export.
// Records are immutable once parsed: the uploaded file is the source of
// truth, and a new upload replaces the whole batch.
type TransactionRecord struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"` // strictly positive magnitude; sign carries no meaning
	Category      string    `json:"category"`
	PaymentMethod string    `json:"paymentMethod"`
}

// CategoryTotal is the summed expense amount for one exact category label.
// Labels come from the external categorizer and are never normalized, so
// "Food" and "food" are distinct groups.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// DayTotal is the summed expense amount for one day of the scoped month.
type DayTotal struct {
	Day    int     `json:"day"`
	Amount float64 `json:"amount"`
}

// MonthTotal is the summed expense amount for one month of the trend window.
type MonthTotal struct {
	Month  string  `json:"month"` // short label, e.g. "Aug"
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

// FinancialSnapshot carries the headline numbers for the scoped window.
type FinancialSnapshot struct {
	Income             float64 `json:"income"`
	Expenses           float64 `json:"expenses"`
	Balance            float64 `json:"balance"`
	SavingsRatePercent float64 `json:"savingsRatePercent"`
	HealthScore        int     `json:"healthScore"`
}

// BudgetVariance compares a category's actual spend against the implied
// uniform per-category budget (average category spend plus a 20% buffer).
type BudgetVariance struct {
	Category        string  `json:"category"`
	ActualAmount    float64 `json:"actualAmount"`
	ComputedBudget  float64 `json:"computedBudget"`
	PercentOfBudget float64 `json:"percentOfBudget"` // capped at 150 for display
	IsOverBudget    bool    `json:"isOverBudget"`    // from the uncapped percentage
}
