package models

// DashboardSummary is the headline view for the dashboard page.
type DashboardSummary struct {
	HasData          bool              `json:"hasData"`
	Month            string            `json:"month"` // e.g. "January 2025"
	Snapshot         FinancialSnapshot `json:"snapshot"`
	TransactionCount int               `json:"transactionCount"`
}

// CategoryReport is the per-category expense breakdown for one scope.
type CategoryReport struct {
	Window        string          `json:"window"`
	Category      string          `json:"category,omitempty"`
	Totals        []CategoryTotal `json:"totals"`
	TotalExpenses float64         `json:"totalExpenses"`
}

// DailyReport is the day-by-day spending pattern for the scoped month.
type DailyReport struct {
	Window       string     `json:"window"`
	Days         []DayTotal `json:"days"`
	AverageDaily float64    `json:"averageDaily"`
}

// TrendReport covers the six calendar months ending at the most recent
// month present in the batch.
type TrendReport struct {
	Months []MonthTotal `json:"months"`
}

// InsightsReport feeds the financial-insights page: health score, savings
// rate and budget performance per category.
type InsightsReport struct {
	HasData       bool              `json:"hasData"`
	Snapshot      FinancialSnapshot `json:"snapshot"`
	CategoryCount int               `json:"categoryCount"`
	Budget        []BudgetVariance  `json:"budget"`
}
