package processors

import (
	"sort"

	"github.com/AryamanRoy/Raseed-FinanceAI/src/models"
)

// budgetBuffer is the uniform 20% headroom applied on top of the average
// category spend when deriving the implied per-category budget.
const budgetBuffer = 1.2

// displayPercentCap limits percent-of-budget values for rendering; the
// over-budget flag is decided before capping.
const displayPercentCap = 150

// InsightsProcessor derives the savings rate, the composite health score
// and per-category budget variances from aggregation output.
type InsightsProcessor struct{}

func NewInsightsProcessor() *InsightsProcessor { return &InsightsProcessor{} }

// SavingsRate returns the savings rate as a percentage of income. Zero
// income reports zero rather than a non-finite division. The result is not
// clamped: overspending yields a negative rate of arbitrary magnitude.
func (p *InsightsProcessor) SavingsRate(income, expenses float64) float64 {
	if income == 0 {
		return 0
	}
	return (income - expenses) / income * 100
}

// HealthScore computes the composite 0-100 financial health score.
//
// Base 50, plus a single mutually exclusive savings-rate tier bonus, a
// category-diversity bonus and an income-present bonus, clamped to [0,100].
// Zero income forces the score to 0 regardless of the other factors.
func (p *InsightsProcessor) HealthScore(income, expenses float64, categoryCount int) int {
	if income == 0 {
		return 0
	}

	savingsRate := p.SavingsRate(income, expenses)
	score := 50

	switch {
	case savingsRate >= 20:
		score += 30
	case savingsRate >= 10:
		score += 20
	case savingsRate >= 0:
		score += 10
	default:
		score -= 10
	}

	switch {
	case categoryCount >= 5:
		score += 10
	case categoryCount >= 3:
		score += 5
	}

	if income > 0 {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// BudgetVariances compares each category's actual spend against the implied
// uniform budget: average category total times the budget buffer. Results
// are ordered by actual amount descending.
func (p *InsightsProcessor) BudgetVariances(totals []models.CategoryTotal) []models.BudgetVariance {
	if len(totals) == 0 {
		return nil
	}

	var totalExpenses float64
	for _, ct := range totals {
		totalExpenses += ct.Amount
	}
	budget := totalExpenses / float64(len(totals)) * budgetBuffer

	variances := make([]models.BudgetVariance, 0, len(totals))
	for _, ct := range totals {
		var percent float64
		if budget > 0 {
			percent = ct.Amount / budget * 100
		}
		capped := percent
		if capped > displayPercentCap {
			capped = displayPercentCap
		}
		variances = append(variances, models.BudgetVariance{
			Category:        ct.Category,
			ActualAmount:    ct.Amount,
			ComputedBudget:  budget,
			PercentOfBudget: capped,
			IsOverBudget:    percent > 100,
		})
	}
	sort.Slice(variances, func(i, j int) bool {
		if variances[i].ActualAmount != variances[j].ActualAmount {
			return variances[i].ActualAmount > variances[j].ActualAmount
		}
		return variances[i].Category < variances[j].Category
	})
	return variances
}
