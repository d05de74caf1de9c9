// Package processors computes the derived aggregates every dashboard page
// renders. All operations are pure functions of (batch, scope); an empty or
// fully filtered-out batch yields zero totals and empty groupings.
package processors

import (
	"sort"
	"time"

	"github.com/AryamanRoy/Raseed-FinanceAI/src/classifier"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/models"
)

// trendMonths is the width of the monthly trend window, ending at the most
// recent month in the batch (inclusive).
const trendMonths = 6

// AggregationProcessor derives category, daily and monthly totals from a
// record batch.
type AggregationProcessor struct{}

func NewAggregationProcessor() *AggregationProcessor { return &AggregationProcessor{} }

// MostRecentMonth finds the (month, year) of the maximum date in the batch.
// The batch carries no ordering guarantee, so every record is inspected.
// An empty batch falls back to the caller's current calendar month.
func (p *AggregationProcessor) MostRecentMonth(batch []models.TransactionRecord, fallback time.Time) (time.Month, int) {
	if len(batch) == 0 {
		return fallback.Month(), fallback.Year()
	}
	latest := batch[0].Date
	for _, rec := range batch[1:] {
		if rec.Date.After(latest) {
			latest = rec.Date
		}
	}
	return latest.Month(), latest.Year()
}

// FilterByMonth keeps records whose date falls within the given month/year.
func (p *AggregationProcessor) FilterByMonth(batch []models.TransactionRecord, month time.Month, year int) []models.TransactionRecord {
	var out []models.TransactionRecord
	for _, rec := range batch {
		if rec.Date.Month() == month && rec.Date.Year() == year {
			out = append(out, rec)
		}
	}
	return out
}

// FilterByCategory keeps records whose category label matches exactly.
// Labels are opaque strings from the external categorizer; no
// case-folding or normalization is applied.
func (p *AggregationProcessor) FilterByCategory(batch []models.TransactionRecord, category string) []models.TransactionRecord {
	if category == "" {
		return batch
	}
	var out []models.TransactionRecord
	for _, rec := range batch {
		if rec.Category == category {
			out = append(out, rec)
		}
	}
	return out
}

// Expenses keeps the records the classifier does not label as income.
func (p *AggregationProcessor) Expenses(batch []models.TransactionRecord) []models.TransactionRecord {
	var out []models.TransactionRecord
	for _, rec := range batch {
		if !classifier.IsIncome(rec.Description) {
			out = append(out, rec)
		}
	}
	return out
}

// Totals splits the given records into income, expenses and balance using
// the description classifier.
func (p *AggregationProcessor) Totals(batch []models.TransactionRecord) (income, expenses, balance float64) {
	for _, rec := range batch {
		if classifier.IsIncome(rec.Description) {
			income += rec.Amount
		} else {
			expenses += rec.Amount
		}
	}
	return income, expenses, income - expenses
}

// CategoryTotals sums amounts grouped by exact category label. The input is
// expected to be the expense-only subset of a scoped batch. Results are
// ordered by amount descending, category ascending on ties.
func (p *AggregationProcessor) CategoryTotals(expenses []models.TransactionRecord) []models.CategoryTotal {
	byCategory := make(map[string]float64)
	for _, rec := range expenses {
		byCategory[rec.Category] += rec.Amount
	}

	totals := make([]models.CategoryTotal, 0, len(byCategory))
	for category, amount := range byCategory {
		totals = append(totals, models.CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Amount != totals[j].Amount {
			return totals[i].Amount > totals[j].Amount
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// DailyTotals sums expense amounts by day of month, producing one entry per
// calendar day of the scoped month (zero for days without spending),
// ordered by day ascending.
func (p *AggregationProcessor) DailyTotals(expenses []models.TransactionRecord, month time.Month, year int) []models.DayTotal {
	byDay := make(map[int]float64)
	for _, rec := range expenses {
		byDay[rec.Date.Day()] += rec.Amount
	}

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	days := make([]models.DayTotal, daysInMonth)
	for i := range days {
		day := i + 1
		days[i] = models.DayTotal{Day: day, Amount: byDay[day]}
	}
	return days
}

// AverageDaily divides total spending by the number of days, reporting zero
// for an empty day range instead of a non-finite result.
func (p *AggregationProcessor) AverageDaily(days []models.DayTotal) float64 {
	if len(days) == 0 {
		return 0
	}
	var total float64
	for _, d := range days {
		total += d.Amount
	}
	return total / float64(len(days))
}

// MonthlyTrend computes expense totals for the trend window ending at
// (baseMonth, baseYear) inclusive, oldest first. Month arithmetic wraps
// year boundaries, so a January base reaches back into the prior year.
func (p *AggregationProcessor) MonthlyTrend(batch []models.TransactionRecord, baseMonth time.Month, baseYear int) []models.MonthTotal {
	months := make([]models.MonthTotal, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		month := int(baseMonth) - i
		year := baseYear
		if month < 1 {
			month += 12
			year--
		}

		scoped := p.FilterByMonth(batch, time.Month(month), year)
		_, expenses, _ := p.Totals(scoped)

		months = append(months, models.MonthTotal{
			Month:  time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("Jan"),
			Year:   year,
			Amount: expenses,
		})
	}
	return months
}
