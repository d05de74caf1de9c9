package processors

import (
	"math"
	"testing"
	"time"

	"github.com/AryamanRoy/Raseed-FinanceAI/src/models"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func rec(date time.Time, description string, amount float64, category string) models.TransactionRecord {
	return models.TransactionRecord{
		Date:        date,
		Description: description,
		Amount:      amount,
		Category:    category,
	}
}

func TestMostRecentMonth(t *testing.T) {
	p := NewAggregationProcessor()
	fallback := day(2024, time.June, 15)

	t.Run("empty batch falls back", func(t *testing.T) {
		month, year := p.MostRecentMonth(nil, fallback)
		if month != time.June || year != 2024 {
			t.Errorf("MostRecentMonth() = %v %d, want June 2024", month, year)
		}
	})

	t.Run("finds maximum date regardless of order", func(t *testing.T) {
		batch := []models.TransactionRecord{
			rec(day(2024, time.March, 20), "a", 1, "X"),
			rec(day(2024, time.January, 5), "b", 1, "X"),
			rec(day(2024, time.February, 28), "c", 1, "X"),
		}
		month, year := p.MostRecentMonth(batch, fallback)
		if month != time.March || year != 2024 {
			t.Errorf("MostRecentMonth() = %v %d, want March 2024", month, year)
		}
	})
}

func TestTotals(t *testing.T) {
	p := NewAggregationProcessor()
	batch := []models.TransactionRecord{
		rec(day(2024, time.January, 1), "Company Salary Credit", 3000, "Salary"),
		rec(day(2024, time.January, 5), "Grocery Store", 200, "Food"),
		rec(day(2024, time.January, 10), "Electric Bill", 100, "Utilities"),
	}

	income, expenses, balance := p.Totals(batch)
	if income != 3000 {
		t.Errorf("income = %v, want 3000", income)
	}
	if expenses != 300 {
		t.Errorf("expenses = %v, want 300", expenses)
	}
	if balance != 2700 {
		t.Errorf("balance = %v, want 2700", balance)
	}
}

func TestCategoryTotals(t *testing.T) {
	p := NewAggregationProcessor()
	expenses := []models.TransactionRecord{
		rec(day(2024, time.January, 1), "a", 60, "Food"),
		rec(day(2024, time.January, 2), "b", 40, "Food"),
		rec(day(2024, time.January, 3), "c", 200, "Travel"),
		rec(day(2024, time.January, 4), "d", 100, "Bills"),
	}

	totals := p.CategoryTotals(expenses)
	if len(totals) != 3 {
		t.Fatalf("CategoryTotals() returned %d groups, want 3", len(totals))
	}

	// Sum of per-category totals must equal the total of the input.
	var sum float64
	for _, ct := range totals {
		sum += ct.Amount
	}
	if sum != 400 {
		t.Errorf("category sum = %v, want 400", sum)
	}

	// Ordered by amount descending.
	want := []models.CategoryTotal{
		{Category: "Travel", Amount: 200},
		{Category: "Bills", Amount: 100},
		{Category: "Food", Amount: 100},
	}
	for i, ct := range totals {
		if ct != want[i] {
			t.Errorf("totals[%d] = %+v, want %+v", i, ct, want[i])
		}
	}
}

func TestCategoryTotals_TieBreaksAlphabetically(t *testing.T) {
	p := NewAggregationProcessor()
	expenses := []models.TransactionRecord{
		rec(day(2024, time.January, 1), "a", 50, "Zeta"),
		rec(day(2024, time.January, 2), "b", 50, "Alpha"),
	}

	totals := p.CategoryTotals(expenses)
	if totals[0].Category != "Alpha" || totals[1].Category != "Zeta" {
		t.Errorf("tie order = %q, %q; want Alpha, Zeta", totals[0].Category, totals[1].Category)
	}
}

func TestFilterByCategory(t *testing.T) {
	p := NewAggregationProcessor()
	batch := []models.TransactionRecord{
		rec(day(2024, time.January, 1), "a", 1, "Food"),
		rec(day(2024, time.January, 2), "b", 1, "food"),
		rec(day(2024, time.January, 3), "c", 1, "Travel"),
	}

	if got := p.FilterByCategory(batch, ""); len(got) != 3 {
		t.Errorf("empty category filter kept %d, want all 3", len(got))
	}
	// Labels are matched exactly, no case folding.
	got := p.FilterByCategory(batch, "Food")
	if len(got) != 1 || got[0].Description != "a" {
		t.Errorf("FilterByCategory(Food) = %v, want single record a", got)
	}
}

func TestDailyTotals(t *testing.T) {
	p := NewAggregationProcessor()
	expenses := []models.TransactionRecord{
		rec(day(2024, time.January, 5), "a", 30, "Food"),
		rec(day(2024, time.January, 5), "b", 20, "Food"),
		rec(day(2024, time.January, 31), "c", 10, "Food"),
	}

	days := p.DailyTotals(expenses, time.January, 2024)
	if len(days) != 31 {
		t.Fatalf("DailyTotals() length = %d, want 31", len(days))
	}
	if days[4].Day != 5 || days[4].Amount != 50 {
		t.Errorf("day 5 = %+v, want {5 50}", days[4])
	}
	if days[30].Amount != 10 {
		t.Errorf("day 31 amount = %v, want 10", days[30].Amount)
	}
	// Days without spending are present with zero amounts.
	if days[0].Day != 1 || days[0].Amount != 0 {
		t.Errorf("day 1 = %+v, want {1 0}", days[0])
	}
}

func TestDailyTotals_MonthLengths(t *testing.T) {
	p := NewAggregationProcessor()
	tests := []struct {
		month time.Month
		year  int
		want  int
	}{
		{time.February, 2024, 29}, // leap year
		{time.February, 2023, 28},
		{time.April, 2024, 30},
		{time.December, 2024, 31},
	}
	for _, tt := range tests {
		if got := len(p.DailyTotals(nil, tt.month, tt.year)); got != tt.want {
			t.Errorf("DailyTotals(%v %d) length = %d, want %d", tt.month, tt.year, got, tt.want)
		}
	}
}

func TestAverageDaily(t *testing.T) {
	p := NewAggregationProcessor()

	if got := p.AverageDaily(nil); got != 0 {
		t.Errorf("AverageDaily(nil) = %v, want 0", got)
	}

	days := []models.DayTotal{{Day: 1, Amount: 10}, {Day: 2, Amount: 20}, {Day: 3, Amount: 0}, {Day: 4, Amount: 0}}
	if got := p.AverageDaily(days); math.Abs(got-7.5) > 1e-9 {
		t.Errorf("AverageDaily() = %v, want 7.5", got)
	}
}

func TestMonthlyTrend_YearBoundary(t *testing.T) {
	p := NewAggregationProcessor()
	batch := []models.TransactionRecord{
		rec(day(2023, time.November, 10), "a", 100, "Food"),
		rec(day(2024, time.January, 10), "b", 50, "Food"),
		rec(day(2023, time.July, 10), "outside window", 999, "Food"),
	}

	months := p.MonthlyTrend(batch, time.January, 2024)
	if len(months) != 6 {
		t.Fatalf("MonthlyTrend() length = %d, want 6", len(months))
	}

	wantLabels := []models.MonthTotal{
		{Month: "Aug", Year: 2023, Amount: 0},
		{Month: "Sep", Year: 2023, Amount: 0},
		{Month: "Oct", Year: 2023, Amount: 0},
		{Month: "Nov", Year: 2023, Amount: 100},
		{Month: "Dec", Year: 2023, Amount: 0},
		{Month: "Jan", Year: 2024, Amount: 50},
	}
	for i, m := range months {
		if m != wantLabels[i] {
			t.Errorf("months[%d] = %+v, want %+v", i, m, wantLabels[i])
		}
	}
}

func TestMonthlyTrend_ExcludesIncome(t *testing.T) {
	p := NewAggregationProcessor()
	batch := []models.TransactionRecord{
		rec(day(2024, time.June, 1), "Company Salary Credit", 3000, "Salary"),
		rec(day(2024, time.June, 5), "Groceries", 100, "Food"),
	}

	months := p.MonthlyTrend(batch, time.June, 2024)
	last := months[len(months)-1]
	if last.Amount != 100 {
		t.Errorf("June trend amount = %v, want 100 (income excluded)", last.Amount)
	}
}
