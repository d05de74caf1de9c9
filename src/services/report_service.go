package services

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/AryamanRoy/Raseed-FinanceAI/src/models"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/processors"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/store"
)

// Scope window values.
const (
	WindowThisMonth = "this-month"
	WindowLastMonth = "last-month"
)

// Cache key formats. Every key embeds the batch generation, so a swapped
// batch can never serve a stale report even before the flush lands.
const (
	ckSummary    = "agg_summary_g%d_w%s_c%s"
	ckCategories = "agg_categories_g%d_w%s_c%s"
	ckDaily      = "agg_daily_g%d_w%s_c%s"
	ckTrend      = "agg_trend_g%d"
	ckInsights   = "agg_insights_g%d_w%s_c%s"
)

type reportServiceImpl struct {
	batchStore  *store.BatchStore
	aggregation *processors.AggregationProcessor
	insights    *processors.InsightsProcessor
	reportCache *cache.Cache
	now         func() time.Time
}

// NewReportService creates the memoized report layer over the batch store.
func NewReportService(
	batchStore *store.BatchStore,
	aggregation *processors.AggregationProcessor,
	insights *processors.InsightsProcessor,
	reportCache *cache.Cache,
) ReportService {
	return &reportServiceImpl{
		batchStore:  batchStore,
		aggregation: aggregation,
		insights:    insights,
		reportCache: reportCache,
		now:         time.Now,
	}
}

// Normalize fills the scope's window default.
func (s Scope) normalized() Scope {
	if s.Window != WindowLastMonth {
		s.Window = WindowThisMonth
	}
	return s
}

// resolveWindow maps a scope window onto a concrete (month, year) pair.
// "this-month" is the most recent month present in the batch; "last-month"
// is the calendar month before it, wrapping the year at January.
func (s *reportServiceImpl) resolveWindow(batch []models.TransactionRecord, window string) (time.Month, int) {
	month, year := s.aggregation.MostRecentMonth(batch, s.now())
	if window == WindowLastMonth {
		if month == time.January {
			return time.December, year - 1
		}
		return month - 1, year
	}
	return month, year
}

// scopedRecords applies the scope's time window and category filter.
func (s *reportServiceImpl) scopedRecords(batch []models.TransactionRecord, scope Scope) []models.TransactionRecord {
	month, year := s.resolveWindow(batch, scope.Window)
	scoped := s.aggregation.FilterByMonth(batch, month, year)
	return s.aggregation.FilterByCategory(scoped, scope.Category)
}

func (s *reportServiceImpl) snapshot(scoped []models.TransactionRecord) models.FinancialSnapshot {
	income, expenses, balance := s.aggregation.Totals(scoped)
	categoryCount := len(s.aggregation.CategoryTotals(s.aggregation.Expenses(scoped)))
	return models.FinancialSnapshot{
		Income:             income,
		Expenses:           expenses,
		Balance:            balance,
		SavingsRatePercent: s.insights.SavingsRate(income, expenses),
		HealthScore:        s.insights.HealthScore(income, expenses, categoryCount),
	}
}

func (s *reportServiceImpl) Summary(scope Scope) models.DashboardSummary {
	scope = scope.normalized()
	batch, generation := s.batchStore.Current()

	cacheKey := fmt.Sprintf(ckSummary, generation, scope.Window, scope.Category)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(models.DashboardSummary)
	}

	month, year := s.resolveWindow(batch, scope.Window)
	scoped := s.scopedRecords(batch, scope)
	summary := models.DashboardSummary{
		HasData:          len(batch) > 0,
		Month:            fmt.Sprintf("%s %d", month, year),
		Snapshot:         s.snapshot(scoped),
		TransactionCount: len(scoped),
	}

	s.reportCache.Set(cacheKey, summary, cache.DefaultExpiration)
	return summary
}

func (s *reportServiceImpl) Categories(scope Scope) models.CategoryReport {
	scope = scope.normalized()
	batch, generation := s.batchStore.Current()

	cacheKey := fmt.Sprintf(ckCategories, generation, scope.Window, scope.Category)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(models.CategoryReport)
	}

	expenses := s.aggregation.Expenses(s.scopedRecords(batch, scope))
	totals := s.aggregation.CategoryTotals(expenses)
	var totalExpenses float64
	for _, ct := range totals {
		totalExpenses += ct.Amount
	}

	report := models.CategoryReport{
		Window:        scope.Window,
		Category:      scope.Category,
		Totals:        totals,
		TotalExpenses: totalExpenses,
	}
	s.reportCache.Set(cacheKey, report, cache.DefaultExpiration)
	return report
}

func (s *reportServiceImpl) Daily(scope Scope) models.DailyReport {
	scope = scope.normalized()
	batch, generation := s.batchStore.Current()

	cacheKey := fmt.Sprintf(ckDaily, generation, scope.Window, scope.Category)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(models.DailyReport)
	}

	month, year := s.resolveWindow(batch, scope.Window)
	expenses := s.aggregation.Expenses(s.scopedRecords(batch, scope))
	days := s.aggregation.DailyTotals(expenses, month, year)

	report := models.DailyReport{
		Window:       scope.Window,
		Days:         days,
		AverageDaily: s.aggregation.AverageDaily(days),
	}
	s.reportCache.Set(cacheKey, report, cache.DefaultExpiration)
	return report
}

func (s *reportServiceImpl) Trend() models.TrendReport {
	batch, generation := s.batchStore.Current()

	cacheKey := fmt.Sprintf(ckTrend, generation)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(models.TrendReport)
	}

	baseMonth, baseYear := s.aggregation.MostRecentMonth(batch, s.now())
	report := models.TrendReport{
		Months: s.aggregation.MonthlyTrend(batch, baseMonth, baseYear),
	}
	s.reportCache.Set(cacheKey, report, cache.DefaultExpiration)
	return report
}

func (s *reportServiceImpl) Insights(scope Scope) models.InsightsReport {
	scope = scope.normalized()
	batch, generation := s.batchStore.Current()

	cacheKey := fmt.Sprintf(ckInsights, generation, scope.Window, scope.Category)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(models.InsightsReport)
	}

	scoped := s.scopedRecords(batch, scope)
	totals := s.aggregation.CategoryTotals(s.aggregation.Expenses(scoped))

	report := models.InsightsReport{
		HasData:       len(batch) > 0,
		Snapshot:      s.snapshot(scoped),
		CategoryCount: len(totals),
		Budget:        s.insights.BudgetVariances(totals),
	}
	s.reportCache.Set(cacheKey, report, cache.DefaultExpiration)
	return report
}

// Transactions returns the full current batch in insertion order.
func (s *reportServiceImpl) Transactions() []models.TransactionRecord {
	batch, _ := s.batchStore.Current()
	if batch == nil {
		return []models.TransactionRecord{}
	}
	return batch
}
