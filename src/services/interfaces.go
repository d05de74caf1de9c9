package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/AryamanRoy/Raseed-FinanceAI/src/models"
)

// Cache lifetimes for derived reports. Entries are keyed by batch
// generation, so expiry is a memory bound, not a correctness mechanism.
const (
	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

// Typed service errors surfaced to handlers.
var (
	ErrUploadInFlight   = errors.New("an upload is already in progress")
	ErrUploadSuperseded = errors.New("upload superseded by a newer request")
	ErrNoBatch          = errors.New("no transaction data uploaded yet")

	ErrAdvisorMisconfigured = errors.New("advisor service is not configured")
	ErrAdvisorUnreachable   = errors.New("advisor service is unreachable")
)

// UploadSummary is the result of one successful upload: what was committed.
type UploadSummary struct {
	TransactionCount int    `json:"transactionCount"`
	Generation       uint64 `json:"generation"`
	EarliestDate     string `json:"earliestDate,omitempty"`
	LatestDate       string `json:"latestDate,omitempty"`
}

// CategorizerClient is the boundary to the external categorization service.
// It receives the raw upload and returns the same delimited format with
// category labels assigned.
type CategorizerClient interface {
	Categorize(ctx context.Context, filename string, file io.Reader) (string, error)
}

// UploadService owns the upload lifecycle: categorize, parse, swap the
// current batch.
type UploadService interface {
	// ProcessUpload runs one upload end to end. At most one upload may be
	// in flight; a concurrent attempt fails with ErrUploadInFlight. On any
	// failure the previous batch is left untouched.
	ProcessUpload(ctx context.Context, file io.Reader, filename string) (*UploadSummary, error)
	// Clear drops the current batch.
	Clear()
}

// Scope restricts which records an aggregation considers.
type Scope struct {
	Window   string // "this-month" (default) or "last-month"
	Category string // exact category label, empty for all
}

// ReportService computes (and memoizes) the derived views over the current
// batch. All results are pure functions of (batch generation, scope).
type ReportService interface {
	Summary(scope Scope) models.DashboardSummary
	Categories(scope Scope) models.CategoryReport
	Daily(scope Scope) models.DailyReport
	Trend() models.TrendReport
	Insights(scope Scope) models.InsightsReport
	Transactions() []models.TransactionRecord
}

// AdvisorService forwards free-text queries to the external advisor along
// with conversation history and a context block derived from the batch.
type AdvisorService interface {
	Ask(ctx context.Context, message string, history []models.ChatMessage) (string, error)
}
