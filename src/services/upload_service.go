package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/patrickmn/go-cache"

	"github.com/AryamanRoy/Raseed-FinanceAI/src/logger"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/parsers/bankcsv"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/security/validation"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/store"
)

const dateLayout = "02-01-2006"

type uploadServiceImpl struct {
	categorizer CategorizerClient
	parser      *bankcsv.Parser
	batchStore  *store.BatchStore
	reportCache *cache.Cache

	inFlight atomic.Bool
	ticket   atomic.Uint64
	commitMu sync.Mutex
}

// NewUploadService wires the upload pipeline: categorization client,
// parser, batch store and the report cache to flush on replacement.
func NewUploadService(
	categorizer CategorizerClient,
	parser *bankcsv.Parser,
	batchStore *store.BatchStore,
	reportCache *cache.Cache,
) UploadService {
	return &uploadServiceImpl{
		categorizer: categorizer,
		parser:      parser,
		batchStore:  batchStore,
		reportCache: reportCache,
	}
}

// ProcessUpload forwards the raw file to the categorization service, parses
// the relabeled text it returns and swaps it in as the current batch.
//
// Invariants: at most one upload is in flight; only the most recently
// issued request may commit, so a stale completion can never overwrite a
// newer batch; any failure leaves the previous batch untouched.
func (s *uploadServiceImpl) ProcessUpload(ctx context.Context, file io.Reader, filename string) (*UploadSummary, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrUploadInFlight
	}
	defer s.inFlight.Store(false)

	ticket := s.ticket.Add(1)

	categorized, err := s.categorizer.Categorize(ctx, filename, file)
	if err != nil {
		return nil, fmt.Errorf("categorizing upload %q: %w", filename, err)
	}

	records := s.parser.Parse(categorized)
	for i := range records {
		records[i].Description = validation.StripUnprintable(validation.SanitizeText(records[i].Description))
		records[i].Category = validation.StripUnprintable(validation.SanitizeText(records[i].Category))
	}

	s.commitMu.Lock()
	defer s.commitMu.Unlock()
	if ticket != s.ticket.Load() {
		return nil, ErrUploadSuperseded
	}
	generation := s.batchStore.Replace(records)
	s.reportCache.Flush()

	summary := &UploadSummary{
		TransactionCount: len(records),
		Generation:       generation,
	}
	if len(records) > 0 {
		earliest, latest := records[0].Date, records[0].Date
		for _, rec := range records[1:] {
			if rec.Date.Before(earliest) {
				earliest = rec.Date
			}
			if rec.Date.After(latest) {
				latest = rec.Date
			}
		}
		summary.EarliestDate = earliest.Format(dateLayout)
		summary.LatestDate = latest.Format(dateLayout)
	}

	logger.L.Info("Upload committed", "filename", filename, "transactions", len(records), "generation", generation)
	return summary, nil
}

// Clear drops the current batch and invalidates derived reports.
func (s *uploadServiceImpl) Clear() {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()
	s.ticket.Add(1) // any in-flight upload is now stale
	generation := s.batchStore.Clear()
	s.reportCache.Flush()
	logger.L.Info("Batch cleared", "generation", generation)
}
