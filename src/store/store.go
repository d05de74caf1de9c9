// Package store owns the process-wide current batch of parsed transactions.
package store

import (
	"sync"

	"github.com/AryamanRoy/Raseed-FinanceAI/src/models"
)

// BatchStore holds the batch of records from the latest successful upload.
// Replacement swaps the slice reference under a write lock, so readers see
// either the complete old batch or the complete new one, never a mix.
// Records are read-only after creation; there is no per-record mutation.
type BatchStore struct {
	mu         sync.RWMutex
	batch      []models.TransactionRecord
	generation uint64
}

// New creates an empty BatchStore at generation 0.
func New() *BatchStore {
	return &BatchStore{}
}

// Replace installs a new batch wholesale and returns the new generation.
// The generation increases on every replace or clear and keys downstream
// memoization.
func (s *BatchStore) Replace(batch []models.TransactionRecord) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = batch
	s.generation++
	return s.generation
}

// Clear drops the current batch and returns the new generation.
func (s *BatchStore) Clear() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = nil
	s.generation++
	return s.generation
}

// Current returns the current batch and its generation. Callers must treat
// the returned slice as immutable.
func (s *BatchStore) Current() ([]models.TransactionRecord, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batch, s.generation
}

// HasData reports whether a non-empty batch is loaded.
func (s *BatchStore) HasData() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.batch) > 0
}
