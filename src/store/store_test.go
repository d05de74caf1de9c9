package store

import (
	"sync"
	"testing"

	"github.com/AryamanRoy/Raseed-FinanceAI/src/models"
)

func batchOf(descriptions ...string) []models.TransactionRecord {
	batch := make([]models.TransactionRecord, len(descriptions))
	for i, d := range descriptions {
		batch[i] = models.TransactionRecord{ID: d, Description: d, Amount: 1}
	}
	return batch
}

func TestBatchStore_ReplaceSupersedes(t *testing.T) {
	s := New()

	if s.HasData() {
		t.Error("new store should have no data")
	}

	gen1 := s.Replace(batchOf("a", "b"))
	if gen1 != 1 {
		t.Errorf("first Replace generation = %d, want 1", gen1)
	}

	gen2 := s.Replace(batchOf("c"))
	if gen2 != 2 {
		t.Errorf("second Replace generation = %d, want 2", gen2)
	}

	// Replacement is total: nothing from the first batch survives.
	batch, gen := s.Current()
	if gen != gen2 {
		t.Errorf("Current generation = %d, want %d", gen, gen2)
	}
	if len(batch) != 1 || batch[0].Description != "c" {
		t.Errorf("Current batch = %v, want single record c", batch)
	}
}

func TestBatchStore_Clear(t *testing.T) {
	s := New()
	s.Replace(batchOf("a"))

	gen := s.Clear()
	if gen != 2 {
		t.Errorf("Clear generation = %d, want 2", gen)
	}
	if s.HasData() {
		t.Error("store should be empty after Clear")
	}
	batch, _ := s.Current()
	if len(batch) != 0 {
		t.Errorf("Current batch after Clear = %v, want empty", batch)
	}
}

func TestBatchStore_GenerationAlwaysAdvances(t *testing.T) {
	s := New()
	var last uint64
	for i := 0; i < 5; i++ {
		gen := s.Replace(batchOf("x"))
		if gen <= last {
			t.Fatalf("generation %d did not advance past %d", gen, last)
		}
		last = gen
		gen = s.Clear()
		if gen <= last {
			t.Fatalf("generation %d did not advance past %d", gen, last)
		}
		last = gen
	}
}

func TestBatchStore_ConcurrentReaders(t *testing.T) {
	s := New()
	s.Replace(batchOf("a", "b", "c"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				batch, _ := s.Current()
				// Readers see a complete batch, never a partial one.
				if len(batch) != 0 && len(batch) != 3 && len(batch) != 1 {
					t.Errorf("torn read: %d records", len(batch))
					return
				}
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Replace(batchOf("only"))
			}
		}()
	}
	wg.Wait()
}
