package inmemory

import (
	"slices"
	"sync"

	"github.com/bloomwithanjli/checkout/internal/application/journal"
)

type JournalRepository struct {
	mu      sync.RWMutex
	entries []journal.Entry
}

func NewJournalRepository() *JournalRepository {
	return &JournalRepository{}
}

func (r *JournalRepository) Save(entry journal.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	return nil
}

func (r *JournalRepository) FindByPaymentID(paymentID string) ([]journal.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []journal.Entry
	for _, entry := range r.entries {
		if entry.PaymentID == paymentID {
			found = append(found, entry)
		}
	}

	return found, nil
}

func (r *JournalRepository) Entries() []journal.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.entries)
}
