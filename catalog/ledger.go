package catalog

import "fmt"

// LedgerStore persists the per-user set of joined product codes.
// Add and Remove are idempotent and must be atomic per (user, code); both
// return the user's codes in insertion order after the change.
type LedgerStore interface {
	Codes(userID int64) ([]string, error)
	Add(userID int64, code string) ([]string, error)
	Remove(userID int64, code string) ([]string, error)
}

// Ledger is the membership (join/unjoin) toggle.
type Ledger struct {
	products ProductStore
	store    LedgerStore
}

func NewLedger(products ProductStore, store LedgerStore) *Ledger {
	return &Ledger{products: products, store: store}
}

// Join adds code to the user's ledger. Unknown products fail with ErrNotFound
// and leave the ledger untouched; joining twice keeps a single entry.
func (l *Ledger) Join(userID int64, code string) ([]string, error) {
	if _, err := l.products.Get(code); err != nil {
		return nil, err
	}
	codes, err := l.store.Add(userID, code)
	if err != nil {
		return nil, fmt.Errorf("join %s: %w", code, err)
	}
	return codes, nil
}

// Unjoin removes code from the user's ledger. Removing a code that was never
// joined is a no-op that returns the unchanged ledger.
func (l *Ledger) Unjoin(userID int64, code string) ([]string, error) {
	codes, err := l.store.Remove(userID, code)
	if err != nil {
		return nil, fmt.Errorf("unjoin %s: %w", code, err)
	}
	return codes, nil
}

// Codes returns the raw ledger, dangling codes included.
func (l *Ledger) Codes(userID int64) ([]string, error) {
	return l.store.Codes(userID)
}
