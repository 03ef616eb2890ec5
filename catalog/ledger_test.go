package catalog

import (
	"errors"
	"testing"
)

func TestJoinIsIdempotent(t *testing.T) {
	l := NewLedger(catalogFixture(), newMemLedger())

	if _, err := l.Join(1, "A1"); err != nil {
		t.Fatalf("first Join failed: %v", err)
	}
	got, err := l.Join(1, "A1")
	if err != nil {
		t.Fatalf("second Join failed: %v", err)
	}
	if !equalStrings(got, []string{"A1"}) {
		t.Errorf("ledger = %v, want [A1]", got)
	}
}

func TestJoinKeepsInsertionOrder(t *testing.T) {
	l := NewLedger(catalogFixture(), newMemLedger())
	l.Join(1, "C1")
	l.Join(1, "A1")
	got, _ := l.Join(1, "B1")
	if want := []string{"C1", "A1", "B1"}; !equalStrings(got, want) {
		t.Errorf("ledger = %v, want %v", got, want)
	}
}

func TestJoinUnknownProduct(t *testing.T) {
	store := newMemLedger()
	l := NewLedger(catalogFixture(), store)
	l.Join(1, "A1")

	_, err := l.Join(1, "ZZ")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	got, _ := l.Codes(1)
	if !equalStrings(got, []string{"A1"}) {
		t.Errorf("ledger mutated: %v", got)
	}
}

func TestUnjoin(t *testing.T) {
	l := NewLedger(catalogFixture(), newMemLedger())
	l.Join(1, "A1")
	l.Join(1, "B1")

	got, err := l.Unjoin(1, "C1")
	if err != nil {
		t.Fatalf("Unjoin of never-joined code failed: %v", err)
	}
	if !equalStrings(got, []string{"A1", "B1"}) {
		t.Errorf("ledger = %v, want unchanged", got)
	}

	got, err = l.Unjoin(1, "A1")
	if err != nil {
		t.Fatalf("Unjoin failed: %v", err)
	}
	if !equalStrings(got, []string{"B1"}) {
		t.Errorf("ledger = %v, want [B1]", got)
	}
}

func TestLedgersArePerUser(t *testing.T) {
	l := NewLedger(catalogFixture(), newMemLedger())
	l.Join(1, "A1")
	got, _ := l.Join(2, "B1")
	if !equalStrings(got, []string{"B1"}) {
		t.Errorf("user 2 ledger = %v, want [B1]", got)
	}
}
