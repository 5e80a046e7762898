package rewards

import (
	"context"
	"sync"
)

// memoryLedger mirrors the Postgres dedup semantics in memory for
// tests and single-node development.
type memoryLedger struct {
	mu     sync.Mutex
	awards map[string]*Award
}

func NewMemoryLedger() Ledger {
	return &memoryLedger{awards: make(map[string]*Award)}
}

func (l *memoryLedger) Award(ctx context.Context, a *Award) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := a.CoupleID + "/" + a.RelatedID
	if _, ok := l.awards[key]; ok {
		return false, nil
	}
	l.awards[key] = a
	return true, nil
}

func (l *memoryLedger) Total(ctx context.Context, coupleID string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := 0
	for _, a := range l.awards {
		if a.CoupleID == coupleID {
			total += a.Amount
		}
	}
	return total, nil
}
