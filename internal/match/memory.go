package match

import (
	"context"
	"sync"
)

// memoryStore is an in-memory Store used in tests and single-node
// development. Exclusive match locks are per-match mutexes acquired
// with TryLock so contention surfaces as ErrLockContention, matching
// the Postgres NOWAIT behavior.
type memoryStore struct {
	mu       sync.RWMutex
	matches  map[string]*Match
	byCouple map[string]string
	moves    map[string][]*Move
	locks    map[string]*sync.Mutex
}

func NewMemoryStore() Store {
	return &memoryStore{
		matches:  make(map[string]*Match),
		byCouple: make(map[string]string),
		moves:    make(map[string][]*Move),
		locks:    make(map[string]*sync.Mutex),
	}
}

func coupleKey(coupleID, puzzleID string) string {
	return coupleID + "/" + puzzleID
}

func (s *memoryStore) Create(ctx context.Context, m *Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := coupleKey(m.CoupleID, m.PuzzleID)
	if _, ok := s.byCouple[key]; ok {
		return ErrMatchExists
	}
	s.matches[m.ID] = m.Clone()
	s.byCouple[key] = m.ID
	s.locks[m.ID] = &sync.Mutex{}
	return nil
}

func (s *memoryStore) Get(ctx context.Context, id string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return m.Clone(), nil
}

func (s *memoryStore) FindByCouplePuzzle(ctx context.Context, coupleID, puzzleID string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byCouple[coupleKey(coupleID, puzzleID)]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return s.matches[id].Clone(), nil
}

func (s *memoryStore) Update(ctx context.Context, id string, fn func(m *Match) (*Move, error)) (*Match, error) {
	s.mu.RLock()
	lock, ok := s.locks[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrMatchNotFound
	}

	if !lock.TryLock() {
		return nil, ErrLockContention
	}
	defer lock.Unlock()

	s.mu.RLock()
	current := s.matches[id]
	s.mu.RUnlock()
	if current == nil {
		return nil, ErrMatchNotFound
	}

	// fn mutates a copy; the stored record only changes on success.
	working := current.Clone()
	move, err := fn(working)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.matches[id] = working
	if move != nil {
		s.moves[id] = append(s.moves[id], move)
	}
	s.mu.Unlock()

	return working.Clone(), nil
}

func (s *memoryStore) ListMoves(ctx context.Context, matchID string) ([]*Move, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	moves := s.moves[matchID]
	out := make([]*Move, len(moves))
	copy(out, moves)
	return out, nil
}
