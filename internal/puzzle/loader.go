package puzzle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Loader reads puzzle definitions from a directory of JSON assets,
// keyed by puzzle id ("<id>.json"). Definitions are cached on first
// load and shared read-only between requests.
type Loader struct {
	dir   string
	mu    sync.RWMutex
	cache map[string]*Definition
}

func NewLoader(dir string) *Loader {
	return &Loader{
		dir:   dir,
		cache: make(map[string]*Definition),
	}
}

// Load returns the definition for the given puzzle id, reading and
// validating the asset once and serving the cached copy afterwards.
func (l *Loader) Load(puzzleID string) (*Definition, error) {
	l.mu.RLock()
	def, ok := l.cache[puzzleID]
	l.mu.RUnlock()
	if ok {
		return def, nil
	}

	data, err := os.ReadFile(filepath.Join(l.dir, filepath.Base(puzzleID)+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPuzzleNotFound
		}
		return nil, fmt.Errorf("read puzzle %s: %w", puzzleID, err)
	}

	def = &Definition{}
	if err := json.Unmarshal(data, def); err != nil {
		return nil, fmt.Errorf("parse puzzle %s: %w", puzzleID, err)
	}
	def.ID = puzzleID
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("puzzle %s: %w", puzzleID, err)
	}

	l.mu.Lock()
	l.cache[puzzleID] = def
	l.mu.Unlock()

	return def, nil
}
