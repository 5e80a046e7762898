package match

import (
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gridmates-go/internal/puzzle"
	"gridmates-go/internal/rewards"
)

// threeByThree is a fully fillable 3x3 grid:
//
//	C A T
//	D O G
//	P I G
//
// with one across word per row.
func threeByThree() *puzzle.Definition {
	return &puzzle.Definition{
		ID:         "grid-3x3",
		Size:       puzzle.Size{Rows: 3, Cols: 3},
		Solution:   "CATDOGPIG",
		CellLabels: map[int]int{},
		Clues: map[string]puzzle.Clue{
			"1a": {Text: "Feline friend", Direction: puzzle.DirAcross, StartIndex: 0},
			"2a": {Text: "Loyal companion", Direction: puzzle.DirAcross, StartIndex: 3},
			"3a": {Text: "Mud lover", Direction: puzzle.DirAcross, StartIndex: 6},
		},
	}
}

// oneByThree is a single across word, CAT
func oneByThree() *puzzle.Definition {
	return &puzzle.Definition{
		ID:         "strip-1x3",
		Size:       puzzle.Size{Rows: 1, Cols: 3},
		Solution:   "CAT",
		CellLabels: map[int]int{},
		Clues: map[string]puzzle.Clue{
			"1a": {Text: "Feline friend", Direction: puzzle.DirAcross, StartIndex: 0},
		},
	}
}

func writePuzzles(t *testing.T, defs ...*puzzle.Definition) *puzzle.Loader {
	t.Helper()
	dir := t.TempDir()
	for _, def := range defs {
		data, err := json.Marshal(def)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, def.ID+".json"), data, 0o644))
	}
	return puzzle.NewLoader(dir)
}

type testEnv struct {
	service Service
	store   Store
	ledger  rewards.Ledger
}

func newTestEnv(t *testing.T, settings puzzle.Settings, seed int64, defs ...*puzzle.Definition) *testEnv {
	t.Helper()
	store := NewMemoryStore()
	ledger := rewards.NewMemoryLedger()
	service := NewService(
		store,
		writePuzzles(t, defs...),
		NewDealer(rand.New(rand.NewSource(seed))),
		ledger,
		settings,
		50,
	)
	return &testEnv{service: service, store: store, ledger: ledger}
}

// correctPlacements assigns every rack letter to a distinct open
// destination cell. The dealer guarantees such a matching exists.
func correctPlacements(t *testing.T, def *puzzle.Definition, board Board, rack Rack) []PlacementRequest {
	t.Helper()
	used := map[int]bool{}
	reqs := make([]PlacementRequest, 0, len(rack))
	for _, letter := range rack {
		placed := false
		for _, cell := range Destinations(def, board, letter) {
			if !used[cell] {
				used[cell] = true
				reqs = append(reqs, PlacementRequest{CellIndex: cell, Letter: letter})
				placed = true
				break
			}
		}
		require.True(t, placed, "rack letter %q has no unused destination", letter)
	}
	return reqs
}
