package match

import (
	"errors"
	"math/rand"
	"sort"
	"sync"

	"gridmates-go/internal/puzzle"
)

var (
	// ErrNoUndealtCells indicates a deal was requested with no open
	// cells left. A fully locked board must already be completed, so
	// reaching this is an invariant violation, not a runtime case.
	ErrNoUndealtCells = errors.New("no undealt cells remain")
)

// Dealer selects rack letters from the still-unlocked answer cells.
// Every dealt letter corresponds one-to-one to a real, currently open
// destination cell. The random source is injected so tests can seed it
// and assert exact rack contents.
type Dealer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewDealer(rng *rand.Rand) *Dealer {
	return &Dealer{rng: rng}
}

// UndealtCells returns the answer cells not yet locked into the board,
// in grid order.
func UndealtCells(def *puzzle.Definition, board Board) []int {
	var cells []int
	for _, index := range def.AnswerCells() {
		if _, locked := board[index]; !locked {
			cells = append(cells, index)
		}
	}
	return cells
}

// Deal draws up to size letters for the next turn. If fewer than size
// cells remain open, all remaining letters are dealt.
func (d *Dealer) Deal(def *puzzle.Definition, board Board, size int) (Rack, error) {
	open := UndealtCells(def, board)
	if len(open) == 0 {
		return nil, ErrNoUndealtCells
	}

	d.mu.Lock()
	d.rng.Shuffle(len(open), func(i, j int) {
		open[i], open[j] = open[j], open[i]
	})
	d.mu.Unlock()

	if size > len(open) {
		size = len(open)
	}

	rack := make(Rack, 0, size)
	for _, index := range open[:size] {
		rack = append(rack, string(def.SolutionLetter(index)))
	}
	return rack, nil
}

// PickLetter chooses one rack letter at random. Used by the hint
// service so reveals are not biased toward the first slot.
func (d *Dealer) PickLetter(rack Rack) string {
	if len(rack) == 0 {
		return ""
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return rack[d.rng.Intn(len(rack))]
}

// Destinations returns the open answer cells a letter could correctly
// fill, sorted in grid order.
func Destinations(def *puzzle.Definition, board Board, letter string) []int {
	var cells []int
	for _, index := range UndealtCells(def, board) {
		if string(def.SolutionLetter(index)) == letter {
			cells = append(cells, index)
		}
	}
	sort.Ints(cells)
	return cells
}
