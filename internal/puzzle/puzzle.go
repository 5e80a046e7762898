package puzzle

import (
	"errors"
	"fmt"
)

var (
	ErrPuzzleNotFound = errors.New("puzzle not found")
	ErrInvalidPuzzle  = errors.New("invalid puzzle definition")
)

// VoidCell marks a grid position that holds no answer letter.
const VoidCell = '.'

// Direction represents the axis a word runs along
type Direction string

const (
	DirAcross       Direction = "across"        // +1
	DirDown         Direction = "down"          // +cols
	DirDiagonalDown Direction = "diagonal_down" // +cols+1
	DirDiagonalUp   Direction = "diagonal_up"   // +cols-1
)

// Clue represents one target word's metadata. The answer itself is
// derived from the grid solution, never stored on the clue.
type Clue struct {
	Text       string    `json:"text"`
	Direction  Direction `json:"direction"`
	StartIndex int       `json:"startIndex"`
}

// Definition is an immutable puzzle asset: grid size, per-cell solution,
// label placements and clue metadata. Loaded once per puzzle id and
// treated as read-only for the life of the process.
type Definition struct {
	ID         string          `json:"id"`
	Size       Size            `json:"size"`
	Solution   string          `json:"solution"`
	CellLabels map[int]int     `json:"cellLabels"`
	Clues      map[string]Clue `json:"clues"`
}

// Size represents the grid dimensions
type Size struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Cells returns the total number of grid cells
func (s Size) Cells() int {
	return s.Rows * s.Cols
}

// IsVoidCell reports whether the cell holds no solution letter
func (d *Definition) IsVoidCell(index int) bool {
	return index < 0 || index >= len(d.Solution) || d.Solution[index] == VoidCell
}

// IsLabelCell reports whether the cell renders clue text
func (d *Definition) IsLabelCell(index int) bool {
	return d.CellLabels[index] != 0
}

// IsAnswerCell reports whether a player can fill the cell. Answer cells
// are exactly the cells that are neither void nor labels.
func (d *Definition) IsAnswerCell(index int) bool {
	return !d.IsVoidCell(index) && !d.IsLabelCell(index)
}

// SolutionLetter returns the correct letter for an answer cell
func (d *Definition) SolutionLetter(index int) byte {
	return d.Solution[index]
}

// AnswerCells returns all fillable cell indices in grid order
func (d *Definition) AnswerCells() []int {
	cells := make([]int, 0, len(d.Solution))
	for i := range d.Solution {
		if d.IsAnswerCell(i) {
			cells = append(cells, i)
		}
	}
	return cells
}

// TotalAnswerCells returns the number of fillable cells
func (d *Definition) TotalAnswerCells() int {
	return len(d.AnswerCells())
}

// step advances one cell along the direction, returning -1 once the walk
// leaves the grid. Row/col arithmetic guards against wrapping at the
// grid edge, which a flat index delta alone would not catch.
func (d *Definition) step(index int, dir Direction) int {
	row, col := index/d.Size.Cols, index%d.Size.Cols
	switch dir {
	case DirAcross:
		col++
	case DirDown:
		row++
	case DirDiagonalDown:
		row, col = row+1, col+1
	case DirDiagonalUp:
		row, col = row+1, col-1
	default:
		return -1
	}
	if row < 0 || row >= d.Size.Rows || col < 0 || col >= d.Size.Cols {
		return -1
	}
	return row*d.Size.Cols + col
}

// WordCells derives the ordered cell indices of a clue's target word:
// the run of answer cells walked from the clue's anchor along its
// direction. Returns nil for an unknown clue id.
func (d *Definition) WordCells(clueID string) []int {
	clue, ok := d.Clues[clueID]
	if !ok {
		return nil
	}
	var cells []int
	for index := clue.StartIndex; index >= 0 && d.IsAnswerCell(index); index = d.step(index, clue.Direction) {
		cells = append(cells, index)
	}
	return cells
}

// Validate checks the structural invariants of a loaded definition
func (d *Definition) Validate() error {
	if d.Size.Rows < 1 || d.Size.Cols < 1 {
		return fmt.Errorf("%w: non-positive grid size", ErrInvalidPuzzle)
	}
	if len(d.Solution) != d.Size.Cells() {
		return fmt.Errorf("%w: solution length %d does not match %dx%d grid",
			ErrInvalidPuzzle, len(d.Solution), d.Size.Rows, d.Size.Cols)
	}
	for i := 0; i < len(d.Solution); i++ {
		c := d.Solution[i]
		if c != VoidCell && (c < 'A' || c > 'Z') {
			return fmt.Errorf("%w: solution cell %d holds %q, want A-Z or '.'", ErrInvalidPuzzle, i, c)
		}
	}
	for index, num := range d.CellLabels {
		if index < 0 || index >= d.Size.Cells() {
			return fmt.Errorf("%w: label cell %d out of range", ErrInvalidPuzzle, index)
		}
		if num <= 0 {
			return fmt.Errorf("%w: label cell %d has non-positive clue number", ErrInvalidPuzzle, index)
		}
	}
	for id, clue := range d.Clues {
		if !d.IsAnswerCell(clue.StartIndex) {
			return fmt.Errorf("%w: clue %s anchors on a non-answer cell", ErrInvalidPuzzle, id)
		}
		if len(d.WordCells(id)) < 2 {
			return fmt.Errorf("%w: clue %s spans fewer than two cells", ErrInvalidPuzzle, id)
		}
	}
	if d.TotalAnswerCells() == 0 {
		return fmt.Errorf("%w: no answer cells", ErrInvalidPuzzle)
	}
	return nil
}
