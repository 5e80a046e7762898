package puzzle

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDefinition builds a 3x3 grid:
//
//	C A T
//	A L E
//	T E N
//
// with an across word at the top row and a down word on the left column.
func testDefinition() *Definition {
	return &Definition{
		ID:         "test-3x3",
		Size:       Size{Rows: 3, Cols: 3},
		Solution:   "CATALETEN",
		CellLabels: map[int]int{},
		Clues: map[string]Clue{
			"1a": {Text: "Feline friend", Direction: DirAcross, StartIndex: 0},
			"1d": {Text: "Feline friend, vertically", Direction: DirDown, StartIndex: 0},
		},
	}
}

func TestWordCells(t *testing.T) {
	tests := []struct {
		name string
		def  *Definition
		clue string
		want []int
	}{
		{
			name: "across word walks right",
			def:  testDefinition(),
			clue: "1a",
			want: []int{0, 1, 2},
		},
		{
			name: "down word walks by column stride",
			def:  testDefinition(),
			clue: "1d",
			want: []int{0, 3, 6},
		},
		{
			name: "unknown clue",
			def:  testDefinition(),
			clue: "9z",
			want: nil,
		},
		{
			name: "diagonal word stops at grid edge without wrapping",
			def: &Definition{
				Size:       Size{Rows: 3, Cols: 3},
				Solution:   "CATALETEN",
				CellLabels: map[int]int{},
				Clues: map[string]Clue{
					"d": {Text: "Main diagonal", Direction: DirDiagonalDown, StartIndex: 0},
				},
			},
			clue: "d",
			want: []int{0, 4, 8},
		},
		{
			name: "across word stops before a void cell",
			def: &Definition{
				Size:       Size{Rows: 1, Cols: 5},
				Solution:   "CAT.X",
				CellLabels: map[int]int{},
				Clues: map[string]Clue{
					"1a": {Text: "Feline friend", Direction: DirAcross, StartIndex: 0},
				},
			},
			clue: "1a",
			want: []int{0, 1, 2},
		},
		{
			name: "across word stops at a label cell",
			def: &Definition{
				Size:       Size{Rows: 1, Cols: 5},
				Solution:   "XCATX",
				CellLabels: map[int]int{0: 1, 4: 2},
				Clues: map[string]Clue{
					"1a": {Text: "Feline friend", Direction: DirAcross, StartIndex: 1},
				},
			},
			clue: "1a",
			want: []int{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.def.WordCells(tt.clue))
		})
	}
}

func TestAnswerCells(t *testing.T) {
	def := &Definition{
		Size:       Size{Rows: 2, Cols: 3},
		Solution:   "CA.XOG",
		CellLabels: map[int]int{3: 1},
		Clues:      map[string]Clue{},
	}

	assert.True(t, def.IsAnswerCell(0))
	assert.False(t, def.IsAnswerCell(2), "void cell is not an answer cell")
	assert.False(t, def.IsAnswerCell(3), "label cell is not an answer cell")
	assert.False(t, def.IsAnswerCell(-1))
	assert.False(t, def.IsAnswerCell(6))

	assert.Equal(t, []int{0, 1, 4, 5}, def.AnswerCells())
	assert.Equal(t, 4, def.TotalAnswerCells())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Definition)
		wantErr bool
	}{
		{
			name:    "valid definition",
			mutate:  func(d *Definition) {},
			wantErr: false,
		},
		{
			name:    "solution length mismatch",
			mutate:  func(d *Definition) { d.Solution = "CAT" },
			wantErr: true,
		},
		{
			name:    "lowercase solution letter",
			mutate:  func(d *Definition) { d.Solution = "cATALETEN" },
			wantErr: true,
		},
		{
			name:    "label out of range",
			mutate:  func(d *Definition) { d.CellLabels = map[int]int{42: 1} },
			wantErr: true,
		},
		{
			name: "clue anchored on void cell",
			mutate: func(d *Definition) {
				d.Solution = ".ATALETEN"
			},
			wantErr: true,
		},
		{
			name: "single-cell word",
			mutate: func(d *Definition) {
				d.Clues["2a"] = Clue{Text: "Too short", Direction: DirAcross, StartIndex: 2}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := testDefinition()
			tt.mutate(def)
			err := def.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPuzzle)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	def := testDefinition()

	data, err := json.Marshal(def)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test-3x3.json"), data, 0o644))

	loader := NewLoader(dir)

	loaded, err := loader.Load("test-3x3")
	require.NoError(t, err)
	assert.Equal(t, def.Solution, loaded.Solution)
	assert.Equal(t, def.Size, loaded.Size)

	// Second load serves the cached copy
	again, err := loader.Load("test-3x3")
	require.NoError(t, err)
	assert.Same(t, loaded, again)

	_, err = loader.Load("missing")
	assert.ErrorIs(t, err, ErrPuzzleNotFound)
}

func TestLoaderRejectsInvalidAsset(t *testing.T) {
	dir := t.TempDir()
	def := testDefinition()
	def.Solution = "CAT" // wrong length

	data, err := json.Marshal(def)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), data, 0o644))

	_, err = NewLoader(dir).Load("broken")
	assert.ErrorIs(t, err, ErrInvalidPuzzle)
}
