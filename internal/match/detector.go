package match

import (
	"sort"

	"gridmates-go/internal/puzzle"
)

// NewlyCompletedWords returns the clue ids whose target words became
// fully locked by the latest submission: every word cell is present in
// the post-move board and at least one was absent before the move.
// Overlapping words completed by a single placed letter are each
// reported independently.
func NewlyCompletedWords(def *puzzle.Definition, before, after Board) WordIDs {
	var completed WordIDs
	for clueID := range def.Clues {
		cells := def.WordCells(clueID)
		if len(cells) == 0 {
			continue
		}
		all, fresh := true, false
		for _, index := range cells {
			if _, ok := after[index]; !ok {
				all = false
				break
			}
			if _, ok := before[index]; !ok {
				fresh = true
			}
		}
		if all && fresh {
			completed = append(completed, clueID)
		}
	}
	// Map iteration order is random; keep the audit record stable.
	sort.Strings(completed)
	return completed
}

// WordLength returns the cell count of a clue's target word
func WordLength(def *puzzle.Definition, clueID string) int {
	return len(def.WordCells(clueID))
}
