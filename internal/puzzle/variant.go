package puzzle

import (
	"fmt"
)

// Variant represents the board-style games sharing the engine
type Variant string

const (
	VariantCrossword  Variant = "crossword"   // word placement against clues
	VariantWordSearch Variant = "word_search" // find runs in any direction
	VariantMemoryGrid Variant = "memory_grid" // pair matching on a letter grid
)

// Settings represents the per-variant tuning of the engine
type Settings struct {
	Variant          Variant     `json:"variant"`
	RackSize         int         `json:"rack_size"`
	InitialHints     int         `json:"initial_hints"`
	LetterPoints     int         `json:"letter_points"`
	WordBonusPerCell int         `json:"word_bonus_per_cell"`
	Directions       []Direction `json:"directions"`
}

// DefaultSettings returns default settings for each game variant
func DefaultSettings(variant Variant) Settings {
	base := Settings{
		Variant:          variant,
		RackSize:         5,
		InitialHints:     2,
		LetterPoints:     10,
		WordBonusPerCell: 10,
	}

	switch variant {
	case VariantCrossword:
		base.Directions = []Direction{DirAcross, DirDown}

	case VariantWordSearch:
		base.Directions = []Direction{DirAcross, DirDown, DirDiagonalDown, DirDiagonalUp}

	case VariantMemoryGrid:
		base.RackSize = 2
		base.Directions = []Direction{DirAcross}
	}

	return base
}

// ValidateSettings validates variant settings
func ValidateSettings(settings Settings) error {
	switch settings.Variant {
	case VariantCrossword, VariantWordSearch, VariantMemoryGrid:
	default:
		return fmt.Errorf("unknown variant %q", settings.Variant)
	}

	if settings.RackSize < 1 || settings.RackSize > 5 {
		return fmt.Errorf("rack size must be between 1 and 5")
	}
	if settings.InitialHints < 0 {
		return fmt.Errorf("initial hints cannot be negative")
	}
	if settings.LetterPoints < 0 || settings.WordBonusPerCell < 0 {
		return fmt.Errorf("point values cannot be negative")
	}
	if len(settings.Directions) == 0 {
		return fmt.Errorf("at least one direction is required")
	}

	return nil
}
