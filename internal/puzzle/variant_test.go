package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		want    Settings
	}{
		{
			name:    "Crossword defaults",
			variant: VariantCrossword,
			want: Settings{
				Variant:          VariantCrossword,
				RackSize:         5,
				InitialHints:     2,
				LetterPoints:     10,
				WordBonusPerCell: 10,
				Directions:       []Direction{DirAcross, DirDown},
			},
		},
		{
			name:    "Word search defaults",
			variant: VariantWordSearch,
			want: Settings{
				Variant:          VariantWordSearch,
				RackSize:         5,
				InitialHints:     2,
				LetterPoints:     10,
				WordBonusPerCell: 10,
				Directions:       []Direction{DirAcross, DirDown, DirDiagonalDown, DirDiagonalUp},
			},
		},
		{
			name:    "Memory grid defaults",
			variant: VariantMemoryGrid,
			want: Settings{
				Variant:          VariantMemoryGrid,
				RackSize:         2,
				InitialHints:     2,
				LetterPoints:     10,
				WordBonusPerCell: 10,
				Directions:       []Direction{DirAcross},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultSettings(tt.variant)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  bool
	}{
		{
			name:     "Valid crossword",
			settings: DefaultSettings(VariantCrossword),
			wantErr:  false,
		},
		{
			name: "Unknown variant",
			settings: Settings{
				Variant:    "chess",
				RackSize:   5,
				Directions: []Direction{DirAcross},
			},
			wantErr: true,
		},
		{
			name: "Oversized rack",
			settings: Settings{
				Variant:    VariantCrossword,
				RackSize:   6,
				Directions: []Direction{DirAcross},
			},
			wantErr: true,
		},
		{
			name: "Negative hints",
			settings: Settings{
				Variant:      VariantCrossword,
				RackSize:     5,
				InitialHints: -1,
				Directions:   []Direction{DirAcross},
			},
			wantErr: true,
		},
		{
			name: "No directions",
			settings: Settings{
				Variant:  VariantCrossword,
				RackSize: 5,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSettings(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
