package service

import "testing"

func TestEloService_Change(t *testing.T) {
	eloService := NewEloService()

	tests := []struct {
		name           string
		ownRating      int
		opponentRating int
		won            bool
		expectedChange int
	}{
		{
			name:           "Equal ratings, winner",
			ownRating:      1200,
			opponentRating: 1200,
			won:            true,
			expectedChange: 15, // expected = 0.5, round(30*0.5)
		},
		{
			name:           "Equal ratings, loser",
			ownRating:      1200,
			opponentRating: 1200,
			won:            false,
			expectedChange: -15,
		},
		{
			name:           "Underdog wins",
			ownRating:      1200,
			opponentRating: 1300,
			won:            true,
			expectedChange: 19,
		},
		{
			name:           "Favorite loses",
			ownRating:      1300,
			opponentRating: 1200,
			won:            false,
			expectedChange: -19,
		},
		{
			name:           "Heavy favorite wins little",
			ownRating:      1400,
			opponentRating: 1000,
			won:            true,
			expectedChange: 3,
		},
		{
			name:           "Heavy underdog loses little",
			ownRating:      1000,
			opponentRating: 1400,
			won:            false,
			expectedChange: -3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change := eloService.Change(tt.ownRating, tt.opponentRating, tt.won)
			if change != tt.expectedChange {
				t.Errorf("Change(%d, %d, %v) = %d, want %d",
					tt.ownRating, tt.opponentRating, tt.won, change, tt.expectedChange)
			}
		})
	}
}

func TestEloService_ZeroSumForEqualRatings(t *testing.T) {
	eloService := NewEloService()

	winnerChange := eloService.Change(1200, 1200, true)
	loserChange := eloService.Change(1200, 1200, false)

	if winnerChange+loserChange != 0 {
		t.Errorf("Changes for equal ratings should be zero-sum, got %d and %d",
			winnerChange, loserChange)
	}

	// Two players at 1200: winner ends at 1215, loser at 1185
	if 1200+winnerChange != 1215 {
		t.Errorf("Winner should end at 1215, got %d", 1200+winnerChange)
	}
	if 1200+loserChange != 1185 {
		t.Errorf("Loser should end at 1185, got %d", 1200+loserChange)
	}
}
