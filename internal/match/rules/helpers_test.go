package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// actionState 两人局直接进入一时代行动阶段：0 号首都在 (2,4)，1 号首都在 (3,5)。
func actionState(t *testing.T) *State {
	t.Helper()
	return actionStateWith(t, false)
}

func actionStateWith(t *testing.T, expansion bool) *State {
	t.Helper()
	s, err := NewMatch(Options{Players: 2, Seed: 7, Expansion: expansion})
	require.NoError(t, err)
	s.Phase = PhaseActions
	s.Current = 0
	s.FirstPlayer = 0
	for i := range s.Players {
		s.Players[i].PlacedTile = true
		s.Players[i].LTile = nil
	}
	s.spawnStartingPieces(0, Cell{Row: 2, Col: 4})
	s.spawnStartingPieces(1, Cell{Row: 3, Col: 5})
	return s
}

func mustApply(t *testing.T, s *State, seat int, m Move) *State {
	t.Helper()
	next, err := Apply(s, seat, m)
	require.NoError(t, err, "reason=%s", RejectReason(err))
	return next
}

func piecesOf(s *State, seat int, kind PieceKind) int {
	n := 0
	for _, pc := range s.Pieces {
		if pc.Owner == seat && pc.Kind == kind {
			n++
		}
	}
	return n
}
