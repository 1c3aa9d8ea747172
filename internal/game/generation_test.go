package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"

	. "github.com/cricklet/chessrules/internal/helpers"
)

func TestPerft(t *testing.T) {
	type perftCase struct {
		fen      string
		depth    int
		expected PerftResult
	}
	cases := []perftCase{
		{startingFen, 1, PerftResult{Leaves: 20}},
		{startingFen, 2, PerftResult{Leaves: 400}},
		{startingFen, 3, PerftResult{Leaves: 8902, Captures: 34}},
		{kiwipeteFen, 1, PerftResult{Leaves: 48, Captures: 8, Castles: 2}},
		{kiwipeteFen, 2, PerftResult{Leaves: 2039, Captures: 351, EnPassants: 1, Castles: 91}},
		{position3Fen, 1, PerftResult{Leaves: 14, Captures: 1}},
		{position3Fen, 2, PerftResult{Leaves: 191, Captures: 14}},
		{position3Fen, 3, PerftResult{Leaves: 2812, Captures: 209, EnPassants: 2}},
	}

	for _, c := range cases {
		g, err := GameStateFromFen(c.fen)
		require.True(t, IsNil(err))

		before := g.FenString()
		result := Perft(g, c.depth)
		assert.Equal(t, c.expected, result, "%v depth %v", c.fen, c.depth)
		assert.Equal(t, before, g.FenString())
	}
}

func TestPerftDivide(t *testing.T) {
	g := NewGameState()

	progress := []int{}
	divide := PerftDivide(g, 2, func(done int) {
		progress = append(progress, done)
	})

	assert.Equal(t, 20, len(divide))
	assert.Equal(t, 20, len(progress))
	assert.Equal(t, 20, progress[19])

	total := PerftResult{}
	for _, result := range divide {
		total.Add(result)
	}
	assert.Equal(t, 400, total.Leaves)
	assert.Equal(t, 20, divide["e2e4"].Leaves)
	assert.Equal(t, 20, divide["g1f3"].Leaves)
}

func TestGenerationOrder(t *testing.T) {
	g := NewGameState()
	moves := MapSlice(g.ValidMoves(), Move.String)

	// bit-index order visits rank 2 before rank 1
	assert.Equal(t, []string{
		"a2a3", "a2a4", "b2b3", "b2b4", "c2c3", "c2c4", "d2d3", "d2d4",
		"e2e3", "e2e4", "f2f3", "f2f4", "g2g3", "g2g4", "h2h3", "h2h4",
		"b1a3", "b1c3", "g1f3", "g1h3",
	}, sortedWithinSquare(moves))
}

// sortedWithinSquare keeps the order of origin squares but sorts each
// piece's own moves, which depend on direction tables.
func sortedWithinSquare(moves []string) []string {
	result := []string{}
	group := []string{}
	flush := func() {
		slices.Sort(group)
		result = append(result, group...)
		group = []string{}
	}
	for i, move := range moves {
		if i > 0 && move[:2] != moves[i-1][:2] {
			flush()
		}
		group = append(group, move)
	}
	flush()
	return result
}

func TestCastlingGeneratedLast(t *testing.T) {
	g := gameFromFen(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	moves := g.PseudoLegalMoves()
	require.True(t, len(moves) > 2)

	assert.True(t, moves[len(moves)-2].IsCastle)
	assert.True(t, moves[len(moves)-1].IsCastle)
	assert.Equal(t, "e1g1", moves[len(moves)-2].String())
	assert.Equal(t, "e1c1", moves[len(moves)-1].String())
}

func TestLegalitySoundness(t *testing.T) {
	for _, fen := range []string{startingFen, kiwipeteFen, position3Fen, promotionFen} {
		g := gameFromFen(t, fen)
		legal := g.ValidMoves()
		mover := g.Player()

		for _, move := range g.PseudoLegalMoves() {
			g.MakeMove(move)
			attacked := g.IsSquareAttacked(g.KingSquare(mover), mover.Other())
			g.UndoMove()

			assert.Equal(t, !attacked, Contains(legal, move), "%v in %v", move.DebugString(), fen)
		}
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	g := gameFromFen(t, "4r1k1/8/8/8/8/8/4N3/4K3 w - - 0 1")
	for _, move := range g.ValidMoves() {
		assert.NotEqual(t, sq("e2"), move.Start(), move.String())
	}
}

func TestKingsCannotTouch(t *testing.T) {
	g := gameFromFen(t, "8/8/8/3k4/8/3K4/8/8 w - - 0 1")
	moves := MapSlice(g.ValidMoves(), Move.String)
	for _, s := range []string{"d3c4", "d3d4", "d3e4"} {
		assert.NotContains(t, moves, s)
	}
	assert.Contains(t, moves, "d3d2")
}

func TestEnPassantRevealingCheck(t *testing.T) {
	// capturing en passant would clear the fifth rank between the rook and king
	g := gameFromFen(t, "8/8/8/KPp4r/8/8/8/7k w - c6 0 1")
	moves := MapSlice(g.ValidMoves(), Move.String)
	assert.NotContains(t, moves, "b5c6")
	assert.Contains(t, MapSlice(g.PseudoLegalMoves(), Move.String), "b5c6")
}

func TestValidMovesCache(t *testing.T) {
	g := gameFromFen(t, kiwipeteFen)

	first := g.ValidMoves()
	require.True(t, g.cache.valid)
	assert.Equal(t, g.Signature(), g.cache.signature)

	second := g.ValidMoves()
	assert.Equal(t, first, second)

	second[0] = Move{}
	assert.Equal(t, first, g.ValidMoves())

	g.MakeMove(first[0])
	assert.False(t, g.cache.valid)
	g.UndoMove()
	assert.False(t, g.cache.valid)
	assert.Equal(t, first, g.ValidMoves())
}

func TestAttackers(t *testing.T) {
	g := gameFromFen(t, "4k3/8/8/3p4/2N1B3/8/8/R3K3 w - - 0 1")

	attackers := MapSlice(g.Attackers(sq("d5"), White), Square.String)
	slices.Sort(attackers)
	assert.Equal(t, []string{"e4"}, attackers)

	attackers = MapSlice(g.Attackers(sq("a8"), White), Square.String)
	assert.Equal(t, []string{"a1"}, attackers)

	attackers = MapSlice(g.Attackers(sq("e4"), Black), Square.String)
	assert.Equal(t, []string{"d5"}, attackers)

	assert.True(t, g.IsSquareAttacked(sq("b6"), White))
	assert.False(t, g.IsSquareAttacked(sq("d8"), White))
}
