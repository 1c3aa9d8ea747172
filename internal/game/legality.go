package game

import (
	"golang.org/x/exp/slices"

	. "github.com/cricklet/chessrules/internal/helpers"
)

var getMovesBuffer, releaseMovesBuffer, MovesBufferStats = CreatePool(
	func() []Move {
		return make([]Move, 0, 256)
	},
	func(t *[]Move) {
		*t = (*t)[:0]
	},
)

// ValidMoves lists the legal moves for the side to move and refreshes the
// terminal flags. Results are cached until the next mutation; every call
// returns a fresh copy.
func (g *GameState) ValidMoves() []Move {
	signature := g.Signature()
	if g.cache.valid && g.cache.signature == signature {
		return slices.Clone(g.cache.moves)
	}

	buffer := getMovesBuffer()
	defer releaseMovesBuffer(buffer)

	g.generatePseudoLegalMoves(buffer)

	legal := make([]Move, 0, len(*buffer))
	for _, move := range *buffer {
		if g.isLegal(move) {
			legal = append(legal, move)
		}
	}

	g.cache = validMovesCache{
		valid:     true,
		signature: signature,
		moves:     legal,
	}
	g.updateTerminalFlags(legal)

	return slices.Clone(legal)
}

// isLegal applies the move, checks the mover's king and reverts. The state
// is identical before and after.
func (g *GameState) isLegal(move Move) bool {
	mover := g.player
	g.MakeMove(move)
	defer g.UndoMove()

	return !g.IsSquareAttacked(g.kingSquares[mover], mover.Other())
}
