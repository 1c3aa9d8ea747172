package zobrist

import (
	"testing"

	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestSamePositionSameHash(t *testing.T) {
	a := StartingBoard()
	b := StartingBoard()
	assert.Equal(t,
		HashForPosition(&a, White, AllCastlingRights, Empty[Square]()),
		HashForPosition(&b, White, AllCastlingRights, Empty[Square]()))
}

func TestHashSeparatesLegalityRelevantState(t *testing.T) {
	board := StartingBoard()
	base := HashForPosition(&board, White, AllCastlingRights, Empty[Square]())

	assert.NotEqual(t, base, HashForPosition(&board, Black, AllCastlingRights, Empty[Square]()))

	noWhiteKingside := AllCastlingRights
	noWhiteKingside[White][Kingside] = false
	assert.NotEqual(t, base, HashForPosition(&board, White, noWhiteKingside, Empty[Square]()))

	assert.NotEqual(t, base, HashForPosition(&board, White, AllCastlingRights, Some(SquareFromStringOrPanic("e3"))))

	moved := board
	moved.Set(SquareFromStringOrPanic("e2"), XX)
	moved.Set(SquareFromStringOrPanic("e4"), WP)
	assert.NotEqual(t, base, HashForPosition(&moved, White, AllCastlingRights, Empty[Square]()))
}

func TestIncrementalPieceHash(t *testing.T) {
	board := StartingBoard()
	hash := HashForPieces(&board)

	e2 := SquareFromStringOrPanic("e2")
	e4 := SquareFromStringOrPanic("e4")

	hash ^= PieceAtSquare(WP, e2) ^ PieceAtSquare(XX, e2)
	hash ^= PieceAtSquare(XX, e4) ^ PieceAtSquare(WP, e4)
	board.Set(e2, XX)
	board.Set(e4, WP)

	assert.Equal(t, HashForPieces(&board), hash)
}
