package zobrist

import (
	"math/rand"

	. "github.com/cricklet/chessrules/internal/helpers"
)

var ZobristPieceAtSquare [13] /*includes empty*/ [64]uint64
var ZobristSideToMove uint64
var ZobristCastlingRights [2][2]uint64
var ZobristEnPassant [8]uint64

func init() {
	r := rand.New(rand.NewSource(32879419))
	ZobristSideToMove = r.Uint64()
	for player := 0; player < 2; player++ {
		for side := 0; side < 2; side++ {
			ZobristCastlingRights[player][side] = r.Uint64()
		}
	}
	for i := 0; i < 8; i++ {
		ZobristEnPassant[i] = r.Uint64()
	}
	for piece := 1; /* skip empty */ piece < 13; piece++ {
		for index := 0; index < 64; index++ {
			ZobristPieceAtSquare[piece][index] = r.Uint64()
		}
	}
}

func PieceAtSquare(piece Piece, sq Square) uint64 {
	return ZobristPieceAtSquare[piece][sq.Index()]
}

func HashForPieces(board *BoardArray) uint64 {
	hash := uint64(0)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := Square{Row: row, Col: col}
			hash ^= PieceAtSquare(board.At(sq), sq)
		}
	}
	return hash
}

// HashForState folds everything besides piece placement into a piece hash.
// Pass an en-passant target only when a capture on it is possible.
func HashForState(
	piecesHash uint64,
	player Player,
	castlingRights CastlingRights,
	enPassantTarget Optional[Square],
) uint64 {
	hash := piecesHash
	if player == Black {
		hash ^= ZobristSideToMove
	}
	for p := 0; p < 2; p++ {
		for side := 0; side < 2; side++ {
			if castlingRights[p][side] {
				hash ^= ZobristCastlingRights[p][side]
			}
		}
	}
	if enPassantTarget.HasValue() {
		hash ^= ZobristEnPassant[enPassantTarget.Value().Col]
	}
	return hash
}

func HashForPosition(
	board *BoardArray,
	player Player,
	castlingRights CastlingRights,
	enPassantTarget Optional[Square],
) uint64 {
	return HashForState(HashForPieces(board), player, castlingRights, enPassantTarget)
}
