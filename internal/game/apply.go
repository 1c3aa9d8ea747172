package game

import (
	. "github.com/cricklet/chessrules/internal/bitboards"
	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/cricklet/chessrules/internal/zobrist"
)

type CastlingRequirements struct {
	King    Square
	KingEnd Square
	Rook    Square
	RookEnd Square
	// Empty must hold no pieces; Safe must not be attacked.
	Empty Bitboard
	Safe  []Square
	// Pieces are the home squares; any move touching them revokes the right.
	Pieces Bitboard
}

func castlingRequirementsFor(rank string, player Player, side CastlingSide) CastlingRequirements {
	sq := func(file string) Square {
		return SquareFromStringOrPanic(file + rank)
	}
	squares := func(files ...string) []Square {
		return MapSlice(files, sq)
	}
	bitboard := func(files ...string) Bitboard {
		return ReduceSlice(squares(files...), 0, func(b Bitboard, s Square) Bitboard {
			return b | SquareBitboard(s)
		})
	}

	if side == Kingside {
		return CastlingRequirements{
			King: sq("e"), KingEnd: sq("g"),
			Rook: sq("h"), RookEnd: sq("f"),
			Empty:  bitboard("f", "g"),
			Safe:   squares("f", "g"),
			Pieces: bitboard("e", "h"),
		}
	}
	return CastlingRequirements{
		King: sq("e"), KingEnd: sq("c"),
		Rook: sq("a"), RookEnd: sq("d"),
		Empty:  bitboard("b", "c", "d"),
		Safe:   squares("d", "c"),
		Pieces: bitboard("e", "a"),
	}
}

var AllCastlingRequirements = func() [2][2]CastlingRequirements {
	result := [2][2]CastlingRequirements{}
	for _, side := range AllCastlingSides {
		result[White][side] = castlingRequirementsFor("1", White, side)
		result[Black][side] = castlingRequirementsFor("8", Black, side)
	}
	return result
}()

// RookMoveForCastle returns where the rook starts and lands for a castling
// king move two files toward it.
func RookMoveForCastle(move Move) (Square, Square) {
	if move.EndCol > move.StartCol {
		return Square{Row: move.EndRow, Col: 7}, Square{Row: move.EndRow, Col: move.EndCol - 1}
	}
	return Square{Row: move.EndRow, Col: 0}, Square{Row: move.EndRow, Col: move.EndCol + 1}
}

// setPiece is the only writer of the grid; the mirror and piece hash move
// with it.
func (g *GameState) setPiece(update *BoardUpdate, sq Square, piece Piece) {
	prev := g.board.At(sq)
	if update != nil {
		update.add(sq, prev)
	}

	g.bitboards.ClearSquare(sq, prev)
	g.bitboards.SetSquare(sq, piece)
	g.piecesHash ^= zobrist.PieceAtSquare(prev, sq) ^ zobrist.PieceAtSquare(piece, sq)
	g.board.Set(sq, piece)
}

func updatedCastlingRights(rights CastlingRights, move Move) CastlingRights {
	if move.PieceMoved.PieceType() == King {
		player := move.PieceMoved.Player()
		rights[player][Kingside] = false
		rights[player][Queenside] = false
	}

	moveBitboard := SquareBitboard(move.Start()) | SquareBitboard(move.End())
	for _, player := range []Player{White, Black} {
		for _, side := range AllCastlingSides {
			if moveBitboard&AllCastlingRequirements[player][side].Pieces != 0 {
				rights[player][side] = false
			}
		}
	}
	return rights
}

func enPassantTargetAfter(move Move) Optional[Square] {
	if move.PieceMoved.PieceType() == Pawn && AbsDiff(move.StartRow, move.EndRow) == 2 {
		return Some(Square{Row: (move.StartRow + move.EndRow) / 2, Col: move.StartCol})
	}
	return Empty[Square]()
}

// MakeMove applies a move taken from ValidMoves. Other moves are not
// checked; use PerformMove for untrusted input.
func (g *GameState) MakeMove(move Move) {
	mover := move.PieceMoved.Player()
	update := BoardUpdate{}

	g.setPiece(&update, move.Start(), XX)
	if move.IsEnPassant {
		g.setPiece(&update, Square{Row: move.StartRow, Col: move.EndCol}, XX)
	}

	placed := move.PieceMoved
	if move.PawnPromotion {
		placed = PieceForPlayer[mover][move.Promotion()]
	}
	g.setPiece(&update, move.End(), placed)

	if move.IsCastle {
		rookStart, rookEnd := RookMoveForCastle(move)
		rook := g.board.At(rookStart)
		g.setPiece(&update, rookStart, XX)
		g.setPiece(&update, rookEnd, rook)
	}

	g.player = g.player.Other()

	if move.PieceMoved.PieceType() == King {
		g.kingSquares[mover] = move.End()
	}

	g.enPassantTarget = enPassantTargetAfter(move)
	g.enPassantHistory = append(g.enPassantHistory, g.enPassantTarget)

	g.castlingRights = updatedCastlingRights(g.castlingRights, move)
	g.castlingRightsHistory = append(g.castlingRightsHistory, g.castlingRights)

	g.positionCounts[g.Signature()]++

	if move.PieceMoved.PieceType() == Pawn || move.Captures() {
		g.fiftyMoveCounter = 0
	} else {
		g.fiftyMoveCounter++
	}
	g.moveHistory = append(g.moveHistory, historyEntry{
		move:             move,
		fiftyMoveCounter: g.fiftyMoveCounter,
		update:           update,
	})

	g.invalidate()
	g.runDebugChecks("make " + move.DebugString())
}

// UndoMove reverts the most recent move. It does nothing when no move has
// been made.
func (g *GameState) UndoMove() {
	if len(g.moveHistory) == 0 {
		return
	}

	entry := g.moveHistory[len(g.moveHistory)-1]
	g.moveHistory = g.moveHistory[:len(g.moveHistory)-1]

	// the occurrence being removed is the one for the position on the board now
	g.removeOccurrence(g.Signature())

	for i := entry.update.Num - 1; i >= 0; i-- {
		g.setPiece(nil, entry.update.Squares[i], entry.update.PrevPieces[i])
	}

	move := entry.move
	if move.PieceMoved.PieceType() == King {
		g.kingSquares[move.PieceMoved.Player()] = move.Start()
	}

	g.castlingRightsHistory = g.castlingRightsHistory[:len(g.castlingRightsHistory)-1]
	g.castlingRights = g.castlingRightsHistory[len(g.castlingRightsHistory)-1]

	g.enPassantHistory = g.enPassantHistory[:len(g.enPassantHistory)-1]
	g.enPassantTarget = g.enPassantHistory[len(g.enPassantHistory)-1]

	g.player = g.player.Other()

	if len(g.moveHistory) > 0 {
		g.fiftyMoveCounter = g.moveHistory[len(g.moveHistory)-1].fiftyMoveCounter
	} else {
		g.fiftyMoveCounter = g.baseFiftyMoveCounter
	}

	g.invalidate()
	g.runDebugChecks("undo " + move.DebugString())
}

// PerformMove validates a host-supplied move against ValidMoves by
// coordinates and applies the generated move, keeping the caller's
// promotion choice.
func (g *GameState) PerformMove(move Move) Error {
	legal := FindInSlice(g.ValidMoves(), func(m Move) bool {
		return m.Equal(move)
	})
	if legal.IsEmpty() {
		return Errorf("invalid move %v for %v (%v)", move, g.player, FenStringForGame(g))
	}

	chosen := legal.Value()
	if chosen.PawnPromotion && move.PromotionChoice.HasValue() {
		chosen = chosen.WithPromotion(move.PromotionChoice.Value())
	}
	g.MakeMove(chosen)
	return NilError
}

// PerformMoveFromString applies a move given in from-to coordinates, eg
// "e2e4" or "e7e8n".
func (g *GameState) PerformMoveFromString(s string) Error {
	if len(s) != 4 && len(s) != 5 {
		return Errorf("invalid move string '%v'", s)
	}
	start, err := SquareFromString(s[0:2])
	if !IsNil(err) {
		return err
	}
	end, err := SquareFromString(s[2:4])
	if !IsNil(err) {
		return err
	}

	move := Move{StartRow: start.Row, StartCol: start.Col, EndRow: end.Row, EndCol: end.Col}
	if len(s) == 5 {
		promotion := PieceTypeFromString(s[4:5])
		if promotion == InvalidPiece || promotion == Pawn || promotion == King {
			return Errorf("invalid promotion in '%v'", s)
		}
		move = move.WithPromotion(promotion)
	}
	return g.PerformMove(move)
}

func (g *GameState) PerformMoves(moves ...string) Error {
	for _, s := range moves {
		if err := g.PerformMoveFromString(s); !IsNil(err) {
			return err
		}
	}
	return NilError
}
