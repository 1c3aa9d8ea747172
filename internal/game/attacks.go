package game

import (
	. "github.com/cricklet/chessrules/internal/bitboards"
	. "github.com/cricklet/chessrules/internal/helpers"
)

// firstPieceInDirection walks from sq (exclusive) and returns the first
// occupied square's piece, or XX if the ray leaves the board.
func (g *GameState) firstPieceInDirection(sq Square, dir Dir) Piece {
	for next := sq.Offset(dir.DR, dir.DC); next.OnBoard(); next = next.Offset(dir.DR, dir.DC) {
		if g.bitboards.Occupied.Has(next) {
			return g.board.At(next)
		}
	}
	return XX
}

// IsSquareAttacked reports whether any piece of the given player attacks sq.
// It reads the grid and mirror only.
func (g *GameState) IsSquareAttacked(sq Square, by Player) bool {
	pieces := &g.bitboards.Players[by].Pieces
	target := SquareBitboard(sq)

	if PawnAttacks(pieces[Pawn], by)&target != 0 {
		return true
	}
	if KnightAttackMasks[sq.Index()]&pieces[Knight] != 0 {
		return true
	}
	if KingAttackMasks[sq.Index()]&pieces[King] != 0 {
		return true
	}

	rook, bishop, queen := PieceForPlayer[by][Rook], PieceForPlayer[by][Bishop], PieceForPlayer[by][Queen]
	if pieces[Rook]|pieces[Queen] != 0 {
		for _, dir := range RookDirs {
			if p := g.firstPieceInDirection(sq, dir); p == rook || p == queen {
				return true
			}
		}
	}
	if pieces[Bishop]|pieces[Queen] != 0 {
		for _, dir := range BishopDirs {
			if p := g.firstPieceInDirection(sq, dir); p == bishop || p == queen {
				return true
			}
		}
	}
	return false
}

func (g *GameState) InCheck() bool {
	return g.IsSquareAttacked(g.kingSquares[g.player], g.Enemy())
}

// Attackers lists the squares holding pieces of the given player that
// attack sq.
func (g *GameState) Attackers(sq Square, by Player) []Square {
	result := []Square{}
	pieces := g.bitboards.Players[by].Occupied
	pieces.EachIndexOfOneCallback(func(index int) {
		from := SquareFromIndex(index)
		if g.attacksFrom(from).Has(sq) {
			result = append(result, from)
		}
	})
	return result
}

// attacksFrom is every square the piece on from attacks, ignoring whether
// the target holds a friendly piece.
func (g *GameState) attacksFrom(from Square) Bitboard {
	piece := g.board.At(from)
	switch piece.PieceType() {
	case Pawn:
		return PawnAttacks(SquareBitboard(from), piece.Player())
	case Knight:
		return KnightAttackMasks[from.Index()]
	case King:
		return KingAttackMasks[from.Index()]
	case Bishop:
		return g.slidingAttacks(from, BishopDirs)
	case Rook:
		return g.slidingAttacks(from, RookDirs)
	case Queen:
		return g.slidingAttacks(from, QueenDirs)
	}
	return 0
}

func (g *GameState) slidingAttacks(from Square, dirs []Dir) Bitboard {
	result := Bitboard(0)
	for _, dir := range dirs {
		for next := from.Offset(dir.DR, dir.DC); next.OnBoard(); next = next.Offset(dir.DR, dir.DC) {
			result |= SquareBitboard(next)
			if g.bitboards.Occupied.Has(next) {
				break
			}
		}
	}
	return result
}
