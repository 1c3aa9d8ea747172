package game

import (
	. "github.com/cricklet/chessrules/internal/bitboards"
	. "github.com/cricklet/chessrules/internal/helpers"
)

type pawnGeometry struct {
	forward      int
	startRow     int
	promotionRow int
}

var pawnGeometries = [2]pawnGeometry{
	White: {forward: -1, startRow: 6, promotionRow: 0},
	Black: {forward: 1, startRow: 1, promotionRow: 7},
}

// PseudoLegalMoves lists every geometrically valid move for the side to
// move, including ones that leave its own king attacked. Pieces are visited
// in bit-index order (a8 through h1) with castling last.
func (g *GameState) PseudoLegalMoves() []Move {
	moves := make([]Move, 0, 64)
	g.generatePseudoLegalMoves(&moves)
	return moves
}

func (g *GameState) generatePseudoLegalMoves(moves *[]Move) {
	player := g.player
	g.bitboards.Players[player].Occupied.EachIndexOfOneCallback(func(index int) {
		start := SquareFromIndex(index)
		switch g.board.At(start).PieceType() {
		case Pawn:
			g.generatePawnMoves(moves, start, player)
		case Knight:
			g.generateLeaperMoves(moves, start, player, KnightDirs)
		case King:
			g.generateLeaperMoves(moves, start, player, KingDirs)
		case Bishop:
			g.generateSlidingMoves(moves, start, player, BishopDirs)
		case Rook:
			g.generateSlidingMoves(moves, start, player, RookDirs)
		case Queen:
			g.generateSlidingMoves(moves, start, player, QueenDirs)
		}
	})
	g.generateCastlingMoves(moves, player)
}

func (g *GameState) generatePawnMoves(moves *[]Move, start Square, player Player) {
	geometry := pawnGeometries[player]

	push := func(end Square) {
		move := NewMove(start, end, &g.board)
		move.PawnPromotion = end.Row == geometry.promotionRow
		*moves = append(*moves, move)
	}

	oneStep := start.Offset(geometry.forward, 0)
	if oneStep.OnBoard() && g.board.At(oneStep) == XX {
		push(oneStep)

		twoStep := start.Offset(2*geometry.forward, 0)
		if start.Row == geometry.startRow && g.board.At(twoStep) == XX {
			push(twoStep)
		}
	}

	for _, dc := range [2]int{-1, 1} {
		end := start.Offset(geometry.forward, dc)
		if !end.OnBoard() {
			continue
		}

		target := g.board.At(end)
		if target != XX && target.Player() != player {
			push(end)
			continue
		}

		if g.canCaptureEnPassant(start, end, player) {
			move := NewMove(start, end, &g.board)
			move.PieceCaptured = g.board.At(Square{Row: start.Row, Col: end.Col})
			move.IsEnPassant = true
			*moves = append(*moves, move)
		}
	}
}

// canCaptureEnPassant reports whether the pawn on start may take en passant
// onto end, ignoring pins.
func (g *GameState) canCaptureEnPassant(start Square, end Square, player Player) bool {
	if g.enPassantTarget.IsEmpty() || g.enPassantTarget.Value() != end || g.board.At(end) != XX {
		return false
	}
	passed := Square{Row: start.Row, Col: end.Col}
	return g.board.At(passed) == PieceForPlayer[player.Other()][Pawn]
}

// capturableEnPassantTarget is the en-passant target when a pawn of the side
// to move stands ready to take on it, and empty otherwise.
func (g *GameState) capturableEnPassantTarget() Optional[Square] {
	if g.enPassantTarget.IsEmpty() {
		return g.enPassantTarget
	}
	target := g.enPassantTarget.Value()
	forward := pawnGeometries[g.player].forward
	for _, dc := range [2]int{-1, 1} {
		start := target.Offset(-forward, dc)
		if start.OnBoard() && g.board.At(start) == PieceForPlayer[g.player][Pawn] &&
			g.canCaptureEnPassant(start, target, g.player) {
			return g.enPassantTarget
		}
	}
	return Empty[Square]()
}

func (g *GameState) generateLeaperMoves(moves *[]Move, start Square, player Player, dirs []Dir) {
	for _, dir := range dirs {
		end := start.Offset(dir.DR, dir.DC)
		if !end.OnBoard() {
			continue
		}
		if target := g.board.At(end); target != XX && target.Player() == player {
			continue
		}
		*moves = append(*moves, NewMove(start, end, &g.board))
	}
}

func (g *GameState) generateSlidingMoves(moves *[]Move, start Square, player Player, dirs []Dir) {
	for _, dir := range dirs {
		for end := start.Offset(dir.DR, dir.DC); end.OnBoard(); end = end.Offset(dir.DR, dir.DC) {
			target := g.board.At(end)
			if target != XX && target.Player() == player {
				break
			}
			*moves = append(*moves, NewMove(start, end, &g.board))
			if target != XX {
				break
			}
		}
	}
}

func (g *GameState) canCastle(player Player, side CastlingSide) bool {
	if !g.castlingRights[player][side] {
		return false
	}

	requirements := AllCastlingRequirements[player][side]
	if g.board.At(requirements.King) != PieceForPlayer[player][King] {
		return false
	}
	if g.board.At(requirements.Rook) != PieceForPlayer[player][Rook] {
		return false
	}
	if g.bitboards.Occupied&requirements.Empty != 0 {
		return false
	}

	enemy := player.Other()
	for _, sq := range requirements.Safe {
		if g.IsSquareAttacked(sq, enemy) {
			return false
		}
	}
	return true
}

func (g *GameState) generateCastlingMoves(moves *[]Move, player Player) {
	if g.IsSquareAttacked(g.kingSquares[player], player.Other()) {
		return
	}
	for _, side := range AllCastlingSides {
		if !g.canCastle(player, side) {
			continue
		}
		requirements := AllCastlingRequirements[player][side]
		move := NewMove(requirements.King, requirements.KingEnd, &g.board)
		move.IsCastle = true
		*moves = append(*moves, move)
	}
}
