package game

import (
	. "github.com/cricklet/chessrules/internal/bitboards"
	. "github.com/cricklet/chessrules/internal/helpers"
)

type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	FiftyMoveRule
	ThreefoldRepetition
	InsufficientMaterial
)

func (s Status) String() string {
	return [6]string{
		"ongoing",
		"checkmate",
		"stalemate",
		"fifty-move rule",
		"threefold repetition",
		"insufficient material",
	}[s]
}

func (s Status) IsDraw() bool {
	return s == Stalemate || s == FiftyMoveRule || s == ThreefoldRepetition || s == InsufficientMaterial
}

func (g *GameState) updateTerminalFlags(legal []Move) {
	g.flags = terminalFlags{}

	if len(legal) == 0 {
		if g.InCheck() {
			g.flags.checkmate = true
		} else {
			g.flags.stalemate = true
		}
	} else if g.fiftyMoveCounter >= 100 {
		g.flags.fiftyMoveRule = true
	} else if g.anyPositionRepeated(3) {
		g.flags.threefoldRepetition = true
	} else if g.InsufficientMaterial() {
		g.flags.insufficientMaterial = true
	}

	if status := g.flags.status(); status != Ongoing {
		g.logger.Printf("%v after %v plies (%v)\n", status, len(g.moveHistory), FenStringForGame(g))
	}
}

func (f terminalFlags) status() Status {
	switch {
	case f.checkmate:
		return Checkmate
	case f.stalemate:
		return Stalemate
	case f.fiftyMoveRule:
		return FiftyMoveRule
	case f.threefoldRepetition:
		return ThreefoldRepetition
	case f.insufficientMaterial:
		return InsufficientMaterial
	}
	return Ongoing
}

func (g *GameState) anyPositionRepeated(times int) bool {
	for _, count := range g.positionCounts {
		if count >= times {
			return true
		}
	}
	return false
}

// InsufficientMaterial is true for K v K, K+minor v K, and K+B v K+B with
// both bishops on the same square colour.
func (g *GameState) InsufficientMaterial() bool {
	white, black := &g.bitboards.Players[White], &g.bitboards.Players[Black]
	for _, t := range []PieceType{Pawn, Rook, Queen} {
		if white.Pieces[t]|black.Pieces[t] != 0 {
			return false
		}
	}

	whiteMinors := OnesCount(white.Pieces[Knight] | white.Pieces[Bishop])
	blackMinors := OnesCount(black.Pieces[Knight] | black.Pieces[Bishop])

	switch {
	case whiteMinors+blackMinors <= 1:
		return true
	case whiteMinors == 1 && blackMinors == 1 &&
		OnesCount(white.Pieces[Bishop]) == 1 && OnesCount(black.Pieces[Bishop]) == 1:
		whiteLight := white.Pieces[Bishop]&LightSquares != 0
		blackLight := black.Pieces[Bishop]&LightSquares != 0
		return whiteLight == blackLight
	}
	return false
}

// Status summarizes the terminal flags, computing legal moves first if they
// are stale.
func (g *GameState) Status() Status {
	g.ValidMoves()
	return g.flags.status()
}

// The flag accessors report the state as of the last ValidMoves call; any
// apply or undo clears them.

func (g *GameState) IsCheckmate() bool {
	return g.flags.checkmate
}

func (g *GameState) IsStalemate() bool {
	return g.flags.stalemate
}

func (g *GameState) IsFiftyMoveRule() bool {
	return g.flags.fiftyMoveRule
}

func (g *GameState) IsThreefoldRepetition() bool {
	return g.flags.threefoldRepetition
}

func (g *GameState) IsInsufficientMaterial() bool {
	return g.flags.insufficientMaterial
}

func (g *GameState) IsDraw() bool {
	return g.flags.stalemate || g.flags.threefoldRepetition || g.flags.fiftyMoveRule || g.flags.insufficientMaterial
}
