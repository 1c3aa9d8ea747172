package game

import (
	"fmt"

	. "github.com/cricklet/chessrules/internal/helpers"
)

// PerftResult tallies the leaves of a legal move tree. Promotions count once
// per square since the generator emits a single promoting move.
type PerftResult struct {
	Leaves     int
	Captures   int
	EnPassants int
	Castles    int
	Promotions int
}

func (p *PerftResult) Add(o PerftResult) {
	p.Leaves += o.Leaves
	p.Captures += o.Captures
	p.EnPassants += o.EnPassants
	p.Castles += o.Castles
	p.Promotions += o.Promotions
}

func (p PerftResult) String() string {
	return fmt.Sprintf("leaves: %v, captures: %v, en-passants: %v, castles: %v, promotions: %v",
		FormatCount(p.Leaves), p.Captures, p.EnPassants, p.Castles, p.Promotions)
}

func leafResult(move Move) PerftResult {
	result := PerftResult{Leaves: 1}
	if move.Captures() {
		result.Captures++
	}
	if move.IsEnPassant {
		result.EnPassants++
	}
	if move.IsCastle {
		result.Castles++
	}
	if move.PawnPromotion {
		result.Promotions++
	}
	return result
}

func Perft(g *GameState, depth int) PerftResult {
	if depth == 0 {
		return PerftResult{Leaves: 1}
	}

	result := PerftResult{}
	for _, move := range g.ValidMoves() {
		if depth == 1 {
			result.Add(leafResult(move))
			continue
		}
		g.MakeMove(move)
		result.Add(Perft(g, depth-1))
		g.UndoMove()
	}
	return result
}

// PerftDivide breaks Perft down per root move, keyed by the move's
// coordinate string. progress is called with the number of root moves done.
func PerftDivide(g *GameState, depth int, progress func(done int)) map[string]PerftResult {
	result := map[string]PerftResult{}
	if depth < 1 {
		return result
	}

	for i, move := range g.ValidMoves() {
		if depth == 1 {
			result[move.String()] = leafResult(move)
		} else {
			g.MakeMove(move)
			result[move.String()] = Perft(g, depth-1)
			g.UndoMove()
		}
		if progress != nil {
			progress(i + 1)
		}
	}
	return result
}
