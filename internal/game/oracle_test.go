package game

import (
	"math/rand"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	. "github.com/cricklet/chessrules/internal/helpers"
)

// dragontoothmg indexes squares from a1 = 0, rank-major.
func squareFromOracleIndex(index uint8) Square {
	return Square{Row: 7 - int(index)/8, Col: int(index) % 8}
}

// oracleMoves lists dragontoothmg's legal moves as from-to strings. Its
// four promotion choices collapse into one entry.
func oracleMoves(fen string) []string {
	board := dragontoothmg.ParseFen(fen)
	result := map[string]bool{}
	for _, move := range board.GenerateLegalMoves() {
		move := move
		s := squareFromOracleIndex(move.From()).String() + squareFromOracleIndex(move.To()).String()
		result[s] = true
	}
	moves := maps.Keys(result)
	slices.Sort(moves)
	return moves
}

// notnilMoves is the same listing from notnil/chess, along with whether it
// considers the position checkmate or stalemate.
func notnilMoves(t *testing.T, fen string) ([]string, chess.Method) {
	option, err := chess.FEN(fen)
	require.NoError(t, err, fen)
	game := chess.NewGame(option)

	result := map[string]bool{}
	for _, move := range game.ValidMoves() {
		result[move.S1().String()+move.S2().String()] = true
	}
	moves := maps.Keys(result)
	slices.Sort(moves)
	return moves, game.Position().Status()
}

func engineMethod(g *GameState) chess.Method {
	switch g.Status() {
	case Checkmate:
		return chess.Checkmate
	case Stalemate:
		return chess.Stalemate
	}
	return chess.NoMethod
}

func engineMoves(g *GameState) []string {
	moves := MapSlice(g.ValidMoves(), func(m Move) string {
		return m.Start().String() + m.End().String()
	})
	slices.Sort(moves)
	return moves
}

func TestMovesMatchOracle(t *testing.T) {
	for _, fen := range []string{startingFen, kiwipeteFen, position3Fen, promotionFen,
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	} {
		g := gameFromFen(t, fen)
		assert.Equal(t, oracleMoves(fen), engineMoves(g), fen)

		moves, _ := notnilMoves(t, fen)
		assert.Equal(t, moves, engineMoves(g), fen)
	}
}

func TestTerminalPositionsMatchOracle(t *testing.T) {
	for fen, expected := range map[string]chess.Method{
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3": chess.Checkmate,
		"8/8/8/8/8/1q6/2k5/K7 w - - 0 1":                                 chess.Stalemate,
		"R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1":                              chess.Checkmate,
		startingFen:                                                      chess.NoMethod,
	} {
		g := gameFromFen(t, fen)
		_, method := notnilMoves(t, fen)
		assert.Equal(t, expected, method, fen)
		assert.Equal(t, expected, engineMethod(g), fen)
	}
}

func TestRandomPlayoutsMatchOracle(t *testing.T) {
	r := rand.New(rand.NewSource(1234))
	for game := 0; game < 20; game++ {
		g := NewGameState()
		for ply := 0; ply < 150; ply++ {
			fen := g.FenString()
			expected := oracleMoves(fen)
			actual := engineMoves(g)
			if !assert.Equal(t, expected, actual, "game %v ply %v: %v", game, ply, fen) {
				return
			}

			notnil, method := notnilMoves(t, fen)
			if !assert.Equal(t, notnil, actual, "game %v ply %v: %v", game, ply, fen) {
				return
			}
			assert.Equal(t, method, engineMethod(g), fen)

			moves := g.ValidMoves()
			if len(moves) == 0 {
				break
			}
			move := moves[r.Intn(len(moves))]
			if move.PawnPromotion {
				move = move.WithPromotion(AllPieceTypes[Knight+PieceType(r.Intn(4))])
			}
			g.MakeMove(move)
		}
	}
}
