package game

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	. "github.com/cricklet/chessrules/internal/bitboards"
	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/cricklet/chessrules/internal/zobrist"
)

// BoardUpdate records the squares a move changed, with their previous
// contents, so undo restores exactly what was there.
type BoardUpdate struct {
	Squares    [4]Square
	PrevPieces [4]Piece
	Num        int
}

func (u *BoardUpdate) add(sq Square, prevPiece Piece) {
	u.Squares[u.Num] = sq
	u.PrevPieces[u.Num] = prevPiece
	u.Num++
}

type historyEntry struct {
	move             Move
	fiftyMoveCounter int
	update           BoardUpdate
}

type validMovesCache struct {
	valid     bool
	signature uint64
	moves     []Move
}

type terminalFlags struct {
	checkmate            bool
	stalemate            bool
	fiftyMoveRule        bool
	threefoldRepetition  bool
	insufficientMaterial bool
}

// GameState is the authoritative state of one game. It is not safe for
// concurrent use; Clone it to explore branches independently.
type GameState struct {
	board       BoardArray
	bitboards   Bitboards
	piecesHash  uint64
	player      Player
	kingSquares [2]Square

	enPassantTarget  Optional[Square]
	enPassantHistory []Optional[Square]

	castlingRights        CastlingRights
	castlingRightsHistory []CastlingRights

	moveHistory          []historyEntry
	positionCounts       map[uint64]int
	fiftyMoveCounter     int
	baseFiftyMoveCounter int
	baseFullMoveClock    int
	basePlayer           Player

	cache validMovesCache
	flags terminalFlags

	logger      Logger
	debugChecks bool
}

type GameOption func(*GameState)

func WithLogger(logger Logger) GameOption {
	return func(g *GameState) {
		g.logger = logger
	}
}

// WithDebugChecks verifies the bitboard mirror, signature and king squares
// against the grid after every apply and undo, panicking on divergence.
func WithDebugChecks(enabled bool) GameOption {
	return func(g *GameState) {
		g.debugChecks = enabled
	}
}

func NewGameState(options ...GameOption) *GameState {
	g, err := newGameState(StartingBoard(), White, AllCastlingRights, Empty[Square](), 0, 1, options...)
	if !IsNil(err) {
		panic(err)
	}
	return g
}

func findKing(board *BoardArray, player Player) (Square, Error) {
	found := Empty[Square]()
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := Square{Row: row, Col: col}
			if board.At(sq) == PieceForPlayer[player][King] {
				if found.HasValue() {
					return Square{}, Errorf("%v has more than one king", player)
				}
				found = Some(sq)
			}
		}
	}
	if found.IsEmpty() {
		return Square{}, Errorf("%v has no king", player)
	}
	return found.Value(), NilError
}

func newGameState(
	board BoardArray,
	player Player,
	castlingRights CastlingRights,
	enPassantTarget Optional[Square],
	halfMoveClock int,
	fullMoveClock int,
	options ...GameOption,
) (*GameState, Error) {
	g := &GameState{
		board:                 board,
		bitboards:             BitboardsFromBoard(&board),
		piecesHash:            zobrist.HashForPieces(&board),
		player:                player,
		enPassantTarget:       enPassantTarget,
		enPassantHistory:      []Optional[Square]{enPassantTarget},
		castlingRights:        castlingRights,
		castlingRightsHistory: []CastlingRights{castlingRights},
		positionCounts:        map[uint64]int{},
		fiftyMoveCounter:      halfMoveClock,
		baseFiftyMoveCounter:  halfMoveClock,
		baseFullMoveClock:     fullMoveClock,
		basePlayer:            player,
		logger:                SilentLogger,
	}

	for _, option := range options {
		option(g)
	}

	for _, p := range []Player{White, Black} {
		sq, err := findKing(&g.board, p)
		if !IsNil(err) {
			return nil, err
		}
		g.kingSquares[p] = sq
	}

	g.positionCounts[g.Signature()] = 1
	return g, NilError
}

// Board returns a snapshot; mutating it does not affect the game.
func (g *GameState) Board() BoardArray {
	return g.board
}

func (g *GameState) PieceAt(sq Square) Piece {
	return g.board.At(sq)
}

func (g *GameState) Bitboards() Bitboards {
	return g.bitboards
}

func (g *GameState) Player() Player {
	return g.player
}

func (g *GameState) Enemy() Player {
	return g.player.Other()
}

func (g *GameState) WhiteToMove() bool {
	return g.player == White
}

// SetWhiteToMove forces the side to move, for host-driven setups. The
// current position's occurrence moves to its new signature.
func (g *GameState) SetWhiteToMove(whiteToMove bool) {
	before := g.Signature()
	if whiteToMove {
		g.player = White
	} else {
		g.player = Black
	}
	if after := g.Signature(); after != before {
		g.removeOccurrence(before)
		g.positionCounts[after]++
	}
	g.invalidate()
}

func (g *GameState) KingSquare(player Player) Square {
	return g.kingSquares[player]
}

func (g *GameState) CastlingRights() CastlingRights {
	return g.castlingRights
}

func (g *GameState) EnPassantTarget() Optional[Square] {
	return g.enPassantTarget
}

func (g *GameState) FiftyMoveCounter() int {
	return g.fiftyMoveCounter
}

func (g *GameState) FullMoveClock() int {
	plies := len(g.moveHistory)
	if g.basePlayer == Black {
		plies++
	}
	return g.baseFullMoveClock + plies/2
}

func (g *GameState) MoveHistory() []Move {
	return MapSlice(g.moveHistory, func(e historyEntry) Move {
		return e.move
	})
}

func (g *GameState) LastMove() Optional[Move] {
	if len(g.moveHistory) == 0 {
		return Empty[Move]()
	}
	return Some(g.moveHistory[len(g.moveHistory)-1].move)
}

// Signature identifies the position for repetition counting and caching:
// piece placement, side to move, castling rights, and the en-passant file
// when a pawn could actually capture there.
func (g *GameState) Signature() uint64 {
	return zobrist.HashForState(g.piecesHash, g.player, g.castlingRights, g.capturableEnPassantTarget())
}

func (g *GameState) removeOccurrence(signature uint64) {
	if count, ok := g.positionCounts[signature]; ok {
		if count <= 1 {
			delete(g.positionCounts, signature)
		} else {
			g.positionCounts[signature] = count - 1
		}
	}
}

func (g *GameState) PositionCount(signature uint64) int {
	return g.positionCounts[signature]
}

func (g *GameState) Clone() *GameState {
	result := *g
	result.enPassantHistory = slices.Clone(g.enPassantHistory)
	result.castlingRightsHistory = slices.Clone(g.castlingRightsHistory)
	result.moveHistory = slices.Clone(g.moveHistory)
	result.positionCounts = maps.Clone(g.positionCounts)
	result.cache.moves = slices.Clone(g.cache.moves)
	return &result
}

func (g *GameState) invalidate() {
	g.cache = validMovesCache{}
	g.flags = terminalFlags{}
}

// CheckConsistency compares every derived index against the grid.
func (g *GameState) CheckConsistency() Error {
	rebuilt := BitboardsFromBoard(&g.board)
	if diff := g.bitboards.Diff(&rebuilt); diff != "" {
		return Errorf("bitboard mirror diverged from board (%v):\n%v", FenStringForGame(g), diff)
	}
	unioned := g.bitboards
	unioned.RecomputeOccupied()
	if unioned != g.bitboards {
		return Errorf("occupancy is not the union of the piece boards (%v)", FenStringForGame(g))
	}
	if hash := zobrist.HashForPieces(&g.board); hash != g.piecesHash {
		return Errorf("piece hash %x != %x (%v)", g.piecesHash, hash, FenStringForGame(g))
	}
	for _, p := range []Player{White, Black} {
		if g.board.At(g.kingSquares[p]) != PieceForPlayer[p][King] {
			return Errorf("%v king not on %v (%v)", p, g.kingSquares[p], FenStringForGame(g))
		}
	}
	if len(g.enPassantHistory) != len(g.moveHistory)+1 || len(g.castlingRightsHistory) != len(g.moveHistory)+1 {
		return Errorf("history lengths diverged: %v moves, %v ep, %v castling",
			len(g.moveHistory), len(g.enPassantHistory), len(g.castlingRightsHistory))
	}
	return NilError
}

func (g *GameState) runDebugChecks(context string) {
	if !g.debugChecks {
		return
	}
	if err := g.CheckConsistency(); !IsNil(err) {
		g.logger.Println(context, err)
		panic(err)
	}
}
