// Package chessrules is a synchronous chess rules engine: board state, legal
// move generation, apply/undo and game-ending conditions. Move choice,
// notation and rendering belong to the host.
package chessrules

import (
	"github.com/cricklet/chessrules/internal/game"
	"github.com/cricklet/chessrules/internal/helpers"
)

type (
	Game           = game.GameState
	Option         = game.GameOption
	Status         = game.Status
	Move           = helpers.Move
	Piece          = helpers.Piece
	PieceType      = helpers.PieceType
	Player         = helpers.Player
	Square         = helpers.Square
	Board          = helpers.BoardArray
	CastlingRights = helpers.CastlingRights
	Logger         = helpers.Logger
	Error          = helpers.Error
)

const (
	White = helpers.White
	Black = helpers.Black

	Ongoing              = game.Ongoing
	Checkmate            = game.Checkmate
	Stalemate            = game.Stalemate
	FiftyMoveRule        = game.FiftyMoveRule
	ThreefoldRepetition  = game.ThreefoldRepetition
	InsufficientMaterial = game.InsufficientMaterial
)

// NewGame starts from the standard position with white to move.
func NewGame(options ...Option) *Game {
	return game.NewGameState(options...)
}

func NewGameFromFen(fen string, options ...Option) (*Game, Error) {
	return game.GameStateFromFen(fen, options...)
}

func WithLogger(logger Logger) Option {
	return game.WithLogger(logger)
}

func WithDebugChecks(enabled bool) Option {
	return game.WithDebugChecks(enabled)
}

func SquareFromString(s string) (Square, Error) {
	return helpers.SquareFromString(s)
}

func IsNil(err error) bool {
	return helpers.IsNil(err)
}
