package helpers

import (
	"fmt"
	"strings"
)

type Player uint

const (
	White Player = iota
	Black
)

var _playerStrings = [2]string{
	"white", "black",
}

func (p Player) String() string {
	return _playerStrings[p]
}

func (p Player) Other() Player {
	return 1 - p
}

func PlayerFromString(c string) (Player, Error) {
	switch c {
	case "b":
		return Black, NilError
	case "w":
		return White, NilError
	default:
		return White, Errorf("invalid player char %v", c)
	}
}

type PieceType uint

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	InvalidPiece
)

var AllPieceTypes = [6]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}

func (p PieceType) String() string {
	return [7]string{
		"p", "n", "b", "r", "q", "k", "?",
	}[p]
}

func PieceTypeFromString(s string) PieceType {
	switch s {
	case "p":
		return Pawn
	case "n":
		return Knight
	case "b":
		return Bishop
	case "r":
		return Rook
	case "q":
		return Queen
	case "k":
		return King
	default:
		return InvalidPiece
	}
}

// Piece is a color and kind packed together; XX is an empty square.
type Piece uint

const (
	XX Piece = iota
	WP
	WN
	WB
	WR
	WQ
	WK
	BP
	BN
	BB
	BR
	BQ
	BK
)

var PieceTypeLookup [13]PieceType = func() [13]PieceType {
	result := [13]PieceType{}
	result[XX] = InvalidPiece
	for _, t := range AllPieceTypes {
		result[WP+Piece(t)] = t
		result[BP+Piece(t)] = t
	}
	return result
}()

var PieceForPlayer [2][6]Piece = func() [2][6]Piece {
	result := [2][6]Piece{}
	for _, t := range AllPieceTypes {
		result[White][t] = WP + Piece(t)
		result[Black][t] = BP + Piece(t)
	}
	return result
}()

func (p Piece) PieceType() PieceType {
	return PieceTypeLookup[p]
}

// Player is only meaningful for non-empty pieces.
func (p Piece) Player() Player {
	if p < BP {
		return White
	}
	return Black
}

func (p Piece) IsEmpty() bool {
	return p == XX
}

func (p Piece) IsWhite() bool {
	return p >= WP && p <= WK
}

func (p Piece) IsBlack() bool {
	return p >= BP && p <= BK
}

func (p Piece) BelongsTo(player Player) bool {
	if player == White {
		return p.IsWhite()
	}
	return p.IsBlack()
}

func (p Piece) String() string {
	return [13]string{
		" ",
		"P", "N", "B", "R", "Q", "K",
		"p", "n", "b", "r", "q", "k",
	}[p]
}

func PieceFromRune(c rune) (Piece, Error) {
	for p := WP; p <= BK; p++ {
		if p.String() == string(c) {
			return p, NilError
		}
	}
	return XX, Errorf("invalid piece %q", c)
}

// Square addresses the grid: row 0 is rank 8, col 0 is file a.
type Square struct {
	Row int
	Col int
}

func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

func (s Square) Index() int {
	return s.Row*8 + s.Col
}

func (s Square) Offset(dr int, dc int) Square {
	return Square{s.Row + dr, s.Col + dc}
}

// IsLight follows (row+col) parity; a8 and h1 are light.
func (s Square) IsLight() bool {
	return (s.Row+s.Col)%2 == 0
}

func (s Square) String() string {
	return string(rune('a'+s.Col)) + string(rune('8'-s.Row))
}

func SquareFromIndex(index int) Square {
	return Square{Row: index >> 3, Col: index & 0b111}
}

func SquareFromString(s string) (Square, Error) {
	if len(s) != 2 {
		return Square{}, Errorf("invalid location %v", s)
	}
	col := int(s[0]) - 'a'
	row := '8' - int(s[1])
	sq := Square{Row: row, Col: col}
	if !sq.OnBoard() {
		return Square{}, Errorf("invalid location %v", s)
	}
	return sq, NilError
}

func SquareFromStringOrPanic(s string) Square {
	sq, err := SquareFromString(s)
	if !IsNil(err) {
		panic(err)
	}
	return sq
}

type BoardArray [8][8]Piece

func (b *BoardArray) At(sq Square) Piece {
	return b[sq.Row][sq.Col]
}

func (b *BoardArray) Set(sq Square, p Piece) {
	b[sq.Row][sq.Col] = p
}

func StartingBoard() BoardArray {
	back := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	b := BoardArray{}
	for col := 0; col < 8; col++ {
		b[0][col] = PieceForPlayer[Black][back[col]]
		b[1][col] = BP
		b[6][col] = WP
		b[7][col] = PieceForPlayer[White][back[col]]
	}
	return b
}

func (b BoardArray) String() string {
	rows := [8]string{}
	for row := 0; row < 8; row++ {
		line := ""
		for _, p := range b[row] {
			line += p.String()
		}
		rows[row] = line
	}
	return strings.Join(rows[:], "\n")
}

type CastlingSide int

const (
	Kingside CastlingSide = iota
	Queenside
)

var AllCastlingSides = [2]CastlingSide{Kingside, Queenside}

// CastlingRights is indexed by [Player][CastlingSide].
type CastlingRights [2][2]bool

var AllCastlingRights = CastlingRights{{true, true}, {true, true}}

func (c CastlingRights) WhiteKingside() bool  { return c[White][Kingside] }
func (c CastlingRights) WhiteQueenside() bool { return c[White][Queenside] }
func (c CastlingRights) BlackKingside() bool  { return c[Black][Kingside] }
func (c CastlingRights) BlackQueenside() bool { return c[Black][Queenside] }

func (c CastlingRights) String() string {
	s := ""
	if c.WhiteKingside() {
		s += "K"
	}
	if c.WhiteQueenside() {
		s += "Q"
	}
	if c.BlackKingside() {
		s += "k"
	}
	if c.BlackQueenside() {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

// Move describes a single ply. Values are never mutated after generation;
// WithPromotion returns a copy.
type Move struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int

	PieceMoved    Piece
	PieceCaptured Piece

	PawnPromotion bool
	IsEnPassant   bool
	IsCastle      bool

	PromotionChoice Optional[PieceType]
}

func NewMove(start Square, end Square, board *BoardArray) Move {
	return Move{
		StartRow:      start.Row,
		StartCol:      start.Col,
		EndRow:        end.Row,
		EndCol:        end.Col,
		PieceMoved:    board.At(start),
		PieceCaptured: board.At(end),
	}
}

func (m Move) Start() Square {
	return Square{m.StartRow, m.StartCol}
}

func (m Move) End() Square {
	return Square{m.EndRow, m.EndCol}
}

func (m Move) ID() int {
	return m.StartRow*1000 + m.StartCol*100 + m.EndRow*10 + m.EndCol
}

// Equal compares coordinates only. Use == for full-field equality.
func (m Move) Equal(other Move) bool {
	return m.ID() == other.ID()
}

func (m Move) Captures() bool {
	return m.PieceCaptured != XX
}

func (m Move) WithPromotion(t PieceType) Move {
	m.PromotionChoice = Some(t)
	return m
}

// Promotion is the piece a promoting pawn becomes, queen unless chosen.
func (m Move) Promotion() PieceType {
	if m.PromotionChoice.HasValue() {
		switch t := m.PromotionChoice.Value(); t {
		case Knight, Bishop, Rook, Queen:
			return t
		}
	}
	return Queen
}

func (m Move) String() string {
	s := m.Start().String() + m.End().String()
	if m.PawnPromotion {
		s += m.Promotion().String()
	}
	return s
}

func (m Move) DebugString() string {
	flags := ""
	if m.IsEnPassant {
		flags += " ep"
	}
	if m.IsCastle {
		flags += " castle"
	}
	if m.Captures() {
		return fmt.Sprintf("%v%vx%v%v%v", m.PieceMoved, m.Start(), m.PieceCaptured, m.End(), flags)
	}
	return fmt.Sprintf("%v%v%v%v", m.PieceMoved, m.Start(), m.End(), flags)
}
