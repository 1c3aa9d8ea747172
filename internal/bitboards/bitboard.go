package bitboards

import (
	"fmt"
	"math/bits"
	"strings"

	. "github.com/cricklet/chessrules/internal/helpers"
)

// Bitboard bit i is the square at row i/8, col i%8 (bit 0 is a8).
type Bitboard uint64

type PlayerBitboards struct {
	Occupied Bitboard
	Pieces   [6]Bitboard // indexed via PieceType
}

// Bitboards mirrors a BoardArray, segmented by player and piece type.
type Bitboards struct {
	Occupied Bitboard
	Players  [2]PlayerBitboards
}

var AllOnes Bitboard = ^Bitboard(0)

var SingleBitboards [64]Bitboard = func() [64]Bitboard {
	result := [64]Bitboard{}
	for i := 0; i < 64; i++ {
		result[i] = Bitboard(1) << i
	}
	return result
}()

func SingleBitboard(index int) Bitboard {
	return SingleBitboards[index]
}

func SquareBitboard(sq Square) Bitboard {
	return SingleBitboards[sq.Index()]
}

func (b Bitboard) Has(sq Square) bool {
	return b&SquareBitboard(sq) != 0
}

func (b Bitboard) LeastSignificantOne() Bitboard {
	return b & -b
}

func (b Bitboard) FirstIndexOfOne() int {
	return bits.TrailingZeros64(uint64(b))
}

// NextIndexOfOne pops the lowest set bit.
func (b Bitboard) NextIndexOfOne() (int, Bitboard) {
	index := bits.TrailingZeros64(uint64(b))
	return index, b ^ b.LeastSignificantOne()
}

func (b Bitboard) EachIndexOfOneCallback(callback func(int)) {
	index, temp := 0, b
	for temp != 0 {
		index, temp = temp.NextIndexOfOne()
		callback(index)
	}
}

func OnesCount(b Bitboard) int {
	return bits.OnesCount64(uint64(b))
}

func BitboardWithAllLocationsSet(locations []string) Bitboard {
	return ReduceSlice(
		MapSlice(locations, SquareFromStringOrPanic),
		0,
		func(result Bitboard, sq Square) Bitboard {
			return result | SquareBitboard(sq)
		},
	)
}

func (b Bitboard) String() string {
	rows := [8]string{}
	for row := 0; row < 8; row++ {
		r := uint8(b >> (row * 8))
		// col 0 is the low bit; print it first
		rows[row] = fmt.Sprintf("%08b", ReverseBits(r))
	}
	return strings.Join(rows[:], "\n")
}

func BitboardFromStrings(strings [8]string) Bitboard {
	b := Bitboard(0)
	for row, line := range strings {
		for col, c := range line {
			if c == '1' {
				b |= SquareBitboard(Square{Row: row, Col: col})
			}
		}
	}
	return b
}

var (
	FileA Bitboard = BitboardFromStrings([8]string{
		"10000000",
		"10000000",
		"10000000",
		"10000000",
		"10000000",
		"10000000",
		"10000000",
		"10000000",
	})
	FileH Bitboard = FileA << 7

	LightSquares Bitboard = func() Bitboard {
		result := Bitboard(0)
		for i := 0; i < 64; i++ {
			if SquareFromIndex(i).IsLight() {
				result |= SingleBitboard(i)
			}
		}
		return result
	}()
	DarkSquares Bitboard = ^LightSquares
)

type Dir struct {
	DR int
	DC int
}

var KnightDirs = []Dir{
	{-2, 1}, {-2, -1}, {2, 1}, {2, -1},
	{-1, 2}, {-1, -2}, {1, 2}, {1, -2},
}

var RookDirs = []Dir{
	{-1, 0}, {1, 0}, {0, 1}, {0, -1},
}

var BishopDirs = []Dir{
	{-1, 1}, {-1, -1}, {1, 1}, {1, -1},
}

var KingDirs = append(append([]Dir{}, RookDirs...), BishopDirs...)

var QueenDirs = KingDirs

func leaperMasks(dirs []Dir) [64]Bitboard {
	result := [64]Bitboard{}
	for i := 0; i < 64; i++ {
		start := SquareFromIndex(i)
		for _, dir := range dirs {
			if end := start.Offset(dir.DR, dir.DC); end.OnBoard() {
				result[i] |= SquareBitboard(end)
			}
		}
	}
	return result
}

var KnightAttackMasks [64]Bitboard = leaperMasks(KnightDirs)

var KingAttackMasks [64]Bitboard = leaperMasks(KingDirs)

// PawnAttacks is every square attacked by the given pawns. White pawns
// attack toward row 0, black pawns toward row 7.
func PawnAttacks(pawns Bitboard, player Player) Bitboard {
	if player == White {
		return ((pawns &^ FileA) >> 9) | ((pawns &^ FileH) >> 7)
	}
	return ((pawns &^ FileA) << 7) | ((pawns &^ FileH) << 9)
}

func (b *Bitboards) ClearSquare(sq Square, piece Piece) {
	if piece == XX {
		return
	}
	zeroBitboard := ^SquareBitboard(sq)

	b.Players[piece.Player()].Occupied &= zeroBitboard
	b.Players[piece.Player()].Pieces[piece.PieceType()] &= zeroBitboard
	b.Occupied &= zeroBitboard
}

func (b *Bitboards) SetSquare(sq Square, piece Piece) {
	if piece == XX {
		return
	}
	oneBitboard := SquareBitboard(sq)

	b.Players[piece.Player()].Occupied |= oneBitboard
	b.Players[piece.Player()].Pieces[piece.PieceType()] |= oneBitboard
	b.Occupied |= oneBitboard
}

// RecomputeOccupied rebuilds the occupancy boards as the union of the
// per-type boards.
func (b *Bitboards) RecomputeOccupied() {
	b.Occupied = 0
	for player := range b.Players {
		occupied := Bitboard(0)
		for _, pieces := range b.Players[player].Pieces {
			occupied |= pieces
		}
		b.Players[player].Occupied = occupied
		b.Occupied |= occupied
	}
}

func (b *Bitboards) PieceCount(player Player, pieceType PieceType) int {
	return OnesCount(b.Players[player].Pieces[pieceType])
}

func BitboardsFromBoard(board *BoardArray) Bitboards {
	result := Bitboards{}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := Square{Row: row, Col: col}
			result.SetSquare(sq, board.At(sq))
		}
	}
	return result
}

// Diff describes where two mirrors disagree; empty when equal.
func (b *Bitboards) Diff(other *Bitboards) string {
	if *b == *other {
		return ""
	}
	result := ""
	if b.Occupied != other.Occupied {
		result += fmt.Sprintf("occupied:\n%v\nvs\n%v\n", b.Occupied, other.Occupied)
	}
	for player := White; player <= Black; player++ {
		for _, t := range AllPieceTypes {
			if b.Players[player].Pieces[t] != other.Players[player].Pieces[t] {
				result += fmt.Sprintf("%v %v:\n%v\nvs\n%v\n", player, t,
					b.Players[player].Pieces[t], other.Players[player].Pieces[t])
			}
		}
	}
	if result == "" {
		result = "player occupancy differs\n"
	}
	return result
}
