package game

import (
	"fmt"
	"strconv"
	"strings"

	. "github.com/cricklet/chessrules/internal/helpers"
)

func FenStringForPlayer(p Player) string {
	if p == White {
		return "w"
	} else {
		return "b"
	}
}

func fenStringForEnPassant(enPassant Optional[Square]) string {
	if enPassant.IsEmpty() {
		return "-"
	}
	return enPassant.Value().String()
}

func FenStringForBoard(b BoardArray) string {
	s := ""
	for row := 0; row < 8; row++ {
		numSpaces := 0
		for col := 0; col < 8; col++ {
			piece := b[row][col]
			if piece == XX {
				numSpaces++
				continue
			}
			if numSpaces > 0 {
				s += fmt.Sprint(numSpaces)
				numSpaces = 0
			}
			s += piece.String()
		}
		if numSpaces > 0 {
			s += fmt.Sprint(numSpaces)
		}
		if row != 7 {
			s += "/"
		}
	}
	return s
}

func FenStringForGame(g *GameState) string {
	return fmt.Sprintf("%v %v %v %v %v %v",
		FenStringForBoard(g.board),
		FenStringForPlayer(g.player),
		g.castlingRights,
		fenStringForEnPassant(g.enPassantTarget),
		g.fiftyMoveCounter,
		g.FullMoveClock())
}

func (g *GameState) FenString() string {
	return FenStringForGame(g)
}

func boardFromFenString(s string) (BoardArray, Error) {
	board := BoardArray{}

	rows := strings.Split(s, "/")
	if len(rows) != 8 {
		return board, Errorf("expected 8 ranks in '%v'", s)
	}

	for row, rowString := range rows {
		col := 0
		for _, c := range rowString {
			if skip, err := strconv.Atoi(string(c)); err == nil {
				col += skip
			} else if p, err := PieceFromRune(c); IsNil(err) {
				if col >= 8 {
					return board, Errorf("too many squares in rank '%v'", rowString)
				}
				board[row][col] = p
				col++
			} else {
				return board, Errorf("unknown character '%v' in '%v'", string(c), s)
			}
		}
		if col != 8 {
			return board, Errorf("rank '%v' has %v squares", rowString, col)
		}
	}
	return board, NilError
}

func castlingRightsFromFenString(s string) (CastlingRights, Error) {
	rights := CastlingRights{}
	for _, c := range s {
		switch c {
		case '-':
			continue
		case 'K':
			rights[White][Kingside] = true
		case 'Q':
			rights[White][Queenside] = true
		case 'k':
			rights[Black][Kingside] = true
		case 'q':
			rights[Black][Queenside] = true
		default:
			return rights, Errorf("invalid castling rights '%v'", s)
		}
	}
	return rights, NilError
}

// GameStateFromFen sets up a position. Castling and en-passant fields are
// optional, as are the clocks; missing ones default to "- - 0 1".
func GameStateFromFen(s string, options ...GameOption) (*GameState, Error) {
	ss := strings.Fields(s)
	if len(ss) != 6 && len(ss) != 4 && len(ss) != 2 {
		return nil, Errorf("wrong num %v of fields in str '%v'", len(ss), s)
	}

	board, err := boardFromFenString(ss[0])
	if !IsNil(err) {
		return nil, err
	}

	player, err := PlayerFromString(ss[1])
	if !IsNil(err) {
		return nil, Errorf("invalid player '%v' in '%v'", ss[1], s)
	}

	castlingRightsString, enPassantTargetString := "-", "-"
	if len(ss) >= 4 {
		castlingRightsString, enPassantTargetString = ss[2], ss[3]
	}

	halfMoveClockString, fullMoveClockString := "0", "1"
	if len(ss) == 6 {
		halfMoveClockString, fullMoveClockString = ss[4], ss[5]
	}

	castlingRights, err := castlingRightsFromFenString(castlingRightsString)
	if !IsNil(err) {
		return nil, err
	}

	enPassantTarget := Empty[Square]()
	if enPassantTargetString != "-" {
		sq, err := SquareFromString(enPassantTargetString)
		if !IsNil(err) {
			return nil, Errorf("invalid en-passant target '%v' in '%v'", enPassantTargetString, s)
		}
		enPassantTarget = Some(sq)
	}

	halfMoveClock, convErr := strconv.Atoi(halfMoveClockString)
	if convErr != nil || halfMoveClock < 0 {
		return nil, Errorf("invalid half move clock '%v' in '%v'", halfMoveClockString, s)
	}

	fullMoveClock, convErr := strconv.Atoi(fullMoveClockString)
	if convErr != nil || fullMoveClock < 1 {
		return nil, Errorf("invalid full move clock '%v' in '%v'", fullMoveClockString, s)
	}

	return newGameState(board, player, castlingRights, enPassantTarget, halfMoveClock, fullMoveClock, options...)
}
