package board

import (
	"fmt"

	"github.com/daystram/chesscore/position"
)

// Move is a from/to pair with an optional promotion piece. Castling is expressed as the king's
// two-file move, en passant as the pawn's diagonal move onto the en passant target.
type Move struct {
	From, To position.Pos
	Promote  Piece
}

func (m Move) String() string {
	return m.UCI()
}

// UCI formats the move in long algebraic notation, e.g. e2e4 or e7e8q.
func (m Move) UCI() string {
	return m.From.Notation() + m.To.Notation() + m.Promote.SymbolFEN(SideBlack)
}

// ParseMove parses a long algebraic move such as e2e4 or e7e8q.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	from, err := position.NewPosFromNotation(s[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}
	to, err := position.NewPosFromNotation(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}
	mv := Move{From: from, To: to}
	if len(s) == 5 {
		side, p := PieceFromSymbol(rune(s[4]))
		if side != SideBlack || !p.IsPromoteCandidate() {
			return Move{}, fmt.Errorf("%w: %q: bad promotion piece", ErrInvalidMove, s)
		}
		mv.Promote = p
	}
	return mv, nil
}

// MoveFlag describes what a move does on the board it is played on.
type MoveFlag uint8

const (
	MoveFlagCapture MoveFlag = 1 << iota
	MoveFlagEnPassant
	MoveFlagCastle
	MoveFlagPromote
)

func (f MoveFlag) Has(o MoveFlag) bool {
	return f&o != 0
}

// Flags classifies mv against the current position. An en passant capture is also a capture.
// The move is not checked for legality.
func (b *Board) Flags(mv Move) MoveFlag {
	if !mv.From.Valid() || !mv.To.Valid() {
		return 0
	}
	var f MoveFlag
	from, to := maskCell[mv.From], maskCell[mv.To]
	ally, enemy := b.pieceSet(b.turn), b.pieceSet(b.turn.Opposite())
	switch ally.PieceAt(from) {
	case PiecePawn:
		if to == b.enPassant {
			f |= MoveFlagCapture | MoveFlagEnPassant
		}
		if mv.Promote != PieceUnknown {
			f |= MoveFlagPromote
		}
	case PieceKing:
		if castleDirectionFor(b.turn, mv.From, mv.To) != CastleDirectionUnknown {
			f |= MoveFlagCastle
		}
	}
	if enemy.All()&to != 0 {
		f |= MoveFlagCapture
	}
	return f
}
