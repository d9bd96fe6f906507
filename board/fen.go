package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/daystram/chesscore/position"
)

// UnmarshalFEN parses fen into b. On error b is left as it was.
func UnmarshalFEN(fen string, b *Board) error {
	if b == nil {
		return fmt.Errorf("%w: %w", ErrInvalidFEN, ErrNilBoard)
	}
	segments := strings.Fields(fen)
	if len(segments) != 6 {
		return fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	nb := NewEmptyBoard()
	rows := strings.Split(segments[0], "/")
	if len(rows) != int(Height) {
		return fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}
	for i, row := range rows {
		y := Height - position.Pos(i) - 1
		x := position.Pos(0)
		for _, cell := range row {
			if cell >= '1' && cell <= '8' {
				x += position.Pos(cell - '0')
				if x > Width {
					return fmt.Errorf("%w: rank %d has more than %d files", ErrInvalidFEN, y+1, Width)
				}
				continue
			}
			s, p := PieceFromSymbol(cell)
			if p == PieceUnknown {
				return fmt.Errorf("%w: unknown symbol '%s'", ErrInvalidFEN, string(cell))
			}
			if x >= Width {
				return fmt.Errorf("%w: rank %d has more than %d files", ErrInvalidFEN, y+1, Width)
			}
			nb.pieceSet(s).Place(p, maskCell[position.NewPos(x, y)])
			x++
		}
		if x != Width {
			return fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, y+1, x)
		}
	}
	if nb.white.King.BitCount() != 1 || nb.black.King.BitCount() != 1 {
		return fmt.Errorf("%w: each side needs exactly one king", ErrInvalidFEN)
	}
	if (nb.white.Pawns|nb.black.Pawns)&(maskRow[position.Rank1]|maskRow[position.Rank8]) != 0 {
		return fmt.Errorf("%w: pawn on first or last rank", ErrInvalidFEN)
	}

	switch segments[1] {
	case "w":
		nb.turn = SideWhite
	case "b":
		nb.turn = SideBlack
	default:
		return fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}

	if segments[2] != "-" {
		if len(segments[2]) > 4 {
			return fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
		}
		for _, e := range segments[2] {
			var d CastleDirection
			switch e {
			case 'K':
				d = CastleDirectionWhiteRight
			case 'Q':
				d = CastleDirectionWhiteLeft
			case 'k':
				d = CastleDirectionBlackRight
			case 'q':
				d = CastleDirectionBlackLeft
			default:
				return fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
			}
			if nb.castleRights.IsAllowed(d) {
				return fmt.Errorf("%w: duplicate castling right '%s'", ErrInvalidFEN, string(e))
			}
			nb.castleRights.Set(d, true)
		}
	}

	if segments[3] != "-" {
		pos, err := position.NewPosFromNotation(segments[3])
		if err != nil {
			return fmt.Errorf("%w: invalid enpassant position: %v", ErrInvalidFEN, err)
		}
		nb.enPassant = maskCell[pos]
		if err := nb.validateEnPassant(); err != nil {
			return err
		}
	}

	halfMoveClock, err := strconv.ParseUint(segments[4], 10, 32)
	if err != nil {
		return fmt.Errorf("%w: invalid half move clock", ErrInvalidFEN)
	}
	nb.halfMoveClock = uint32(halfMoveClock)

	fullMoveClock, err := strconv.ParseUint(segments[5], 10, 32)
	if err != nil {
		return fmt.Errorf("%w: invalid full move clock", ErrInvalidFEN)
	}
	nb.fullMoveClock = uint32(fullMoveClock)

	if nb.isKingChecked(nb.turn.Opposite()) {
		return fmt.Errorf("%w: %s king is in check but it is %s to move", ErrInvalidFEN, nb.turn.Opposite(), nb.turn)
	}

	nb.advance = nb.startingPawns()
	nb.refresh()
	*b = *nb
	return nil
}

// validateEnPassant checks that the en passant target sits right behind a pawn of the side not to
// move that could have just advanced two cells.
func (b *Board) validateEnPassant() error {
	g := newMoveGen(b, b.turn.Opposite())
	rank := maskRow[position.Rank3]
	if b.turn == SideWhite {
		rank = maskRow[position.Rank6]
	}
	occ := g.occupied()
	switch {
	case b.enPassant&rank == 0:
		return fmt.Errorf("%w: enpassant position %s on wrong rank", ErrInvalidFEN, b.EnPassant())
	case g.ally.Pawns&g.forward(b.enPassant, 1) == 0:
		return fmt.Errorf("%w: no pawn in front of enpassant position %s", ErrInvalidFEN, b.EnPassant())
	case occ&(b.enPassant|g.backward(b.enPassant, 1)) != 0:
		return fmt.Errorf("%w: enpassant position %s is not behind a double advance", ErrInvalidFEN, b.EnPassant())
	}
	return nil
}

func MarshalFEN(b *Board) (string, error) {
	if b == nil {
		return "", fmt.Errorf("%w: nothing to marshal", ErrNilBoard)
	}
	builder := strings.Builder{}
	for y := Height - 1; y >= 0; y-- {
		var skip uint8
		for x := position.Pos(0); x < Width; x++ {
			s, p := b.PieceAt(position.NewPos(x, y))
			if p == PieceUnknown {
				skip++
				continue
			}
			if skip != 0 {
				_, _ = builder.WriteRune(rune(skip + '0'))
				skip = 0
			}
			_, _ = builder.WriteString(p.SymbolFEN(s))
		}
		if skip != 0 {
			_, _ = builder.WriteRune(rune(skip + '0'))
		}
		if y > 0 {
			_, _ = builder.WriteRune('/')
		}
	}

	if b.turn == SideWhite {
		_, _ = builder.WriteString(" w ")
	} else {
		_, _ = builder.WriteString(" b ")
	}

	if !b.castleRights.IsSideAllowed(SideWhite) && !b.castleRights.IsSideAllowed(SideBlack) {
		_, _ = builder.WriteRune('-')
	} else {
		if b.castleRights.IsAllowed(CastleDirectionWhiteRight) {
			_, _ = builder.WriteRune('K')
		}
		if b.castleRights.IsAllowed(CastleDirectionWhiteLeft) {
			_, _ = builder.WriteRune('Q')
		}
		if b.castleRights.IsAllowed(CastleDirectionBlackRight) {
			_, _ = builder.WriteRune('k')
		}
		if b.castleRights.IsAllowed(CastleDirectionBlackLeft) {
			_, _ = builder.WriteRune('q')
		}
	}
	_, _ = builder.WriteRune(' ')

	if b.enPassant == 0 {
		_, _ = builder.WriteRune('-')
	} else {
		_, _ = builder.WriteString(b.EnPassant().Notation())
	}

	_, _ = builder.WriteString(fmt.Sprintf(" %d %d", b.halfMoveClock, b.fullMoveClock))

	return builder.String(), nil
}

func (b *Board) FEN() string {
	fen, _ := MarshalFEN(b)
	return fen
}
