package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/daystram/chesscore/position"
)

var (
	ErrInvalidFEN        = errors.New("invalid fen")
	ErrInvalidMove       = errors.New("invalid move")
	ErrIllegalMove       = errors.New("illegal move")
	ErrGameOver          = errors.New("game over")
	ErrPromotionRequired = errors.New("promotion piece required")
	ErrInvalidPromotion  = errors.New("invalid promotion")
	ErrInvalidPlacement  = errors.New("invalid placement")
	ErrNilBoard          = errors.New("nil board")
)

// Board is a chess position in little-endian rank-file (LERF) mapping.
// It is not safe for concurrent mutation; Clone it to explore hypothetical moves.
type Board struct {
	white, black PieceSet

	turn         Side
	enPassant    Bitmap
	castleRights CastleRights
	// advance holds the pawns that have not moved yet and may still push two cells.
	advance       Bitmap
	halfMoveClock uint32
	fullMoveClock uint32

	state  State
	reason Reason
}

type boardConfig struct {
	fen *string
}

type BoardOption func(*boardConfig)

func WithFEN(fen string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.fen = &fen
	}
}

// NewBoard returns the standard starting position, or the position described by WithFEN.
func NewBoard(opts ...BoardOption) (*Board, error) {
	cfg := &boardConfig{}
	for _, f := range opts {
		f(cfg)
	}

	if cfg.fen != nil {
		b := &Board{}
		if err := UnmarshalFEN(*cfg.fen, b); err != nil {
			return nil, err
		}
		return b, nil
	}

	b := NewEmptyBoard()
	b.white, b.black = NewPieceSet(SideWhite), NewPieceSet(SideBlack)
	for _, d := range []CastleDirection{
		CastleDirectionWhiteRight,
		CastleDirectionWhiteLeft,
		CastleDirectionBlackRight,
		CastleDirectionBlackLeft,
	} {
		b.castleRights.Set(d, true)
	}
	b.advance = b.startingPawns()
	b.refresh()
	return b, nil
}

// NewEmptyBoard returns a board without pieces, White to move. It stays in StateUnknown until
// both kings have been placed.
func NewEmptyBoard() *Board {
	return &Board{
		turn:          SideWhite,
		fullMoveClock: 1,
	}
}

// Place puts p for side s on pos, replacing whatever stood there. It clears the en passant
// target.
func (b *Board) Place(s Side, p Piece, pos position.Pos) error {
	if !pos.Valid() {
		return fmt.Errorf("%w: position %d off the board", ErrInvalidPlacement, pos)
	}
	if s != SideWhite && s != SideBlack {
		return fmt.Errorf("%w: unknown side", ErrInvalidPlacement)
	}
	at := maskCell[pos]
	switch p {
	case PieceUnknown:
		return fmt.Errorf("%w: unknown piece", ErrInvalidPlacement)
	case PiecePawn:
		if at&(maskRow[position.Rank1]|maskRow[position.Rank8]) != 0 {
			return fmt.Errorf("%w: pawn on %s", ErrInvalidPlacement, pos)
		}
	case PieceKing:
		if k := b.pieceSet(s).King; k&^at != 0 {
			return fmt.Errorf("%w: %s king already on %s", ErrInvalidPlacement, s, k.LS1B())
		}
	}

	b.white.Remove(at)
	b.black.Remove(at)
	b.pieceSet(s).Place(p, at)
	b.advance = (b.advance &^ at) | (b.startingPawns() & at)
	b.enPassant = Empty
	b.refresh()
	return nil
}

// SetTurn gives the move to s. Any en passant target is dropped since it only belongs to the
// move right after the double advance.
func (b *Board) SetTurn(s Side) {
	if s != SideWhite && s != SideBlack {
		return
	}
	b.turn = s
	b.enPassant = Empty
	b.refresh()
}

// SetCastleRights replaces the castling rights. Rights whose king or rook is not on its starting
// cell are never usable.
func (b *Board) SetCastleRights(c CastleRights) {
	b.castleRights = c
	b.refresh()
}

func (b *Board) Clone() *Board {
	c := *b
	return &c
}

func (b *Board) Turn() Side {
	return b.turn
}

func (b *Board) State() State {
	return b.state
}

// Reason explains the current State when it is terminal.
func (b *Board) Reason() Reason {
	return b.reason
}

func (b *Board) HalfMoveClock() uint32 {
	return b.halfMoveClock
}

func (b *Board) FullMoveClock() uint32 {
	return b.fullMoveClock
}

// EnPassant returns the en passant target, or position.NoPos.
func (b *Board) EnPassant() position.Pos {
	return b.enPassant.LS1B()
}

func (b *Board) CastleRights() CastleRights {
	return b.castleRights
}

// Pieces returns a copy of the piece set of s.
func (b *Board) Pieces(s Side) PieceSet {
	if ps := b.pieceSet(s); ps != nil {
		return *ps
	}
	return PieceSet{}
}

func (b *Board) IsEmpty(pos position.Pos) bool {
	return (b.white.All()|b.black.All())&Cell(pos) == 0
}

func (b *Board) Occupies(s Side, pos position.Pos) bool {
	ps := b.pieceSet(s)
	return ps != nil && ps.All()&Cell(pos) != 0
}

// PieceAt returns the side and piece on pos, or SideUnknown and PieceUnknown for an empty cell.
func (b *Board) PieceAt(pos position.Pos) (Side, Piece) {
	at := Cell(pos)
	if p := b.white.PieceAt(at); p != PieceUnknown {
		return SideWhite, p
	}
	if p := b.black.PieceAt(at); p != PieceUnknown {
		return SideBlack, p
	}
	return SideUnknown, PieceUnknown
}

// Destinations returns the legal destinations of the piece on pos. It is Empty unless the piece
// belongs to the side to move and the game is running.
func (b *Board) Destinations(pos position.Pos) Bitmap {
	if b.state != StateRunning || !b.Occupies(b.turn, pos) {
		return Empty
	}
	return newLegalMoves(b).destinations(maskCell[pos])
}

// IsPromotion reports whether moving the piece on from to to is a pawn promotion that needs a
// promotion piece.
func (b *Board) IsPromotion(from, to position.Pos) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	return b.pieceSet(b.turn).Pawns&maskCell[from] != 0 && b.promotionRank(b.turn)&maskCell[to] != 0
}

// GenerateMoves lists every legal move of the side to move. Promotions are listed once per
// promotion piece.
func (b *Board) GenerateMoves() []Move {
	if b.state != StateRunning {
		return nil
	}
	l := newLegalMoves(b)
	mvs := make([]Move, 0, 64)
	for _, from := range l.ally.All().Positions() {
		promote := l.ally.Pawns&maskCell[from] != 0
		for _, to := range l.destinations(maskCell[from]).Positions() {
			if promote && b.promotionRank(b.turn)&maskCell[to] != 0 {
				for _, p := range PawnPromoteCandidates {
					mvs = append(mvs, Move{From: from, To: to, Promote: p})
				}
				continue
			}
			mvs = append(mvs, Move{From: from, To: to})
		}
	}
	return mvs
}

// Danger returns the cells attacked by the side not to move.
func (b *Board) Danger() Bitmap {
	return newMoveGen(b, b.turn).danger()
}

// IsCheck reports whether the king of the side to move is attacked.
func (b *Board) IsCheck() bool {
	return b.isKingChecked(b.turn)
}

func (b *Board) isKingChecked(s Side) bool {
	checkers, _ := newMoveGen(b, s).checkers()
	return checkers != 0
}

// refresh recomputes the cached state for the side to move.
func (b *Board) refresh() {
	b.state, b.reason = StateUnknown, ReasonNone
	if b.white.King.BitCount() != 1 || b.black.King.BitCount() != 1 {
		return
	}

	l := newLegalMoves(b)
	moves := l.hasMoves()
	switch {
	case !moves && l.check != Full:
		b.state, b.reason = StateWhiteWon, ReasonCheckmate
		if b.turn == SideWhite {
			b.state = StateBlackWon
		}
	case !moves:
		b.state, b.reason = StateDraw, ReasonStalemate
	case b.halfMoveClock > fiftyMoveLimit:
		b.state, b.reason = StateDraw, ReasonFiftyMoveRule
	case b.isInsufficientMaterial():
		b.state, b.reason = StateDraw, ReasonInsufficientMaterial
	default:
		b.state = StateRunning
	}
}

func (b *Board) isInsufficientMaterial() bool {
	w, k := &b.white, &b.black
	switch {
	case w.OnlyKing() && k.OnlyKing():
		return true
	case w.OnlyKing() && (k.OnlyKingAndBishop() || k.OnlyKingAndKnight()),
		k.OnlyKing() && (w.OnlyKingAndBishop() || w.OnlyKingAndKnight()):
		return true
	case w.OnlyKingAndBishop() && k.OnlyKingAndBishop():
		return (w.Bishops&maskLight == 0) == (k.Bishops&maskLight == 0)
	default:
		return false
	}
}

func (b *Board) pieceSet(s Side) *PieceSet {
	switch s {
	case SideWhite:
		return &b.white
	case SideBlack:
		return &b.black
	default:
		return nil
	}
}

func (b *Board) startingPawns() Bitmap {
	return b.white.Pawns&maskRow[position.Rank2] | b.black.Pawns&maskRow[position.Rank7]
}

func (b *Board) promotionRank(s Side) Bitmap {
	if s == SideBlack {
		return maskRow[position.Rank1]
	}
	return maskRow[position.Rank8]
}

func (b *Board) Dump() string {
	builder := strings.Builder{}
	for y := Height - 1; y >= 0; y-- {
		_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n")
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", y+1))
		for x := position.Pos(0); x < Width; x++ {
			s, p := b.PieceAt(position.NewPos(x, y))
			sym := p.SymbolFEN(s)
			if s == SideUnknown {
				sym = " "
			}
			_, _ = builder.WriteString(fmt.Sprintf(" %s |", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n   ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(fmt.Sprintf("  %s ", x.NotationComponentX()))
	}
	return builder.String()
}

func (b *Board) DebugString() string {
	return fmt.Sprintf("cast: %s\nenps: %s\nhalf: %4d\nfull: %4d\nstat: %s %s",
		b.castleRights.Bitmap(), b.EnPassant(), b.halfMoveClock, b.fullMoveClock, b.state, b.reason)
}
