package board

import "github.com/daystram/chesscore/position"

// PieceSet holds one side's pieces, one bitmap per piece type. The bitmaps are pairwise disjoint.
type PieceSet struct {
	Pawns   Bitmap
	Knights Bitmap
	Bishops Bitmap
	Rooks   Bitmap
	Queens  Bitmap
	King    Bitmap
}

// NewPieceSet returns the standard starting layout for s.
func NewPieceSet(s Side) PieceSet {
	back, front := maskRow[position.Rank1], maskRow[position.Rank2]
	if s == SideBlack {
		back, front = maskRow[position.Rank8], maskRow[position.Rank7]
	}
	return PieceSet{
		Pawns:   front,
		Knights: back & (maskCol[position.FileB] | maskCol[position.FileG]),
		Bishops: back & (maskCol[position.FileC] | maskCol[position.FileF]),
		Rooks:   back & (maskCol[position.FileA] | maskCol[position.FileH]),
		Queens:  back & maskCol[position.FileD],
		King:    back & maskCol[position.FileE],
	}
}

func (ps PieceSet) All() Bitmap {
	return ps.Pawns | ps.Knights | ps.Bishops | ps.Rooks | ps.Queens | ps.King
}

func (ps PieceSet) Get(p Piece) Bitmap {
	if bm := ps.ref(p); bm != nil {
		return *bm
	}
	return Empty
}

func (ps PieceSet) Has(p Piece, at Bitmap) bool {
	return ps.Get(p)&at != 0
}

// PieceAt returns the piece type on at, or PieceUnknown.
func (ps PieceSet) PieceAt(at Bitmap) Piece {
	for _, p := range []Piece{PiecePawn, PieceKnight, PieceBishop, PieceRook, PieceQueen, PieceKing} {
		if ps.Has(p, at) {
			return p
		}
	}
	return PieceUnknown
}

// Move relocates whatever piece of this set stands on from to to. It is a no-op if from is empty.
func (ps *PieceSet) Move(from, to Bitmap) {
	bm := ps.ref(ps.PieceAt(from))
	if bm == nil {
		return
	}
	*bm = (*bm &^ from) | to
}

// Remove clears every piece of this set on at.
func (ps *PieceSet) Remove(at Bitmap) {
	ps.Pawns &^= at
	ps.Knights &^= at
	ps.Bishops &^= at
	ps.Rooks &^= at
	ps.Queens &^= at
	ps.King &^= at
}

// Promote turns the pawn on at into p. Nothing happens unless a pawn stands on at.
func (ps *PieceSet) Promote(at Bitmap, p Piece) {
	if ps.Pawns&at == 0 || !p.IsPromoteCandidate() {
		return
	}
	ps.Pawns &^= at
	*ps.ref(p) |= at
}

func (ps *PieceSet) Place(p Piece, at Bitmap) {
	if bm := ps.ref(p); bm != nil {
		*bm |= at
	}
}

// Value sums the material weights of every piece in the set.
func (ps PieceSet) Value() uint32 {
	var v uint32
	for _, p := range []Piece{PiecePawn, PieceKnight, PieceBishop, PieceRook, PieceQueen, PieceKing} {
		v += uint32(ps.Get(p).BitCount()) * p.Value()
	}
	return v
}

func (ps PieceSet) OnlyKing() bool {
	return ps.All() == ps.King
}

func (ps PieceSet) OnlyKingAndBishop() bool {
	return ps.Bishops.BitCount() == 1 && ps.All() == ps.King|ps.Bishops
}

func (ps PieceSet) OnlyKingAndKnight() bool {
	return ps.Knights.BitCount() == 1 && ps.All() == ps.King|ps.Knights
}

func (ps *PieceSet) ref(p Piece) *Bitmap {
	switch p {
	case PiecePawn:
		return &ps.Pawns
	case PieceKnight:
		return &ps.Knights
	case PieceBishop:
		return &ps.Bishops
	case PieceRook:
		return &ps.Rooks
	case PieceQueen:
		return &ps.Queens
	case PieceKing:
		return &ps.King
	default:
		return nil
	}
}
