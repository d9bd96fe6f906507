package board

import "github.com/daystram/chesscore/position"

type CastleDirection uint8

const (
	CastleDirectionUnknown CastleDirection = iota
	CastleDirectionWhiteRight
	CastleDirectionWhiteLeft
	CastleDirectionBlackRight
	CastleDirectionBlackLeft
)

func (d CastleDirection) String() string {
	if d == CastleDirectionUnknown {
		return ""
	}
	if d.IsRight() {
		return d.Side().String() + " 0-0"
	}
	return d.Side().String() + " 0-0-0"
}

func (d CastleDirection) IsWhite() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionWhiteLeft
}

func (d CastleDirection) IsRight() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionBlackRight
}

func (d CastleDirection) Side() Side {
	switch {
	case d == CastleDirectionUnknown:
		return SideUnknown
	case d.IsWhite():
		return SideWhite
	default:
		return SideBlack
	}
}

// KingMove returns the king's start and destination cells.
func (d CastleDirection) KingMove() (position.Pos, position.Pos) {
	return posCastling[d][PieceKing][0], posCastling[d][PieceKing][1]
}

// RookMove returns the rook's start and destination cells.
func (d CastleDirection) RookMove() (position.Pos, position.Pos) {
	return posCastling[d][PieceRook][0], posCastling[d][PieceRook][1]
}

func castleDirections(s Side) [2]CastleDirection {
	if s == SideWhite {
		return [2]CastleDirection{CastleDirectionWhiteRight, CastleDirectionWhiteLeft}
	}
	return [2]CastleDirection{CastleDirectionBlackRight, CastleDirectionBlackLeft}
}

// castleDirectionFor returns the castling a king move from one cell to another performs, if any.
func castleDirectionFor(s Side, from, to position.Pos) CastleDirection {
	for _, d := range castleDirections(s) {
		if kFrom, kTo := d.KingMove(); kFrom == from && kTo == to {
			return d
		}
	}
	return CastleDirectionUnknown
}

// CastleRights records castling availability as the set of untouched king and rook start cells.
// A wing is available while both its king and rook cells remain in the set.
type CastleRights Bitmap

func (c *CastleRights) Set(d CastleDirection, allow bool) {
	if d == CastleDirectionUnknown {
		return
	}
	if allow {
		*c |= CastleRights(maskCastleRights[d])
		return
	}
	_, rook := d.RookMove()
	*c &^= CastleRights(maskCell[rook])
	if !c.IsSideAllowed(d.Side()) {
		king, _ := d.KingMove()
		*c &^= CastleRights(maskCell[king])
	}
}

func (c CastleRights) IsAllowed(d CastleDirection) bool {
	m := CastleRights(maskCastleRights[d])
	return m != 0 && c&m == m
}

func (c CastleRights) IsSideAllowed(s Side) bool {
	for _, d := range castleDirections(s) {
		if c.IsAllowed(d) {
			return true
		}
	}
	return false
}

// Revoke drops every right that depends on the given cells.
func (c *CastleRights) Revoke(bm Bitmap) {
	*c &^= CastleRights(bm)
}

// Bitmap returns the raw cell set.
func (c CastleRights) Bitmap() Bitmap {
	return Bitmap(c)
}
