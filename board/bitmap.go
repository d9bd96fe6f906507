package board

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/daystram/chesscore/position"
)

// Bitmap is a set of cells, bit i standing for position.Pos(i).
type Bitmap uint64

const (
	Empty Bitmap = 0
	Full  Bitmap = ^Empty
)

// Cell returns the single-cell bitmap for pos, or Empty if pos is off the board.
func Cell(pos position.Pos) Bitmap {
	if !pos.Valid() {
		return Empty
	}
	return maskCell[pos]
}

// Up shifts every cell n ranks towards rank 8.
func (bm Bitmap) Up(n uint) Bitmap {
	if n >= uint(Height) {
		return Empty
	}
	return bm << (n * uint(Width))
}

// Down shifts every cell n ranks towards rank 1.
func (bm Bitmap) Down(n uint) Bitmap {
	if n >= uint(Height) {
		return Empty
	}
	return bm >> (n * uint(Width))
}

// Left shifts every cell n files towards file a. Cells pushed past file a are dropped
// instead of wrapping onto file h of the rank below.
func (bm Bitmap) Left(n uint) Bitmap {
	if n >= uint(Width) {
		return Empty
	}
	return (bm >> n) & maskKeepLeft[n]
}

// Right shifts every cell n files towards file h. Cells pushed past file h are dropped
// instead of wrapping onto file a of the rank above.
func (bm Bitmap) Right(n uint) Bitmap {
	if n >= uint(Width) {
		return Empty
	}
	return (bm << n) & maskKeepRight[n]
}

func ShiftN(bm Bitmap) Bitmap {
	return bm.Up(1)
}

func ShiftNE(bm Bitmap) Bitmap {
	return bm.Up(1).Right(1)
}

func ShiftE(bm Bitmap) Bitmap {
	return bm.Right(1)
}

func ShiftSE(bm Bitmap) Bitmap {
	return bm.Down(1).Right(1)
}

func ShiftS(bm Bitmap) Bitmap {
	return bm.Down(1)
}

func ShiftSW(bm Bitmap) Bitmap {
	return bm.Down(1).Left(1)
}

func ShiftW(bm Bitmap) Bitmap {
	return bm.Left(1)
}

func ShiftNW(bm Bitmap) Bitmap {
	return bm.Up(1).Left(1)
}

func Union(bms ...Bitmap) Bitmap {
	var u Bitmap
	for _, bm := range bms {
		u |= bm
	}
	return u
}

func (bm Bitmap) Has(pos position.Pos) bool {
	return bm&Cell(pos) != 0
}

func (bm *Bitmap) Set(pos position.Pos) {
	*bm |= Cell(pos)
}

// LS1B returns the least significant set cell, or position.NoPos for an empty bitmap.
func (bm Bitmap) LS1B() position.Pos {
	if bm == 0 {
		return position.NoPos
	}
	return position.Pos(bits.TrailingZeros64(uint64(bm)))
}

func (bm Bitmap) BitCount() uint8 {
	return uint8(bits.OnesCount64(uint64(bm)))
}

// Positions lists the set cells in ascending order.
func (bm Bitmap) Positions() []position.Pos {
	ps := make([]position.Pos, 0, bm.BitCount())
	for ; bm != 0; bm &= bm - 1 {
		ps = append(ps, bm.LS1B())
	}
	return ps
}

func (bm Bitmap) String() string {
	return fmt.Sprintf("0x%016X", uint64(bm))
}

func (bm Bitmap) Dump(sym ...rune) string {
	builder := strings.Builder{}
	for y := Height - 1; y >= 0; y-- {
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", y+1))
		for x := position.Pos(0); x < Width; x++ {
			if bm.Has(position.NewPos(x, y)) {
				s := "#"
				if len(sym) == 1 {
					s = string(sym[0])
				}
				_, _ = builder.WriteString(fmt.Sprintf(" %s ", s))
			} else {
				_, _ = builder.WriteString(" . ")
			}
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("    ------------------------\n    ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(fmt.Sprintf(" %s ", x.NotationComponentX()))
	}
	return builder.String()
}
