package board

import (
	"github.com/daystram/chesscore/position"
)

const (
	Width      = position.MaxComponentScalar
	Height     = position.MaxComponentScalar
	TotalCells = position.Total

	DefaultStartingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	// fiftyMoveLimit is the half move clock value the fifty-move draw must exceed.
	fiftyMoveLimit = 100
)

var (
	maskCol = [Width]Bitmap{
		position.FileA: 0x_01_01_01_01_01_01_01_01,
		position.FileB: 0x_02_02_02_02_02_02_02_02,
		position.FileC: 0x_04_04_04_04_04_04_04_04,
		position.FileD: 0x_08_08_08_08_08_08_08_08,
		position.FileE: 0x_10_10_10_10_10_10_10_10,
		position.FileF: 0x_20_20_20_20_20_20_20_20,
		position.FileG: 0x_40_40_40_40_40_40_40_40,
		position.FileH: 0x_80_80_80_80_80_80_80_80,
	}
	maskRow = [Height]Bitmap{
		position.Rank1: 0x_00_00_00_00_00_00_00_FF,
		position.Rank2: 0x_00_00_00_00_00_00_FF_00,
		position.Rank3: 0x_00_00_00_00_00_FF_00_00,
		position.Rank4: 0x_00_00_00_00_FF_00_00_00,
		position.Rank5: 0x_00_00_00_FF_00_00_00_00,
		position.Rank6: 0x_00_00_FF_00_00_00_00_00,
		position.Rank7: 0x_00_FF_00_00_00_00_00_00,
		position.Rank8: 0x_FF_00_00_00_00_00_00_00,
	}
	maskLight Bitmap = 0x_55_AA_55_AA_55_AA_55_AA

	maskCell [TotalCells]Bitmap

	// maskKeepLeft[n] keeps the files a cell may occupy after moving n files left,
	// maskKeepRight[n] the same for moving right.
	maskKeepLeft  [Width]Bitmap
	maskKeepRight [Width]Bitmap

	posCastling = [4 + 1][6 + 1][2]position.Pos{
		CastleDirectionWhiteRight: {
			PieceKing: {position.E1, position.G1},
			PieceRook: {position.H1, position.F1},
		},
		CastleDirectionWhiteLeft: {
			PieceKing: {position.E1, position.C1},
			PieceRook: {position.A1, position.D1},
		},
		CastleDirectionBlackRight: {
			PieceKing: {position.E8, position.G8},
			PieceRook: {position.H8, position.F8},
		},
		CastleDirectionBlackLeft: {
			PieceKing: {position.E8, position.C8},
			PieceRook: {position.A8, position.D8},
		},
	}
	// maskCastleRights holds the king and rook start cells of each wing.
	maskCastleRights [4 + 1]Bitmap
	// maskCastlePath holds the cells strictly between king and rook.
	maskCastlePath [4 + 1]Bitmap
	// maskCastleSafe holds the cells the king stands on, passes through, and lands on.
	maskCastleSafe [4 + 1]Bitmap

	materialPieceValue = [6 + 1]uint32{
		PiecePawn:   100,
		PieceKnight: 320,
		PieceBishop: 350,
		PieceRook:   500,
		PieceQueen:  900,
		PieceKing:   20000,
	}
)

func init() {
	initMask()
	initCastling()
}

func initMask() {
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		maskCell[pos] = 1 << pos
	}

	for n := position.Pos(0); n < Width; n++ {
		for x := position.Pos(0); x < Width; x++ {
			if x < Width-n {
				maskKeepLeft[n] |= maskCol[x]
			}
			if x >= n {
				maskKeepRight[n] |= maskCol[x]
			}
		}
	}
}

func initCastling() {
	for _, d := range []CastleDirection{
		CastleDirectionWhiteRight,
		CastleDirectionWhiteLeft,
		CastleDirectionBlackRight,
		CastleDirectionBlackLeft,
	} {
		king, rook := posCastling[d][PieceKing], posCastling[d][PieceRook]
		maskCastleRights[d] = maskCell[king[0]] | maskCell[rook[0]]
		maskCastlePath[d] = between(king[0], rook[0])
		maskCastleSafe[d] = maskCell[king[0]] | between(king[0], king[1]) | maskCell[king[1]]
	}
}

// between returns the cells strictly between two cells of the same rank.
func between(a, b position.Pos) Bitmap {
	if a > b {
		a, b = b, a
	}
	var bm Bitmap
	for pos := a + 1; pos < b; pos++ {
		bm |= maskCell[pos]
	}
	return bm
}
