package board

// shiftFunc moves every cell of a bitmap one step in a fixed direction.
type shiftFunc func(Bitmap) Bitmap

var (
	dirOrthogonal = [4]shiftFunc{ShiftN, ShiftE, ShiftS, ShiftW}
	dirDiagonal   = [4]shiftFunc{ShiftNE, ShiftSE, ShiftSW, ShiftNW}
)

// moveGen generates moves for one side of a board. The same generator computes the opponent's
// attacks when flipped, so there is a single code path for "my moves" and "their threats".
// It never mutates the board it reads.
type moveGen struct {
	side         Side
	ally, enemy  *PieceSet
	enPassant    Bitmap
	castleRights CastleRights
	advance      Bitmap
}

func newMoveGen(b *Board, s Side) moveGen {
	return moveGen{
		side:         s,
		ally:         b.pieceSet(s),
		enemy:        b.pieceSet(s.Opposite()),
		enPassant:    b.enPassant,
		castleRights: b.castleRights,
		advance:      b.advance,
	}
}

func (g moveGen) flip() moveGen {
	g.side = g.side.Opposite()
	g.ally, g.enemy = g.enemy, g.ally
	return g
}

func (g moveGen) occupied() Bitmap {
	return g.ally.All() | g.enemy.All()
}

func (g moveGen) forward(bm Bitmap, n uint) Bitmap {
	if g.side == SideBlack {
		return bm.Down(n)
	}
	return bm.Up(n)
}

func (g moveGen) backward(bm Bitmap, n uint) Bitmap {
	if g.side == SideBlack {
		return bm.Up(n)
	}
	return bm.Down(n)
}

// pawnAttacks returns the diagonal cells ally pawns on bm attack, occupied or not.
func (g moveGen) pawnAttacks(bm Bitmap) Bitmap {
	fw := g.forward(bm, 1)
	return fw.Left(1) | fw.Right(1)
}

func knightAttacks(bm Bitmap) Bitmap {
	return bm.Up(2).Left(1) | bm.Up(2).Right(1) |
		bm.Down(2).Left(1) | bm.Down(2).Right(1) |
		bm.Up(1).Left(2) | bm.Up(1).Right(2) |
		bm.Down(1).Left(2) | bm.Down(1).Right(2)
}

func kingAttacks(bm Bitmap) Bitmap {
	row := bm | bm.Left(1) | bm.Right(1)
	return (row | row.Up(1) | row.Down(1)) &^ bm
}

// slide casts rays from every cell of bm until each ray leaves the board or hits an occupied
// cell. The blocking cell is included.
func slide(bm Bitmap, dirs [4]shiftFunc, occ Bitmap) Bitmap {
	var attacks Bitmap
	for _, dir := range dirs {
		for ray := dir(bm); ray != 0; ray = dir(ray &^ occ) {
			attacks |= ray
		}
	}
	return attacks
}

// cast walks a single ray from bm and returns the empty cells it crossed and the first occupied
// cell it hit, which is Empty if the ray left the board.
func cast(bm Bitmap, dir shiftFunc, occ Bitmap) (path, hit Bitmap) {
	for cur := dir(bm); cur != 0; cur = dir(cur) {
		if cur&occ != 0 {
			return path, cur
		}
		path |= cur
	}
	return path, Empty
}

// sliders returns the enemy pieces moving along dirs.
func (g moveGen) sliders(diagonal bool) Bitmap {
	if diagonal {
		return g.enemy.Bishops | g.enemy.Queens
	}
	return g.enemy.Rooks | g.enemy.Queens
}

// attacks returns every cell the ally attacks or defends given occupancy occ.
func (g moveGen) attacks(occ Bitmap) Bitmap {
	return g.pawnAttacks(g.ally.Pawns) |
		knightAttacks(g.ally.Knights) |
		kingAttacks(g.ally.King) |
		slide(g.ally.Bishops|g.ally.Queens, dirDiagonal, occ) |
		slide(g.ally.Rooks|g.ally.Queens, dirOrthogonal, occ)
}

// danger returns the cells the enemy attacks. The ally king is taken off the board first so
// that it cannot shadow a slider's ray and retreat along it.
func (g moveGen) danger() Bitmap {
	return g.flip().attacks(g.occupied() &^ g.ally.King)
}

// checkers returns the enemy pieces attacking the ally king, and the cells that block any of
// the sliding checks.
func (g moveGen) checkers() (checkers, blocks Bitmap) {
	king, occ := g.ally.King, g.occupied()
	checkers = g.pawnAttacks(king)&g.enemy.Pawns | knightAttacks(king)&g.enemy.Knights
	for i, dirs := range [2][4]shiftFunc{dirOrthogonal, dirDiagonal} {
		for _, dir := range dirs {
			path, hit := cast(king, dir, occ)
			if hit&g.sliders(i == 1) != 0 {
				checkers |= hit
				blocks |= path
			}
		}
	}
	return checkers, blocks
}

// checkFilter returns the cells a non-king piece may move to while the ally king is in check:
// Full without check, the checker and its ray under a single check, and Empty under double check.
func (g moveGen) checkFilter() Bitmap {
	checkers, blocks := g.checkers()
	switch checkers.BitCount() {
	case 0:
		return Full
	case 1:
		return checkers | blocks
	default:
		return Empty
	}
}

// pinFilter returns the cells the ally piece on at may move to without exposing its own king,
// which is Full when at is not pinned.
func (g moveGen) pinFilter(at Bitmap) Bitmap {
	king, occ := g.ally.King, g.occupied()
	for i, dirs := range [2][4]shiftFunc{dirOrthogonal, dirDiagonal} {
		for _, dir := range dirs {
			path, hit := cast(king, dir, occ)
			if hit != at {
				continue
			}
			beyond, pinner := cast(at, dir, occ)
			if pinner&g.sliders(i == 1) != 0 {
				return path | beyond | pinner
			}
			return Full
		}
	}
	return Full
}

// pseudoLegal returns the destinations of the ally piece p on at, ignoring pins and checks.
// Castling and en passant are not included.
func (g moveGen) pseudoLegal(p Piece, at Bitmap) Bitmap {
	occ, ally := g.occupied(), g.ally.All()
	switch p {
	case PiecePawn:
		push := g.forward(at, 1) &^ occ
		if at&g.advance != 0 {
			push |= g.forward(push, 1) &^ occ
		}
		return push | g.pawnAttacks(at)&g.enemy.All()
	case PieceKnight:
		return knightAttacks(at) &^ ally
	case PieceBishop:
		return slide(at, dirDiagonal, occ) &^ ally
	case PieceRook:
		return slide(at, dirOrthogonal, occ) &^ ally
	case PieceQueen:
		return (slide(at, dirDiagonal, occ) | slide(at, dirOrthogonal, occ)) &^ ally
	case PieceKing:
		return kingAttacks(at) &^ ally
	default:
		return Empty
	}
}

// castles returns the king destinations of every castling currently legal, given the enemy
// attack map.
func (g moveGen) castles(danger Bitmap) Bitmap {
	var dst Bitmap
	occ := g.occupied()
	for _, d := range castleDirections(g.side) {
		kFrom, kTo := d.KingMove()
		rFrom, _ := d.RookMove()
		if !g.castleRights.IsAllowed(d) ||
			g.ally.King&maskCell[kFrom] == 0 ||
			g.ally.Rooks&maskCell[rFrom] == 0 ||
			occ&maskCastlePath[d] != 0 ||
			danger&maskCastleSafe[d] != 0 {
			continue
		}
		dst |= maskCell[kTo]
	}
	return dst
}

// enPassantCapture returns the en passant target if the ally pawn on at may capture onto it.
// The capture is checked by replaying it on the occupancy: it removes two pawns at once, which
// can uncover a slider on the king, and it may capture a pawn that is giving check.
func (g moveGen) enPassantCapture(at Bitmap) Bitmap {
	if g.enPassant == 0 || g.pawnAttacks(at)&g.enPassant == 0 {
		return Empty
	}
	captured := g.backward(g.enPassant, 1)
	if g.enemy.Pawns&captured == 0 {
		return Empty
	}

	king := g.ally.King
	occ := (g.occupied() &^ at &^ captured) | g.enPassant
	switch {
	case g.pawnAttacks(king)&(g.enemy.Pawns&^captured) != 0,
		knightAttacks(king)&g.enemy.Knights != 0,
		slide(king, dirDiagonal, occ)&g.sliders(true) != 0,
		slide(king, dirOrthogonal, occ)&g.sliders(false) != 0:
		return Empty
	}
	return g.enPassant
}

// legalMoves computes, once per position, what every ally piece needs to filter its moves.
type legalMoves struct {
	moveGen
	danger Bitmap
	check  Bitmap
}

func newLegalMoves(b *Board) legalMoves {
	g := newMoveGen(b, b.turn)
	return legalMoves{
		moveGen: g,
		danger:  g.danger(),
		check:   g.checkFilter(),
	}
}

// destinations returns every legal destination of the ally piece on at.
func (l legalMoves) destinations(at Bitmap) Bitmap {
	p := l.ally.PieceAt(at)
	switch p {
	case PieceUnknown:
		return Empty
	case PieceKing:
		return l.pseudoLegal(p, at)&^l.danger | l.castles(l.danger)
	case PiecePawn:
		if l.check == Empty {
			return Empty
		}
		return l.pseudoLegal(p, at)&l.pinFilter(at)&l.check | l.enPassantCapture(at)
	default:
		if l.check == Empty {
			return Empty
		}
		return l.pseudoLegal(p, at) & l.pinFilter(at) & l.check
	}
}

// hasMoves reports whether the ally has at least one legal move.
func (l legalMoves) hasMoves() bool {
	for bm := l.ally.All(); bm != 0; bm &= bm - 1 {
		if l.destinations(bm&-bm) != 0 {
			return true
		}
	}
	return false
}
