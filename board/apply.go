package board

import "fmt"

// Apply validates mv against the legal moves of the side to move and plays it. A rejected move
// leaves the board untouched.
func (b *Board) Apply(mv Move) error {
	switch b.state {
	case StateRunning:
	case StateUnknown:
		return fmt.Errorf("%w: board is not set up for play", ErrIllegalMove)
	default:
		return fmt.Errorf("%w: %s by %s", ErrGameOver, b.state, b.reason)
	}
	if !mv.From.Valid() || !mv.To.Valid() {
		return fmt.Errorf("%w: cell off the board", ErrInvalidMove)
	}

	from, to := maskCell[mv.From], maskCell[mv.To]
	p := b.pieceSet(b.turn).PieceAt(from)
	if p == PieceUnknown {
		return fmt.Errorf("%w: %s: no %s piece on %s", ErrIllegalMove, mv, b.turn, mv.From)
	}
	if newLegalMoves(b).destinations(from)&to == 0 {
		return fmt.Errorf("%w: %s: %s cannot reach %s", ErrIllegalMove, mv, p, mv.To)
	}
	if p == PiecePawn && b.promotionRank(b.turn)&to != 0 {
		if mv.Promote == PieceUnknown {
			return fmt.Errorf("%w: %s", ErrPromotionRequired, mv)
		}
		if !mv.Promote.IsPromoteCandidate() {
			return fmt.Errorf("%w: %s: cannot promote to %s", ErrInvalidPromotion, mv, mv.Promote)
		}
	} else if mv.Promote != PieceUnknown {
		return fmt.Errorf("%w: %s: not a promotion", ErrInvalidPromotion, mv)
	}

	b.apply(p, mv)
	return nil
}

// apply plays an already validated move of piece p. The steps run in a fixed order: the en
// passant capture reads the target before the double-advance bookkeeping replaces it, and the
// castling rook is relocated before the king lands.
func (b *Board) apply(p Piece, mv Move) {
	g := newMoveGen(b, b.turn)
	ally, enemy := g.ally, g.enemy
	from, to := maskCell[mv.From], maskCell[mv.To]
	capture := enemy.All()&to != 0

	// en passant capture
	if p == PiecePawn && to == b.enPassant {
		enemy.Remove(g.backward(to, 1))
		capture = true
	}

	// en passant target and double advance
	b.enPassant = Empty
	if p == PiecePawn && g.forward(from, 2) == to {
		b.enPassant = g.forward(from, 1)
	}
	b.advance &^= from | to

	// castling
	if p == PieceKing {
		if d := castleDirectionFor(b.turn, mv.From, mv.To); d != CastleDirectionUnknown {
			rFrom, rTo := d.RookMove()
			ally.Move(maskCell[rFrom], maskCell[rTo])
			b.castleRights.Revoke(maskCastleRights[d])
		}
	}
	b.castleRights.Revoke(from | to)

	// capture and relocation
	enemy.Remove(to)
	ally.Move(from, to)

	if mv.Promote != PieceUnknown {
		ally.Promote(to, mv.Promote)
	}

	if p == PiecePawn || capture {
		b.halfMoveClock = 0
	} else {
		b.halfMoveClock++
	}
	if b.turn == SideBlack {
		b.fullMoveClock++
	}

	b.turn = b.turn.Opposite()
	b.refresh()
}
