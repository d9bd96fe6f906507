package bench

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/daystram/chesscore/board"
)

// Divide returns the perft node count below each legal move of b, keyed by the move in UCI notation.
func Divide(b *board.Board, depth int) map[string]uint64 {
	div := make(map[string]uint64)
	if depth < 1 {
		return div
	}
	for _, mv := range b.GenerateMoves() {
		bb := b.Clone()
		if err := bb.Apply(mv); err != nil {
			panic(fmt.Sprintf("generated move %s rejected: %v", mv, err))
		}
		div[mv.UCI()] = Count(bb, depth-1, false).Nodes
	}
	return div
}

// FormatDivide renders a divide result one move per line, sorted by move.
func FormatDivide(div map[string]uint64) string {
	keys := maps.Keys(div)
	slices.Sort(keys)
	var total uint64
	builder := strings.Builder{}
	for _, k := range keys {
		total += div[k]
		_, _ = builder.WriteString(fmt.Sprintf("%s: %d\n", k, div[k]))
	}
	_, _ = builder.WriteString(fmt.Sprintf("\nmoves=%d nodes=%d", len(keys), total))
	return builder.String()
}

// Mismatch is a root move whose node count differs from the reference generator. A move one side
// does not generate at all has a zero count on that side.
type Mismatch struct {
	Move      string
	Got, Want uint64
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: got=%d want=%d", m.Move, m.Got, m.Want)
}

// Verify compares the divide of fen against github.com/dylhunn/dragontoothmg. Mismatches are
// ordered by the size of the difference, largest first.
func Verify(fen string, depth int) ([]Mismatch, error) {
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return nil, err
	}
	got := Divide(b, depth)

	ref := dragontoothmg.ParseFen(fen)
	want := referenceDivide(&ref, depth)

	moves := maps.Keys(got)
	for mv := range want {
		if _, ok := got[mv]; !ok {
			moves = append(moves, mv)
		}
	}
	slices.Sort(moves)

	var mismatches []Mismatch
	for _, mv := range moves {
		if got[mv] != want[mv] {
			mismatches = append(mismatches, Mismatch{Move: mv, Got: got[mv], Want: want[mv]})
		}
	}
	slices.SortStableFunc(mismatches, func(a, b Mismatch) bool {
		return absDiff(a.Got, a.Want) > absDiff(b.Got, b.Want)
	})
	return mismatches, nil
}

// Locate descends through the first mismatching move at every depth and returns the moves that
// lead to the shallowest position where both generators disagree on the legal moves themselves.
// It returns no moves when fen agrees with the reference at depth.
func Locate(fen string, depth int) ([]string, string, error) {
	var path []string
	for ; depth > 0; depth-- {
		mismatches, err := Verify(fen, depth)
		if err != nil {
			return nil, "", err
		}
		if len(mismatches) == 0 {
			return nil, "", nil
		}
		mm := mismatches[0]
		if mm.Got == 0 || mm.Want == 0 || depth == 1 {
			return append(path, mm.Move), fen, nil
		}

		b, err := board.NewBoard(board.WithFEN(fen))
		if err != nil {
			return nil, "", err
		}
		mv, err := board.ParseMove(mm.Move)
		if err != nil {
			return nil, "", err
		}
		if err := b.Apply(mv); err != nil {
			return nil, "", err
		}
		path = append(path, mm.Move)
		fen = b.FEN()
	}
	return nil, "", nil
}

func referenceDivide(b *dragontoothmg.Board, depth int) map[string]uint64 {
	div := make(map[string]uint64)
	if depth < 1 {
		return div
	}
	for _, mv := range b.GenerateLegalMoves() {
		unapply := b.Apply(mv)
		div[strings.ToLower(mv.String())] = referencePerft(b, depth-1)
		unapply()
	}
	return div
}

func referencePerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, mv := range moves {
		unapply := b.Apply(mv)
		nodes += referencePerft(b, depth-1)
		unapply()
	}
	return nodes
}

func absDiff[T constraints.Integer](a, b T) T {
	if a > b {
		return a - b
	}
	return b - a
}
