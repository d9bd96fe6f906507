package bench

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/chesscore/board"
)

// Stats counts the leaf nodes of a perft run and what the moves leading to them did.
type Stats struct {
	Nodes uint64
	Cap   uint64
	Enp   uint64
	Cas   uint64
	Pro   uint64
	Chk   uint64
}

func (s *Stats) String() string {
	return message.NewPrinter(language.English).
		Sprintf("nodes=%d cap=%d enp=%d cas=%d pro=%d chk=%d", s.Nodes, s.Cap, s.Enp, s.Cas, s.Pro, s.Chk)
}

func Perft(depth int, fen string, parallel, verbose bool, out chan string) error {
	b, err := board.NewBoard(
		board.WithFEN(fen),
	)
	if err != nil {
		return err
	}

	var run perftFunc
	if parallel {
		run = runPerftParallel
	} else {
		run = runPerft
	}

	var stats Stats
	start := time.Now()
	run(b, depth, true, verbose, out, &stats)
	end := time.Now()

	out <- message.NewPrinter(language.English).
		Sprintf("d=%d %s rate=%dn/s (%.3fs elapsed)",
			depth, stats.String(), int(float64(stats.Nodes)/end.Sub(start).Seconds()), end.Sub(start).Seconds())

	return nil
}

// Count runs perft on b without reporting progress.
func Count(b *board.Board, depth int, parallel bool) Stats {
	var stats Stats
	if parallel {
		runPerftParallel(b, depth, true, false, nil, &stats)
	} else {
		runPerft(b, depth, true, false, nil, &stats)
	}
	return stats
}

type perftFunc func(b *board.Board, d int, root, verbose bool, out chan string, stats *Stats) uint64

func runPerft(b *board.Board, d int, root, verbose bool, out chan string, stats *Stats) uint64 {
	if d == 0 {
		stats.Nodes++
		return 1
	}

	var sum uint64
	for _, mv := range b.GenerateMoves() {
		flags := b.Flags(mv)
		bb := b.Clone()
		if err := bb.Apply(mv); err != nil {
			panic(fmt.Sprintf("generated move %s rejected: %v", mv, err))
		}
		if d == 1 {
			stats.countLeaf(flags, bb.IsCheck(), false)
		}
		child := runPerft(bb, d-1, false, verbose, out, stats)
		if verbose && root {
			out <- fmt.Sprintf("%s: %d", mv.UCI(), child)
		}
		sum += child
	}
	return sum
}

func runPerftParallel(b *board.Board, d int, root, verbose bool, out chan string, stats *Stats) uint64 {
	if d == 0 {
		atomic.AddUint64(&stats.Nodes, 1)
		return 1
	}

	var sum uint64
	var wg sync.WaitGroup
	for _, mv := range b.GenerateMoves() {
		mv := mv
		wg.Add(1)
		go func() {
			defer wg.Done()
			flags := b.Flags(mv)
			bb := b.Clone()
			if err := bb.Apply(mv); err != nil {
				panic(fmt.Sprintf("generated move %s rejected: %v", mv, err))
			}
			if d == 1 {
				stats.countLeaf(flags, bb.IsCheck(), true)
			}
			// Only the root fans out; each subtree runs serially into its own counters.
			var local Stats
			child := runPerft(bb, d-1, false, false, nil, &local)
			stats.merge(&local)
			if verbose && root {
				out <- fmt.Sprintf("%s: %d", mv.UCI(), child)
			}
			atomic.AddUint64(&sum, child)
		}()
	}
	wg.Wait()
	return sum
}

func (s *Stats) countLeaf(flags board.MoveFlag, check, concurrent bool) {
	inc := func(c *uint64) { *c++ }
	if concurrent {
		inc = func(c *uint64) { atomic.AddUint64(c, 1) }
	}
	if flags.Has(board.MoveFlagCapture) {
		inc(&s.Cap)
	}
	if flags.Has(board.MoveFlagEnPassant) {
		inc(&s.Enp)
	}
	if flags.Has(board.MoveFlagCastle) {
		inc(&s.Cas)
	}
	if flags.Has(board.MoveFlagPromote) {
		inc(&s.Pro)
	}
	if check {
		inc(&s.Chk)
	}
}

func (s *Stats) merge(o *Stats) {
	atomic.AddUint64(&s.Nodes, o.Nodes)
	atomic.AddUint64(&s.Cap, o.Cap)
	atomic.AddUint64(&s.Enp, o.Enp)
	atomic.AddUint64(&s.Cas, o.Cas)
	atomic.AddUint64(&s.Pro, o.Pro)
	atomic.AddUint64(&s.Chk, o.Chk)
}
