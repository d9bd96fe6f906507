package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/daystram/chesscore/board"
)

func step(fen string, seed int64, limit int) error {
	log.Println("============ step")
	var (
		timesGenerateMoves []time.Duration
		timesApply         []time.Duration
	)
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	r := rand.New(rand.NewSource(seed))
	for ply := 0; ply < limit && b.State().IsRunning(); ply++ {
		t1 := time.Now()
		mvs := b.GenerateMoves()
		t2 := time.Now()
		timesGenerateMoves = append(timesGenerateMoves, t2.Sub(t1))
		if len(mvs) == 0 {
			return fmt.Errorf("unexpected move exhaustion: state=%s", b.State())
		}
		mv := mvs[r.Intn(len(mvs))]
		turn := b.Turn()

		t1 = time.Now()
		if err := b.Apply(mv); err != nil {
			return err
		}
		t2 = time.Now()
		timesApply = append(timesApply, t2.Sub(t1))

		fmt.Printf("\n===== [#%d] %s: %s\n", b.FullMoveClock(), turn, mv)
		fmt.Println(render(b, board.Cell(mv.From)|board.Cell(mv.To)))
		fmt.Println(b.FEN())
		fmt.Println(b.DebugString())
		if b.IsCheck() {
			<-time.After(100 * time.Millisecond)
		}
		<-time.After(10 * time.Millisecond)
	}

	avg := func(ds []time.Duration) time.Duration {
		if len(ds) == 0 {
			return 0
		}
		var s time.Duration
		for _, d := range ds {
			s += d
		}
		return s / time.Duration(len(ds))
	}

	fmt.Println()
	fmt.Println(b.State(), b.Reason())
	fmt.Println("genmv:", avg(timesGenerateMoves))
	fmt.Println("apply:", avg(timesApply))
	return nil
}
