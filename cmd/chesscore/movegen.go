package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/daystram/chesscore/board"
)

func movegen(fen string, drawAll bool) error {
	log.Println("============ movegen")
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	fmt.Println("to move:", b.Turn())
	fmt.Println(render(b, b.Danger()))
	fmt.Println(b.State(), b.Reason())
	dumpMoves(b)

	if drawAll {
		for _, mv := range b.GenerateMoves() {
			bb := b.Clone()
			if err := bb.Apply(mv); err != nil {
				return err
			}
			fmt.Println(mv)
			fmt.Println(render(bb, board.Cell(mv.From)|board.Cell(mv.To)))
			fmt.Println(bb.FEN())
		}
	}
	return nil
}

func dumpMoves(b *board.Board) {
	mvs := b.GenerateMoves()
	for i, mv := range mvs {
		_, p := b.PieceAt(mv.From)
		f := b.Flags(mv)
		fmt.Printf("option %*d: [%s] %s %s %s => %s (cap=%v) (enp=%v) (cas=%v) (pro=%s)\n",
			len(strconv.Itoa(len(mvs))), i+1, mv.UCI(), b.Turn(), p, mv.From, mv.To,
			f.Has(board.MoveFlagCapture), f.Has(board.MoveFlagEnPassant), f.Has(board.MoveFlagCastle), mv.Promote)
	}
}

func render(b *board.Board, highlight board.Bitmap) string {
	if *draw {
		return b.Draw(highlight)
	}
	return b.Dump()
}
