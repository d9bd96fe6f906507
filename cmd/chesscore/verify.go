package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/daystram/chesscore/bench"
)

func verify(depth int, fen string) error {
	log.Printf("============ verify(%d)\n", depth)
	mismatches, err := bench.Verify(fen, depth)
	if err != nil {
		return err
	}
	if len(mismatches) == 0 {
		log.Println("no mismatch")
		return nil
	}
	for _, mm := range mismatches {
		log.Println(mm)
	}

	path, at, err := bench.Locate(fen, depth)
	if err != nil {
		return err
	}
	return fmt.Errorf("%d mismatching moves, first divergence after [%s] at %s", len(mismatches), strings.Join(path, " "), at)
}
