package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"

	"github.com/daystram/chesscore/board"
)

const (
	exitOK = iota
	exitErr
)

var (
	profile = flag.Bool("profile", false, "serve pprof endpoint")

	movegenRun  = flag.Bool("movegen", false, "run movegen mode")
	movegenDraw = flag.Bool("movegen.draw", false, "draw the position after every legal move in movegen mode")

	perftRun      = flag.Bool("perft", false, "run perft mode")
	perftDepth    = flag.Int("perft.depth", 4, "perft depth")
	perftParallel = flag.Bool("perft.parallel", true, "split perft across goroutines at the root")

	verifyRun   = flag.Bool("verify", false, "compare perft divide against a reference move generator")
	verifyDepth = flag.Int("verify.depth", 3, "verify depth")

	stepRun   = flag.Bool("step", false, "run step mode, playing random legal moves")
	stepSeed  = flag.Int64("step.seed", 1, "random seed in step mode")
	stepLimit = flag.Int("step.limit", 5000, "maximum number of plies in step mode")

	draw = flag.Bool("draw", true, "draw boards with colours")
)

func main() {
	flag.Parse()

	if *profile {
		runProfiler()
	}

	err := realMain(flag.Args())
	if err != nil {
		log.Println(err)
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func runProfiler() {
	go func() {
		addr := "localhost:6060"
		log.Printf("starting pprof endpoint: http://%s/debug/pprof\n", addr)
		_ = http.ListenAndServe(addr, nil)
	}()
}

func realMain(args []string) error {
	fen := board.DefaultStartingPositionFEN
	if len(args) > 0 {
		fen = strings.Join(args, " ")
	}
	switch {
	case *movegenRun:
		return movegen(fen, *movegenDraw)
	case *perftRun:
		return perft(*perftDepth, fen, *perftParallel)
	case *verifyRun:
		return verify(*verifyDepth, fen)
	case *stepRun:
		return step(fen, *stepSeed, *stepLimit)
	}

	return runUCI()
}
