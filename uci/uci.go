package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/daystram/chesscore/bench"
	"github.com/daystram/chesscore/board"
)

var (
	EngineName   = "Chesscore"
	EngineAuthor = "Danny August Ramaputra"

	defaultOptions = options{
		debug:         false,
		parallelPerft: true,
	}
)

type options struct {
	debug         bool
	parallelPerft bool
}

// Interface speaks a subset of UCI over a line protocol. It has no search: "go" only supports
// perft and divide, and any other "go" answers with the null move.
type Interface struct {
	board   *board.Board
	options options

	in  io.Reader
	out io.Writer
}

type InterfaceOption func(*Interface)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) InterfaceOption {
	return func(i *Interface) {
		i.in, i.out = in, out
	}
}

func NewInterface(opts ...InterfaceOption) *Interface {
	i := &Interface{
		options: defaultOptions,
		in:      os.Stdin,
		out:     os.Stdout,
	}
	for _, f := range opts {
		f(i)
	}
	return i
}

func (i *Interface) Run() error {
	ctx := context.Background()
	i.reset(ctx)

	scanner := bufio.NewScanner(i.in)
	for scanner.Scan() {
		cmd := strings.TrimSpace(scanner.Text())

		switch args := strings.Fields(cmd); {
		case len(args) == 0:
		case args[0] == "uci":
			i.commandUCI(ctx)
		case args[0] == "ucinewgame":
			i.reset(ctx)
		case args[0] == "isready":
			i.commandReady(ctx)
		case args[0] == "setoption":
			i.commandSetOption(ctx, args[1:])
		case args[0] == "position":
			i.commandPosition(ctx, args[1:])
		case args[0] == "d":
			i.commandDraw(ctx)
		case args[0] == "go":
			i.commandGo(ctx, args[1:])
		case args[0] == "quit":
			return nil
		default:
			i.debugf("unknown command: %s", cmd)
		}
	}
	return scanner.Err()
}

func (i *Interface) commandUCI(_ context.Context) {
	i.println(fmt.Sprintf("id name %s", EngineName))
	i.println(fmt.Sprintf("id author %s", EngineAuthor))
	i.println(fmt.Sprintf("option name Debug type check default %v", defaultOptions.debug))
	i.println(fmt.Sprintf("option name ParallelPerft type check default %v", defaultOptions.parallelPerft))
	i.println("uciok")
}

func (i *Interface) commandReady(_ context.Context) {
	if i.board != nil {
		i.println("readyok")
	}
}

func (i *Interface) commandSetOption(_ context.Context, args []string) {
	if len(args) < 4 || args[0] != "name" || args[2] != "value" {
		return
	}
	switch name, valueStr := strings.ToLower(args[1]), args[3]; name {
	case "debug":
		value, err := strconv.ParseBool(valueStr)
		if err != nil {
			return
		}
		i.options.debug = value
	case "parallelperft":
		value, err := strconv.ParseBool(valueStr)
		if err != nil {
			return
		}
		i.options.parallelPerft = value
	}
}

func (i *Interface) commandPosition(_ context.Context, args []string) {
	if len(args) == 0 {
		return
	}

	var fen string
	var moves []string
	switch args[0] {
	case "fen":
		end := len(args)
		for idx, arg := range args {
			if arg == "moves" {
				end = idx
				moves = args[idx+1:]
				break
			}
		}
		fen = strings.Join(args[1:end], " ")
		if fen == "" {
			i.debugf("position fen: missing fen")
			return
		}
	case "startpos":
		fen = board.DefaultStartingPositionFEN
		if len(args) > 2 && args[1] == "moves" {
			moves = args[2:]
		}
	default:
		return
	}

	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		i.debugf("%v", err)
		return
	}
	for _, m := range moves {
		mv, err := board.ParseMove(m)
		if err == nil {
			err = b.Apply(mv)
		}
		if err != nil {
			i.debugf("%v", err)
			return
		}
	}
	i.board = b
}

func (i *Interface) commandDraw(_ context.Context) {
	i.println(i.board.Draw(board.Empty))
	i.println(fmt.Sprintf("fen: %s", i.board.FEN()))
	i.println(fmt.Sprintf("state: %s %s", i.board.State(), i.board.Reason()))
}

func (i *Interface) commandGo(_ context.Context, args []string) {
	if len(args) != 2 {
		i.println("bestmove 0000")
		return
	}
	depth, err := strconv.Atoi(args[1])
	if err != nil || depth < 0 {
		return
	}

	switch mode := args[0]; mode {
	case "perft":
		out := make(chan string, 64)
		done := make(chan struct{})
		go func() {
			defer close(done)
			for s := range out {
				i.println(s)
			}
		}()

		if err := bench.Perft(depth, i.board.FEN(), i.options.parallelPerft, true, out); err != nil {
			i.debugf("%v", err)
		}
		close(out)
		<-done
	case "divide":
		i.println(bench.FormatDivide(bench.Divide(i.board, depth)))
	default:
		i.println("bestmove 0000")
	}
}

func (i *Interface) reset(ctx context.Context) {
	i.commandPosition(ctx, []string{"startpos"})
}

func (i *Interface) debugf(format string, a ...any) {
	if i.options.debug {
		i.println("info string " + fmt.Sprintf(format, a...))
	}
}

func (i *Interface) println(a ...any) {
	fmt.Fprintln(i.out, a...)
}
