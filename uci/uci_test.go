package uci

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, script ...string) string {
	t.Helper()
	out := &bytes.Buffer{}
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	require.NoError(t, NewInterface(WithIO(in, out)).Run())
	return out.String()
}

func TestHandshake(t *testing.T) {
	t.Parallel()
	got := run(t, "uci", "isready", "quit")
	assert.Contains(t, got, "id name "+EngineName)
	assert.Contains(t, got, "option name ParallelPerft type check default true")
	assert.Contains(t, got, "uciok\n")
	assert.Contains(t, got, "readyok\n")
}

func TestPositionMoves(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		command string
		wantFEN string
	}{
		{
			name:    "startpos",
			command: "position startpos",
			wantFEN: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		},
		{
			name:    "startpos with moves",
			command: "position startpos moves e2e4 c7c5",
			wantFEN: "rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
		},
		{
			name:    "fen with moves",
			command: "position fen 4k3/P7/8/8/8/8/8/4K3 w - - 0 1 moves a7a8q",
			wantFEN: "Q3k3/8/8/8/8/8/8/4K3 b - - 0 1",
		},
		{
			name:    "illegal move keeps previous position",
			command: "position startpos moves e2e5",
			wantFEN: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		},
		{
			name:    "fen without fields keeps previous position",
			command: "position fen moves e2e4",
			wantFEN: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := run(t, tt.command, "d", "quit")
			assert.Contains(t, got, "fen: "+tt.wantFEN+"\n")
		})
	}
}

func TestDebugOption(t *testing.T) {
	t.Parallel()
	got := run(t, "setoption name Debug value true", "position startpos moves e2e5", "quit")
	assert.Contains(t, got, "info string illegal move")

	got = run(t, "setoption name Debug value true", "position fen moves e2e4", "quit")
	assert.Contains(t, got, "info string position fen: missing fen")
}

func TestGoPerft(t *testing.T) {
	t.Parallel()
	got := run(t, "setoption name ParallelPerft value false", "position startpos", "go perft 2", "quit")
	assert.Contains(t, got, "a2a3: 20\n")
	assert.Contains(t, got, "d=2 nodes=400 cap=0 enp=0 cas=0 pro=0 chk=0")
}

func TestGoDivide(t *testing.T) {
	t.Parallel()
	got := run(t, "position startpos", "go divide 1", "quit")
	assert.Contains(t, got, "e2e4: 1\n")
	assert.Contains(t, got, "moves=20 nodes=20")
}

func TestGoWithoutSearch(t *testing.T) {
	t.Parallel()
	got := run(t, "position startpos", "go", "quit")
	assert.Equal(t, "bestmove 0000\n", got)
}
