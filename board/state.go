package board

type State uint8

const (
	// StateUnknown is when the board has not been set up for play, e.g. a king is missing.
	StateUnknown State = iota

	// StateRunning is when the game is in progress.
	StateRunning

	// StateWhiteWon is when Black has been checkmated.
	StateWhiteWon

	// StateBlackWon is when White has been checkmated.
	StateBlackWon

	// StateDraw is when the game ended without a winner.
	StateDraw
)

func (s State) IsRunning() bool {
	return s == StateRunning
}

func (s State) IsTerminal() bool {
	switch s {
	case StateWhiteWon, StateBlackWon, StateDraw:
		return true
	default:
		return false
	}
}

// Winner returns the winning side, or SideUnknown.
func (s State) Winner() Side {
	switch s {
	case StateWhiteWon:
		return SideWhite
	case StateBlackWon:
		return SideBlack
	default:
		return SideUnknown
	}
}

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "StateUnknown"
	case StateRunning:
		return "StateRunning"
	case StateWhiteWon:
		return "StateWhiteWon"
	case StateBlackWon:
		return "StateBlackWon"
	case StateDraw:
		return "StateDraw"
	default:
		return ""
	}
}

// Reason explains a terminal State.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonCheckmate
	ReasonStalemate
	ReasonFiftyMoveRule
	ReasonInsufficientMaterial
)

func (r Reason) String() string {
	switch r {
	case ReasonCheckmate:
		return "checkmate"
	case ReasonStalemate:
		return "stalemate"
	case ReasonFiftyMoveRule:
		return "fifty-move rule"
	case ReasonInsufficientMaterial:
		return "insufficient material"
	default:
		return ""
	}
}
