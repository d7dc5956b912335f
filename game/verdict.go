package game

// Verdict is the typed outcome of a move legality check. A rejected move
// never mutates state and never raises; callers branch on the verdict.
type Verdict int

const (
	VerdictOK Verdict = iota
	VerdictGameOver      // move attempted on a terminal state
	VerdictWrongTurn     // move.Player is not the player to move
	VerdictPathShape     // path not straight, not contiguous, or bad length
	VerdictOutOfBounds   // a path cell is off the board
	VerdictLayerConflict // a path cell violates the two-layer occupancy rules
	VerdictInventory     // no 4- or 5-block left for the requested size
)

func (v Verdict) OK() bool { return v == VerdictOK }

func (v Verdict) String() string {
	switch v {
	case VerdictOK:
		return "ok"
	case VerdictGameOver:
		return "game is already over"
	case VerdictWrongTurn:
		return "not this player's turn"
	case VerdictPathShape:
		return "invalid path: not straight or not continuous"
	case VerdictOutOfBounds:
		return "position out of bounds"
	case VerdictLayerConflict:
		return "placement conflicts with occupied layers"
	case VerdictInventory:
		return "no blocks of this size available"
	default:
		return "unknown verdict"
	}
}
