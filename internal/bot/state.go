package bot

// State is a step of a single /photos invocation.
type State int

const (
	StateReceived State = iota
	StateStaged
	StateAnalyzed
	StateRendered
	StateDelivered
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReceived:
		return "received"
	case StateStaged:
		return "staged"
	case StateAnalyzed:
		return "analyzed"
	case StateRendered:
		return "rendered"
	case StateDelivered:
		return "delivered"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (s State) Terminal() bool {
	return s == StateDelivered || s == StateFailed
}
