package dragctl

// Gate limits pointer processing to at most one evaluation per animation
// frame. The shell resets it on every tick; tests drive it by hand.
type Gate interface {
	// TryAcquire returns true once per frame.
	TryAcquire() bool
	// Reset opens the gate for the next frame.
	Reset()
}

type frameGate struct {
	used bool
}

// NewFrameGate returns a gate that admits one acquisition between resets.
func NewFrameGate() Gate {
	return &frameGate{}
}

func (g *frameGate) TryAcquire() bool {
	if g.used {
		return false
	}
	g.used = true
	return true
}

func (g *frameGate) Reset() {
	g.used = false
}

// openGate always admits; used when replaying the last pointer position
// after an attach or detach confirmation.
type openGate struct{}

func (openGate) TryAcquire() bool { return true }
func (openGate) Reset()           {}
