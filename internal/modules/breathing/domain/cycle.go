package domain

// CycleLength is the number of one-second steps in a breath: 5 in, 3 held, 8 out.
const CycleLength = 16

type Phase int

const (
	Inhale Phase = iota
	Hold
	Exhale
)

func (p Phase) String() string {
	switch p {
	case Inhale:
		return "inhale"
	case Hold:
		return "hold"
	case Exhale:
		return "exhale"
	default:
		return "unknown"
	}
}

// Label is the instruction shown to the user.
func (p Phase) Label() string {
	switch p {
	case Hold:
		return "Hold your breath..."
	case Exhale:
		return "Breathe out slowly..."
	default:
		return "Breathe in deeply..."
	}
}

// PhaseAt maps a counter value in [0,16) to its phase.
func PhaseAt(counter int) Phase {
	switch {
	case counter <= 4:
		return Inhale
	case counter <= 7:
		return Hold
	default:
		return Exhale
	}
}

// CountdownAt is the number displayed for counter.
func CountdownAt(counter int) int {
	switch PhaseAt(counter) {
	case Inhale:
		return counter + 1
	case Hold:
		return counter - 3
	default:
		return CycleLength - counter
	}
}

type Step struct {
	Counter   int
	Phase     Phase
	Countdown int
	Label     string
}

// Cycle is the breathing counter. The zero value starts a fresh inhale.
type Cycle struct {
	counter int
}

func (c *Cycle) Tick() Step {
	c.counter = (c.counter + 1) % CycleLength
	return c.Step()
}

func (c *Cycle) Reset() {
	c.counter = 0
}

func (c Cycle) Counter() int { return c.counter }

func (c Cycle) Phase() Phase { return PhaseAt(c.counter) }

func (c Cycle) Step() Step {
	phase := PhaseAt(c.counter)
	return Step{Counter: c.counter, Phase: phase, Countdown: CountdownAt(c.counter), Label: phase.Label()}
}
