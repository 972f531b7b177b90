package timeline

import (
	"fmt"

	"github.com/GIVandez/plot-twister/internal/domain"
)

// Phase is a step of the two-phase renumbering protocol.
type Phase int

const (
	// OldNumbering: frames still carry the numbers they had before the change.
	OldNumbering Phase = iota
	// TemporaryNegative: frame at position i carries -(i+1). Negative numbers
	// never collide with the positive numbers still held by any frame.
	TemporaryNegative
	// FinalPositive: frame at position i carries i+1.
	FinalPositive
)

func (p Phase) String() string {
	switch p {
	case OldNumbering:
		return "old-numbering"
	case TemporaryNegative:
		return "temporary-negative"
	case FinalPositive:
		return "final-positive"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Renumbering walks a new frame order through
// OldNumbering -> TemporaryNegative -> FinalPositive. Each call to Next
// yields the batch of assignments that must be persisted as one write to
// reach the next phase. Frames in the order are updated in memory as the
// phases advance.
type Renumbering struct {
	order []*domain.Frame
	phase Phase
}

// NewRenumbering starts a renumbering of order in the OldNumbering phase.
func NewRenumbering(order []*domain.Frame) *Renumbering {
	return &Renumbering{order: order, phase: OldNumbering}
}

// Phase returns the phase reached by the last Next call.
func (r *Renumbering) Phase() Phase {
	return r.phase
}

// Done reports whether the final numbering has been produced.
func (r *Renumbering) Done() bool {
	return r.phase == FinalPositive
}

// Next advances one phase and returns the assignments for it.
func (r *Renumbering) Next() (Phase, []domain.NumberAssignment, error) {
	var sign int
	switch r.phase {
	case OldNumbering:
		sign = -1
	case TemporaryNegative:
		sign = 1
	default:
		return r.phase, nil, fmt.Errorf("renumbering already in phase %s", r.phase)
	}

	batch := make([]domain.NumberAssignment, len(r.order))
	for i, f := range r.order {
		n := sign * (i + 1)
		f.Number = n
		batch[i] = domain.NumberAssignment{FrameID: f.ID, Number: n}
	}
	r.phase++
	return r.phase, batch, nil
}

// Compact assigns i+1 to the frame at position i in a single pass. It is
// only collision-free when no frame's number grows, which holds after a
// deletion from an order sorted by number; moves go through Renumbering.
func Compact(order []*domain.Frame) []domain.NumberAssignment {
	batch := make([]domain.NumberAssignment, len(order))
	for i, f := range order {
		f.Number = i + 1
		batch[i] = domain.NumberAssignment{FrameID: f.ID, Number: i + 1}
	}
	return batch
}
