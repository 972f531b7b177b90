package timeline

import (
	"fmt"

	"github.com/GIVandez/plot-twister/internal/domain"
)

// Policy names accepted by PolicyByName and the reorder_policy/delete_policy
// config keys.
const (
	PolicySlot = "slot"
	PolicyOwn  = "own"
)

// DurationPolicy decides which duration each position of the new order gets
// when a frame set is retimed. Durations must be called before Recompute
// mutates the frames, because both orders share the same *domain.Frame values.
type DurationPolicy interface {
	Name() string
	Durations(oldOrder, newOrder []*domain.Frame) []int
}

// SlotDurationPolicy keeps the timeline's slot lengths in place: position i
// of the new order inherits the duration that position i had before the
// change, whichever frame now occupies it.
type SlotDurationPolicy struct{}

func (SlotDurationPolicy) Name() string { return PolicySlot }

func (SlotDurationPolicy) Durations(oldOrder, _ []*domain.Frame) []int {
	return SlotDurations(oldOrder)
}

// OwnDurationPolicy keeps each frame's own length: position i of the new
// order gets the duration of the frame placed there.
type OwnDurationPolicy struct{}

func (OwnDurationPolicy) Name() string { return PolicyOwn }

func (OwnDurationPolicy) Durations(_, newOrder []*domain.Frame) []int {
	return SlotDurations(newOrder)
}

// SlotDurations returns max(0, end-start) for each frame, by position.
func SlotDurations(frames []*domain.Frame) []int {
	out := make([]int, len(frames))
	for i, f := range frames {
		out[i] = f.Duration()
	}
	return out
}

// PolicyByName resolves a configured policy name.
func PolicyByName(name string) (DurationPolicy, error) {
	switch name {
	case PolicySlot:
		return SlotDurationPolicy{}, nil
	case PolicyOwn:
		return OwnDurationPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown duration policy %q (want %q or %q)", name, PolicySlot, PolicyOwn)
	}
}
