package timeline

import (
	"fmt"

	"github.com/GIVandez/plot-twister/internal/domain"
)

// IndexOf returns the position of the frame with the given ID, or -1.
func IndexOf(order []*domain.Frame, frameID string) int {
	for i, f := range order {
		if f.ID == frameID {
			return i
		}
	}
	return -1
}

// Move returns a new order with frameID taken out of order and reinserted
// at newNumber (1-based). newNumber is clamped: values below 1 mean first,
// values past the end mean last. The input slice is not modified.
func Move(order []*domain.Frame, frameID string, newNumber int) ([]*domain.Frame, error) {
	from := IndexOf(order, frameID)
	if from < 0 {
		return nil, fmt.Errorf("frame %s: %w", frameID, domain.ErrNotFound)
	}

	moved := order[from]
	rest := make([]*domain.Frame, 0, len(order))
	rest = append(rest, order[:from]...)
	rest = append(rest, order[from+1:]...)

	to := clamp(newNumber-1, 0, len(rest))

	out := make([]*domain.Frame, 0, len(order))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	return out, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
