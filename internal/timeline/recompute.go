// Package timeline holds the pure frame-ordering rules of a storyboard:
// moving a frame to a new position, the two-phase renumbering protocol, and
// retiming a frame set onto one contiguous timeline. Nothing here touches
// storage.
package timeline

import "github.com/GIVandez/plot-twister/internal/domain"

// Recompute lays order out back to back starting at 0. Position i gets
// durations[i], or 0 when durations is shorter than order.
func Recompute(order []*domain.Frame, durations []int) {
	cursor := 0
	for i, f := range order {
		d := 0
		if i < len(durations) {
			d = durations[i]
		}
		if d < 0 {
			d = 0
		}
		f.StartTime = cursor
		f.EndTime = cursor + d
		cursor = f.EndTime
	}
	anchorFirstFrame(order)
}

// anchorFirstFrame pins the timeline origin: the first frame always starts
// at 0, whatever durations were supplied.
func anchorFirstFrame(order []*domain.Frame) {
	if len(order) == 0 {
		return
	}
	first := order[0]
	if first.StartTime != 0 {
		first.EndTime -= first.StartTime
		first.StartTime = 0
	}
}

// Retime captures durations from oldOrder/newOrder with policy and then
// recomputes newOrder.
func Retime(policy DurationPolicy, oldOrder, newOrder []*domain.Frame) {
	durations := policy.Durations(oldOrder, newOrder)
	Recompute(newOrder, durations)
}

// TotalLength returns the end time of the last frame in order.
func TotalLength(order []*domain.Frame) int {
	if len(order) == 0 {
		return 0
	}
	return order[len(order)-1].EndTime
}
