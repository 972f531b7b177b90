package domain

import (
	"fmt"
	"time"
)

// Frame is one timed storyboard image. Number is the 1-based position of
// the frame inside its project; StartTime and EndTime place it on the
// project's shared timeline.
type Frame struct {
	ID            string
	ProjectID     string
	Number        int
	StartTime     int
	EndTime       int
	Description   string
	PicPath       string
	ConnectedPage *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Duration is the length of the frame's slot, never negative.
func (f *Frame) Duration() int {
	if f.EndTime < f.StartTime {
		return 0
	}
	return f.EndTime - f.StartTime
}

// ValidateTimes checks the timing constraints enforced by the frames table.
func (f *Frame) ValidateTimes() error {
	if f.StartTime < 0 {
		return NewValidationError(fmt.Sprintf("start time must be >= 0, got %d", f.StartTime))
	}
	if f.EndTime < f.StartTime {
		return NewValidationError(fmt.Sprintf("end time %d is before start time %d", f.EndTime, f.StartTime))
	}
	return nil
}

// IsConnected reports whether the frame is linked to a script page.
func (f *Frame) IsConnected() bool {
	return f.ConnectedPage != nil && *f.ConnectedPage != ""
}

// NumberAssignment pairs a frame with the number it should hold after a
// batch renumbering write.
type NumberAssignment struct {
	FrameID string
	Number  int
}
