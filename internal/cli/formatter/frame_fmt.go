package formatter

import (
	"strconv"
	"strings"

	"github.com/GIVandez/plot-twister/internal/domain"
)

const (
	frameDescriptionWidth = 40
	timelineWidth         = 60
)

// FormatFrameList renders the storyboard in frame order. pageNumbers maps
// page IDs to their script numbers for the PAGE column.
func FormatFrameList(frames []*domain.Frame, pageNumbers map[string]int) string {
	rows := make([][]string, 0, len(frames))
	for _, f := range frames {
		page := Dim("--")
		if f.IsConnected() {
			if n, ok := pageNumbers[*f.ConnectedPage]; ok {
				page = strconv.Itoa(n)
			} else {
				page = TruncID(*f.ConnectedPage)
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(f.Number),
			TruncID(f.ID),
			Timecode(f.StartTime),
			Timecode(f.EndTime),
			Timecode(f.Duration()),
			page,
			Truncate(f.Description, frameDescriptionWidth),
		})
	}
	t := Table{
		Headers:    []string{"#", "ID", "START", "END", "LEN", "PAGE", "DESCRIPTION"},
		Rows:       rows,
		RightAlign: map[int]bool{0: true, 2: true, 3: true, 4: true},
	}
	return Header("Storyboard") + "\n" + t.Render()
}

// TimelineBar draws the frames as consecutive blocks whose widths are
// proportional to their durations. Every frame with a positive duration gets
// at least one cell.
func TimelineBar(frames []*domain.Frame) string {
	total := 0
	for _, f := range frames {
		total += f.Duration()
	}
	if total == 0 {
		return Dim("(empty timeline)")
	}

	var b strings.Builder
	for i, f := range frames {
		d := f.Duration()
		if d == 0 {
			continue
		}
		cells := max(d*timelineWidth/total, 1)
		style := shotPalette[i%len(shotPalette)]
		b.WriteString(style.Render(strings.Repeat("█", cells)))
	}
	b.WriteString(" " + Dim(Timecode(total)))
	return b.String()
}
