package formatter

import (
	"strconv"
	"strings"

	"github.com/GIVandez/plot-twister/internal/domain"
)

const pageExcerptWidth = 48

// FormatPageList renders script pages with the first line of their text.
func FormatPageList(pages []*domain.Page) string {
	rows := make([][]string, 0, len(pages))
	for _, p := range pages {
		first, _, _ := strings.Cut(strings.TrimSpace(p.Text), "\n")
		excerpt := Truncate(first, pageExcerptWidth)
		if excerpt == "" {
			excerpt = Dim("(empty)")
		}
		rows = append(rows, []string{strconv.Itoa(p.Number), TruncID(p.ID), excerpt})
	}
	t := Table{
		Headers:    []string{"#", "ID", "TEXT"},
		Rows:       rows,
		RightAlign: map[int]bool{0: true},
	}
	return Header("Script") + "\n" + t.Render()
}
