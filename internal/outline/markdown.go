package outline

import (
	"fmt"
	"strings"
)

var levelDepth = map[Level]int{
	LevelH1: 2,
	LevelH2: 3,
	LevelH3: 4,
}

// Markdown renders the outline as a Markdown document: the title becomes
// the top-level heading and entries nest one level deeper than their
// outline level, annotated with their page number.
func Markdown(title string, entries []Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)
	for _, e := range entries {
		depth, ok := levelDepth[e.Level]
		if !ok {
			depth = 4
		}
		fmt.Fprintf(&b, "\n%s %s (p. %d)\n", strings.Repeat("#", depth), e.Text, e.Page)
	}
	return b.String()
}
