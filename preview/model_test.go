package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mssjo/katelistings-go/highlighting"
)

func TestLineEmitterAccumulatesOneEntryPerNewline(t *testing.T) {
	t.Parallel()

	style := &highlighting.Style{Name: "Keyword", FGColour: "FF0000", BGColour: "FFFFFF"}

	e := newLineEmitter()
	e.OpenSpan(style)
	e.WriteRune('h')
	e.WriteRune('i')
	e.CloseSpan()
	e.Newline()
	e.OpenSpan(style)
	e.WriteRune('x')
	e.CloseSpan()

	require.Len(t, e.lines, 2)
	assert.Contains(t, e.lines[0], "hi")
	assert.Contains(t, e.lines[1], "x")
}

func TestModelScrollClampsToLineCount(t *testing.T) {
	t.Parallel()

	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "line"
	}

	m := &Model{lines: lines, width: 80, height: 5}

	m.scroll(-100)
	assert.Equal(t, 0, m.offset)

	m.scroll(100)
	assert.Equal(t, m.maxOffset(), m.offset)
	assert.Equal(t, 6, m.offset) // 10 lines, pageSize 4 (height-1)
}

func TestModelVisibleTextRendersVisibleWindow(t *testing.T) {
	t.Parallel()

	lines := []string{"a", "b", "c", "d", "e"}
	m := &Model{lines: lines, width: 80, height: 3}

	rendered := m.visibleText()

	assert.Equal(t, 2, strings.Count(rendered, "\n"))
	assert.Contains(t, rendered, "a")
	assert.Contains(t, rendered, "b")
	assert.NotContains(t, rendered, "c")
}
