package ansi_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mssjo/katelistings-go/ansi"
	"github.com/mssjo/katelistings-go/highlighting"
)

func TestEmitterOpenSpanWritesTrueColourEscapes(t *testing.T) {
	t.Parallel()

	trueVal := true

	style := &highlighting.Style{
		Name:     "Keyword",
		FGColour: "FF0000",
		BGColour: "FFFFFF",
		Bold:     &trueVal,
	}

	var buf strings.Builder

	e := ansi.NewEmitter(&buf)
	e.OpenSpan(style)
	e.WriteRune('i')
	e.WriteRune('f')
	e.CloseSpan()

	out := buf.String()
	assert.Contains(t, out, "\033[38;2;255;0;0m")
	assert.Contains(t, out, "\033[48;2;255;255;255m")
	assert.Contains(t, out, "\033[1m")
	assert.Contains(t, out, "if")
	assert.Contains(t, out, "\033[0m")
}

func TestEmitterOpenSpanIsNoopWhenSameStyleAlreadyOpen(t *testing.T) {
	t.Parallel()

	style := &highlighting.Style{Name: "Keyword", FGColour: "FF0000", BGColour: "FFFFFF"}

	var buf strings.Builder

	e := ansi.NewEmitter(&buf)
	e.OpenSpan(style)
	before := buf.Len()
	e.OpenSpan(style)

	assert.Equal(t, before, buf.Len())
}

func TestEmitterOpenSpanClosesPreviousDifferentStyle(t *testing.T) {
	t.Parallel()

	a := &highlighting.Style{Name: "A", FGColour: "FF0000", BGColour: "FFFFFF"}
	b := &highlighting.Style{Name: "B", FGColour: "00FF00", BGColour: "FFFFFF"}

	var buf strings.Builder

	e := ansi.NewEmitter(&buf)
	e.OpenSpan(a)
	e.WriteRune('x')
	e.OpenSpan(b)
	e.WriteRune('y')
	e.CloseSpan()

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "\033[0m"))
}

func TestEmitterNewlineWritesLineBreak(t *testing.T) {
	t.Parallel()

	style := &highlighting.Style{Name: "A", FGColour: "FF0000", BGColour: "FFFFFF"}

	var buf strings.Builder

	e := ansi.NewEmitter(&buf)
	e.OpenSpan(style)
	e.WriteRune('x')
	e.CloseSpan()
	e.Newline()

	out := buf.String()
	assert.Contains(t, out, "\033[0m\n")
}
