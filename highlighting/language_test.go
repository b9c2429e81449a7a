package highlighting_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mssjo/katelistings-go/highlighting"
	"github.com/mssjo/katelistings-go/stringtest"
)

// selfLoopSwitch returns a switch that pushes c, used to wire up the
// bookkeeping (EndSwitch/EmptySwitch targeting the context itself) every
// scenario needs regardless of what it's actually testing.
func selfLoopSwitch(c *highlighting.Context) highlighting.ContextSwitch {
	return highlighting.ContextSwitch{Push: true, Target: c}
}

func TestHighlightScenario1_NoRulesPlainStyle(t *testing.T) {
	t.Parallel()

	normal := &highlighting.Style{Name: "Normal", FGColour: "000000", BGColour: "FFFFFF"}
	def := &highlighting.Context{Name: "default", Attribute: normal}
	def.EndSwitch = selfLoopSwitch(def)
	def.EmptySwitch = selfLoopSwitch(def)

	lang := &highlighting.Language{
		Name:           "test",
		Styles:         map[string]*highlighting.Style{"Normal": normal},
		Contexts:       map[string]*highlighting.Context{"default": def},
		DefaultContext: def,
	}

	var buf strings.Builder
	require.NoError(t, highlighting.WriteAlltt(&buf, lang, strings.NewReader("abc"), highlighting.ModeInline))

	want := stringtest.JoinLF(
		`\begin{alltt}`,
		`\textcolor[HTML]{000000}{a}\textcolor[HTML]{000000}{b}\textcolor[HTML]{000000}{c}`,
		`\end{alltt}`,
	) + "\n"
	assert.Equal(t, want, buf.String())
}

func TestHighlightScenario2_ContextSwitchOnMatch(t *testing.T) {
	t.Parallel()

	normal := &highlighting.Style{Name: "Normal", FGColour: "000000", BGColour: "FFFFFF"}
	comment := &highlighting.Style{Name: "Comment", FGColour: "808080", BGColour: "FFFFFF"}

	def := &highlighting.Context{Name: "default", Attribute: normal}
	slash := &highlighting.Context{Name: "slash", Attribute: comment}

	def.EndSwitch = selfLoopSwitch(def)
	def.EmptySwitch = selfLoopSwitch(def)
	slash.EndSwitch = selfLoopSwitch(def)
	slash.EmptySwitch = selfLoopSwitch(def)

	enterSlash := highlighting.NewDetectChar(highlighting.RuleConfig{
		Style:  comment,
		Switch: highlighting.ContextSwitch{Push: true, Target: slash},
	}, "/")
	leaveSlash := highlighting.NewDetectChar(highlighting.RuleConfig{
		Switch: highlighting.ContextSwitch{Pops: 1},
	}, "/")

	def.Rules = []highlighting.Rule{enterSlash}
	slash.Rules = []highlighting.Rule{leaveSlash}

	lang := &highlighting.Language{
		Name: "test",
		Styles: map[string]*highlighting.Style{
			"Normal": normal, "Comment": comment,
		},
		Contexts: map[string]*highlighting.Context{
			"default": def, "slash": slash,
		},
		DefaultContext: def,
	}

	var buf strings.Builder
	require.NoError(t, highlighting.WriteAlltt(&buf, lang, strings.NewReader("a//b"), highlighting.ModeInline))

	want := stringtest.JoinLF(
		`\begin{alltt}`,
		`\textcolor[HTML]{000000}{a}`+
			`\textcolor[HTML]{808080}{/}`+
			`\textcolor[HTML]{808080}{/}`+
			`\textcolor[HTML]{000000}{b}`,
		`\end{alltt}`,
	) + "\n"
	assert.Equal(t, want, buf.String())
}

func TestHighlightScenario3_KeywordList(t *testing.T) {
	t.Parallel()

	normal := &highlighting.Style{Name: "Normal", FGColour: "000000", BGColour: "FFFFFF"}
	keywordStyle := &highlighting.Style{Name: "Keyword", FGColour: "0000FF", BGColour: "FFFFFF"}

	kw := highlighting.NewKeywordSet(true)
	kw.Add("if")
	kw.Add("else")

	def := &highlighting.Context{Name: "default", Attribute: normal}
	def.EndSwitch = selfLoopSwitch(def)
	def.EmptySwitch = selfLoopSwitch(def)

	rule := highlighting.NewKeyword(highlighting.RuleConfig{Style: keywordStyle}, kw)
	def.Rules = []highlighting.Rule{rule}

	lang := &highlighting.Language{
		Name:           "test",
		Styles:         map[string]*highlighting.Style{"Normal": normal, "Keyword": keywordStyle},
		KeywordLists:   map[string]*highlighting.KeywordSet{"kw": kw},
		Contexts:       map[string]*highlighting.Context{"default": def},
		DefaultContext: def,
	}

	var buf strings.Builder
	require.NoError(t, highlighting.WriteAlltt(&buf, lang, strings.NewReader("if x else"), highlighting.ModeInline))

	out := buf.String()
	assert.Contains(t, out, `\textcolor[HTML]{0000FF}{if}`)
	assert.Contains(t, out, `\textcolor[HTML]{0000FF}{else}`)
	assert.Contains(t, out, `\textcolor[HTML]{000000}{x}`)
}

func TestHighlightScenario4_DynamicRegexAndStringDetect(t *testing.T) {
	t.Parallel()

	normal := &highlighting.Style{Name: "Normal", FGColour: "000000", BGColour: "FFFFFF"}
	matchStyle := &highlighting.Style{Name: "Match", FGColour: "FF00FF", BGColour: "FFFFFF"}

	def := &highlighting.Context{Name: "default", Attribute: normal}
	pushed := &highlighting.Context{Name: "pushed", Attribute: normal}

	def.EndSwitch = selfLoopSwitch(def)
	def.EmptySwitch = selfLoopSwitch(def)
	pushed.EndSwitch = selfLoopSwitch(def)
	pushed.EmptySwitch = selfLoopSwitch(def)

	regexRule := highlighting.NewRegExpr(highlighting.RuleConfig{
		Dynamic: true,
		Switch:  highlighting.ContextSwitch{Push: true, Target: pushed},
	}, `([a-z]+)=`, false)
	dynString := highlighting.NewStringDetect(highlighting.RuleConfig{
		Dynamic: true,
		Style:   matchStyle,
	}, "%1", false)

	def.Rules = []highlighting.Rule{regexRule}
	pushed.Rules = []highlighting.Rule{dynString}

	lang := &highlighting.Language{
		Name:           "test",
		Styles:         map[string]*highlighting.Style{"Normal": normal, "Match": matchStyle},
		Contexts:       map[string]*highlighting.Context{"default": def, "pushed": pushed},
		DefaultContext: def,
	}

	var buf strings.Builder
	require.NoError(t, highlighting.WriteAlltt(&buf, lang, strings.NewReader("foo=foo"), highlighting.ModeInline))

	out := buf.String()
	assert.Contains(t, out, `\textcolor[HTML]{FF00FF}{foo}`)
}

func TestHighlightScenario5_DeclarationOrderWins(t *testing.T) {
	t.Parallel()

	normal := &highlighting.Style{Name: "Normal", FGColour: "000000", BGColour: "FFFFFF"}
	matched := &highlighting.Style{Name: "Matched", FGColour: "00FF00", BGColour: "FFFFFF"}

	def := &highlighting.Context{Name: "default", Attribute: normal}
	def.EndSwitch = selfLoopSwitch(def)
	def.EmptySwitch = selfLoopSwitch(def)

	stringRule := highlighting.NewStringDetect(highlighting.RuleConfig{Style: matched}, "ab", false)
	charRule := highlighting.NewDetectChar(highlighting.RuleConfig{Style: matched}, "a")
	def.Rules = []highlighting.Rule{stringRule, charRule}

	lang := &highlighting.Language{
		Name:           "test",
		Styles:         map[string]*highlighting.Style{"Normal": normal, "Matched": matched},
		Contexts:       map[string]*highlighting.Context{"default": def},
		DefaultContext: def,
	}

	var buf strings.Builder
	require.NoError(t, highlighting.WriteAlltt(&buf, lang, strings.NewReader("abc"), highlighting.ModeInline))

	out := buf.String()
	assert.Contains(t, out, `\textcolor[HTML]{00FF00}{ab}`)
	assert.NotContains(t, out, `\textcolor[HTML]{00FF00}{a}\textcolor`)
}

func TestHighlightScenario6_Fallthrough(t *testing.T) {
	t.Parallel()

	normal := &highlighting.Style{Name: "Normal", FGColour: "000000", BGColour: "FFFFFF"}
	bStyle := &highlighting.Style{Name: "BStyle", FGColour: "112233", BGColour: "FFFFFF"}

	a := &highlighting.Context{Name: "a", Attribute: normal}
	b := &highlighting.Context{Name: "b", Attribute: bStyle}

	a.EndSwitch = selfLoopSwitch(a)
	a.EmptySwitch = selfLoopSwitch(a)
	b.EndSwitch = selfLoopSwitch(a)
	b.EmptySwitch = selfLoopSwitch(a)

	a.Fallthrough = true
	a.FallSwitch = highlighting.ContextSwitch{Push: true, Target: b}

	matchX := highlighting.NewDetectChar(highlighting.RuleConfig{}, "x")
	b.Rules = []highlighting.Rule{matchX}

	lang := &highlighting.Language{
		Name:           "test",
		Styles:         map[string]*highlighting.Style{"Normal": normal, "BStyle": bStyle},
		Contexts:       map[string]*highlighting.Context{"a": a, "b": b},
		DefaultContext: a,
	}

	var buf strings.Builder
	require.NoError(t, highlighting.WriteAlltt(&buf, lang, strings.NewReader("x"), highlighting.ModeInline))

	out := buf.String()
	assert.Contains(t, out, `\textcolor[HTML]{112233}{x}`)
}

func TestHighlightEmptyLineEmitsBlankLine(t *testing.T) {
	t.Parallel()

	normal := &highlighting.Style{Name: "Normal", FGColour: "000000", BGColour: "FFFFFF"}
	def := &highlighting.Context{Name: "default", Attribute: normal}
	def.EndSwitch = selfLoopSwitch(def)
	def.EmptySwitch = selfLoopSwitch(def)

	lang := &highlighting.Language{
		Name:           "test",
		Styles:         map[string]*highlighting.Style{"Normal": normal},
		Contexts:       map[string]*highlighting.Context{"default": def},
		DefaultContext: def,
	}

	// A genuinely empty stream has no lines to scan at all.
	var buf strings.Builder
	require.NoError(t, highlighting.WriteAlltt(&buf, lang, strings.NewReader(""), highlighting.ModeInline))
	assert.Equal(t, "\\begin{alltt}\n\\end{alltt}\n", buf.String())

	// A single empty line drives the empty_line path and emits a blank line.
	buf.Reset()
	require.NoError(t, highlighting.WriteAlltt(&buf, lang, strings.NewReader("\n"), highlighting.ModeInline))
	assert.Equal(t, stringtest.JoinLF(`\begin{alltt}`, ``, `\end{alltt}`)+"\n", buf.String())
}

func TestHighlightCommandMode(t *testing.T) {
	t.Parallel()

	normal := &highlighting.Style{Name: "Normal", FGColour: "000000", BGColour: "FFFFFF"}
	def := &highlighting.Context{Name: "default", Attribute: normal}
	def.EndSwitch = selfLoopSwitch(def)
	def.EmptySwitch = selfLoopSwitch(def)

	lang := &highlighting.Language{
		Name:           "c++",
		Styles:         map[string]*highlighting.Style{"Normal": normal},
		Contexts:       map[string]*highlighting.Context{"default": def},
		DefaultContext: def,
	}

	var buf strings.Builder
	require.NoError(t, highlighting.WriteAlltt(&buf, lang, strings.NewReader("x"), highlighting.ModeCommand))
	assert.Contains(t, buf.String(), `\cXXNormal{x}`)
}
