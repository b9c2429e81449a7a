package highlighting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mssjo/katelistings-go/highlighting"
)

func TestStyleAttrsInheritsFromFallback(t *testing.T) {
	t.Parallel()

	trueVal := true

	fallback := &highlighting.Style{
		Name:     "dsKeyword",
		FGColour: "0000FF",
		BGColour: "FFFFFF",
		Bold:     &trueVal,
	}

	override := &highlighting.Style{
		Name:     "MyKeyword",
		Fallback: fallback,
		FGColour: "FF0000", // overrides fg
		// bg, bold left unset: inherit
	}

	attrs := override.Attrs()
	assert.Equal(t, "FF0000", attrs.FGColour)
	assert.Equal(t, "FFFFFF", attrs.BGColour)
	assert.True(t, attrs.Bold)
	assert.False(t, attrs.Italic)
}

func TestStyleAttrsExplicitFalseOverridesFallbackTrue(t *testing.T) {
	t.Parallel()

	trueVal := true
	falseVal := false

	fallback := &highlighting.Style{Name: "dsKeyword", Bold: &trueVal}
	override := &highlighting.Style{Name: "Quiet", Fallback: fallback, Bold: &falseVal}

	assert.False(t, override.Attrs().Bold)
}

func TestStyleAttrsDefaultsWithNoFallback(t *testing.T) {
	t.Parallel()

	s := &highlighting.Style{Name: "dsNormal"}
	attrs := s.Attrs()
	assert.Equal(t, "000000", attrs.FGColour)
	assert.Equal(t, "FFFFFF", attrs.BGColour)
}

func TestNormalizeColour(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		want        string
		expectError bool
	}{
		"already normalized":  {input: "AABBCC", want: "AABBCC"},
		"lowercase":            {input: "aabbcc", want: "AABBCC"},
		"leading hash":         {input: "#123abc", want: "123ABC"},
		"too short":            {input: "ABC", expectError: true},
		"non-hex digit":        {input: "GGGGGG", expectError: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := highlighting.NormalizeColour(tc.input)
			if tc.expectError {
				require.Error(t, err)
				require.ErrorIs(t, err, highlighting.ErrInvalidColourValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
