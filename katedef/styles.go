package katedef

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"

	"github.com/mssjo/katelistings-go/highlighting"
)

// palette is the decoded shape of a default-style JSON document: a
// "text-styles" object whose children name default styles exposed as
// "ds<Name>" in a language's style map.
type palette struct {
	TextStyles map[string]paletteEntry `json:"text-styles"`
}

// paletteEntry is one named default style. Boolean attributes are encoded
// as a typed object rather than a bare JSON boolean; boolAttr.value
// resolves that encoding.
type paletteEntry struct {
	TextColor       string     `json:"text-color"`
	BackgroundColor string     `json:"background-color"`
	Italic          *boolAttr  `json:"italic,omitempty"`
	Bold            *boolAttr  `json:"bold,omitempty"`
	Underline       *boolAttr  `json:"underline,omitempty"`
	Strikethrough   *boolAttr  `json:"strikethrough,omitempty"`
}

type boolAttr struct {
	Type string `json:"type"`
}

func (b *boolAttr) value() *bool {
	if b == nil {
		return nil
	}

	v := b.Type == "true"

	return &v
}

// LoadPalette reads a default-style JSON document from path and returns the
// styles it defines, keyed by their "ds<Name>" form.
func LoadPalette(path string) (map[string]*highlighting.Style, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{File: path, Err: fmt.Errorf("%w: %w", ErrMalformedDefinition, err)}
	}
	defer f.Close()

	return DecodePalette(path, f)
}

// DecodePalette decodes a default-style JSON document read from r. path is
// used only for error reporting.
func DecodePalette(path string, r io.Reader) (map[string]*highlighting.Style, error) {
	var p palette

	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, &LoadError{File: path, Err: fmt.Errorf("%w: %w", ErrMalformedDefinition, err)}
	}

	styles := make(map[string]*highlighting.Style, len(p.TextStyles))

	for name, entry := range p.TextStyles {
		fg, err := normalizeOptionalColour(path, entry.TextColor)
		if err != nil {
			return nil, err
		}

		bg, err := normalizeOptionalColour(path, entry.BackgroundColor)
		if err != nil {
			return nil, err
		}

		styles["ds"+name] = &highlighting.Style{
			Name:          "ds" + name,
			FGColour:      fg,
			BGColour:      bg,
			Italic:        entry.Italic.value(),
			Bold:          entry.Bold.value(),
			Underline:     entry.Underline.value(),
			Strikethrough: entry.Strikethrough.value(),
		}
	}

	return styles, nil
}

// buildStyles builds a language's style map by reading <itemData> elements
// under <itemDatas> and resolving each one's defStyleNum fallback against
// palette. A language style that shares an itemData's own name shadows the
// bundled default style of the same name, matching Kate's own lookup order
// (a language-local style always wins over a palette default).
func (lb *langBuilder) buildStyles(hl *etree.Element, palette map[string]*highlighting.Style) (map[string]*highlighting.Style, error) {
	styles := make(map[string]*highlighting.Style, len(palette))
	for name, s := range palette {
		styles[name] = s
	}

	itemDatas := hl.SelectElement("itemDatas")
	if itemDatas == nil {
		return styles, nil
	}

	for _, id := range itemDatas.ChildElements() {
		if id.Tag != "itemData" {
			continue
		}

		lb.elemCount++

		style, err := lb.buildItemData(id, palette)
		if err != nil {
			return nil, err
		}

		styles[style.Name] = style
	}

	return styles, nil
}

// buildItemData converts a single <itemData> element into a Style, falling
// back to the palette entry named by defStyleNum for any attribute the
// element does not itself set.
func (lb *langBuilder) buildItemData(id *etree.Element, palette map[string]*highlighting.Style) (*highlighting.Style, error) {
	name := id.SelectAttrValue("name", "")
	if name == "" {
		return nil, loadErrf(lb.file, lb.elemCount, ErrMalformedDefinition, "<itemData> is missing a name attribute")
	}

	style := &highlighting.Style{Name: name}

	if defStyleNum := id.SelectAttrValue("defStyleNum", ""); defStyleNum != "" {
		fallback, ok := palette[defStyleNum]
		if !ok {
			return nil, loadErrf(lb.file, lb.elemCount, ErrUndefinedReference,
				"itemData %q references unknown default style %q", name, defStyleNum)
		}
		style.Fallback = fallback
	}

	if colour := id.SelectAttrValue("color", ""); colour != "" {
		norm, err := normalizeOptionalColour(lb.file, colour)
		if err != nil {
			return nil, err
		}
		style.FGColour = norm
	}

	if colour := id.SelectAttrValue("backgroundColor", ""); colour != "" {
		norm, err := normalizeOptionalColour(lb.file, colour)
		if err != nil {
			return nil, err
		}
		style.BGColour = norm
	}

	if attr := id.SelectAttr("italic"); attr != nil {
		style.Italic = boolPtr(attr.Value)
	}
	if attr := id.SelectAttr("bold"); attr != nil {
		style.Bold = boolPtr(attr.Value)
	}
	if attr := id.SelectAttr("underline"); attr != nil {
		style.Underline = boolPtr(attr.Value)
	}
	if attr := id.SelectAttr("strikethrough"); attr != nil {
		style.Strikethrough = boolPtr(attr.Value)
	}

	return style, nil
}

func boolPtr(s string) *bool {
	v := s == "true" || s == "1"
	return &v
}

func normalizeOptionalColour(path, s string) (string, error) {
	if s == "" {
		return "", nil
	}

	norm, err := highlighting.NormalizeColour(s)
	if err != nil {
		return "", &LoadError{File: path, Err: fmt.Errorf("%w: %w", ErrInvalidColour, err)}
	}

	return norm, nil
}
