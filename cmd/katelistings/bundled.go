package main

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mssjo/katelistings-go/highlighting"
	"github.com/mssjo/katelistings-go/katedef"
)

//go:embed bundled
var bundledFS embed.FS

const bundledDefsDir = "bundled"

// bundledStyleName is the only --style-name value recognized when --style
// is not given.
const bundledStyleName = "default"

// extractBundledDefs copies the embedded language definitions into a fresh
// temp directory, so they can be searched the same way as any --lang-dir
// path. Callers must invoke the returned cleanup once done.
func extractBundledDefs() (dir string, cleanup func(), err error) {
	dir, err = os.MkdirTemp("", "katelistings-bundled-*")
	if err != nil {
		return "", nil, fmt.Errorf("extract bundled definitions: %w", err)
	}

	cleanup = func() { os.RemoveAll(dir) }

	walkErr := fs.WalkDir(bundledFS, bundledDefsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		data, readErr := bundledFS.ReadFile(path)
		if readErr != nil {
			return readErr
		}

		if filepath.Ext(path) != ".xml" {
			return nil
		}

		return os.WriteFile(filepath.Join(dir, filepath.Base(path)), data, 0o644)
	})
	if walkErr != nil {
		cleanup()

		return "", nil, fmt.Errorf("extract bundled definitions: %w", walkErr)
	}

	return dir, cleanup, nil
}

// bundledPalette decodes the embedded default-style palette, for use when
// neither --style nor a non-default --style-name is given.
func bundledPalette(name string) (map[string]*highlighting.Style, error) {
	if name != "" && name != bundledStyleName {
		return nil, fmt.Errorf("%w: unknown bundled style name %q", ErrInvalidOption, name)
	}

	data, err := bundledFS.ReadFile(filepath.Join(bundledDefsDir, "default-styles.json"))
	if err != nil {
		return nil, fmt.Errorf("read bundled palette: %w", err)
	}

	return katedef.DecodePalette("bundled/default-styles.json", bytes.NewReader(data))
}
