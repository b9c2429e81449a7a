package katedef

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mssjo/katelistings-go/highlighting"
)

// Cache resolves language names to loaded languages, loading a language at
// most once and reusing the result for every subsequent ##lang include or
// request. It is built once at CLI startup, used single-threaded while the
// command's definitions are loaded, and is read-only once highlighting jobs
// begin.
type Cache struct {
	dirs       []string
	palette    map[string]*highlighting.Style
	loaded     map[string]*highlighting.Language
	inProgress map[string]bool
}

// NewCache returns a Cache that searches dirs (in order) for "<name>.xml"
// when asked to load a language by name, using palette as every language's
// default-style fallback.
func NewCache(dirs []string, palette map[string]*highlighting.Style) *Cache {
	return &Cache{
		dirs:       dirs,
		palette:    palette,
		loaded:     make(map[string]*highlighting.Language),
		inProgress: make(map[string]bool),
	}
}

// Load returns the named language, loading it from c's search directories
// if it has not been loaded yet. A request for a language already in the
// middle of loading indicates a ##lang include cycle across language files,
// mirroring the intra-language cycle check in langBuilder.buildContext.
func (c *Cache) Load(name string) (*highlighting.Language, error) {
	if lang, ok := c.loaded[name]; ok {
		return lang, nil
	}

	if c.inProgress[name] {
		return nil, fmt.Errorf("%w: language %q", ErrCircularInclude, name)
	}

	path, err := c.find(name)
	if err != nil {
		return nil, err
	}

	c.inProgress[name] = true
	defer delete(c.inProgress, name)

	lang, err := c.loadFile(path)
	if err != nil {
		return nil, err
	}

	c.loaded[name] = lang

	return lang, nil
}

func (c *Cache) find(name string) (string, error) {
	for _, dir := range c.dirs {
		path := filepath.Join(dir, name+".xml")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: language %q not found", ErrUndefinedReference, name)
}

func (c *Cache) loadFile(path string) (*highlighting.Language, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{File: path, Err: fmt.Errorf("%w: %w", ErrMalformedDefinition, err)}
	}
	defer f.Close()

	return parseDocument(path, f, c.palette, c)
}

// Load parses the language definition at path, using palette as the
// default-style fallback table and langDirs as the search path for any
// cross-language ##lang includes the definition uses.
func Load(path string, palette map[string]*highlighting.Style, langDirs []string) (*highlighting.Language, error) {
	cache := NewCache(langDirs, palette)

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{File: path, Err: fmt.Errorf("%w: %w", ErrMalformedDefinition, err)}
	}
	defer f.Close()

	lang, err := parseDocument(path, f, palette, cache)
	if err != nil {
		return nil, err
	}

	cache.loaded[lang.Name] = lang

	return lang, nil
}
