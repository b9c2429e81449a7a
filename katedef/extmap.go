package katedef

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// extensionMap associates a file extension (without the leading dot) with a
// language name. Consulted only when the CLI is not given an explicit
// --language flag.
var extensionMap = map[string]string{
	"go":   "Go",
	"c":    "C",
	"h":    "C",
	"cpp":  "C++",
	"hpp":  "C++",
	"cc":   "C++",
	"py":   "Python",
	"rb":   "Ruby",
	"rs":   "Rust",
	"js":   "JavaScript",
	"ts":   "TypeScript",
	"java": "Java",
	"sh":   "Bash",
	"yaml": "YAML",
	"yml":  "YAML",
	"json": "JSON",
	"xml":  "XML",
	"md":   "Markdown",
	"tex":  "LaTeX",
	"lua":  "Lua",
	"pl":   "Perl",
	"hs":   "Haskell",
	"sql":  "SQL",
	"txt":  "PlainText",
}

// basenameMap associates an exact file name with a language, for files Kate
// recognizes by name rather than suffix. It is consulted before
// extensionMap, so a name listed here wins over its extension.
var basenameMap = map[string]string{
	"Makefile":       "Makefile",
	"Dockerfile":     "Dockerfile",
	"Rakefile":       "Ruby",
	"CMakeLists.txt": "CMake",
}

// globPattern is one fallback rule tried, in order, for file names that
// match neither basenameMap nor extensionMap.
type globPattern struct {
	pattern  string
	language string
}

var globPatterns = []globPattern{
	{"*.bash", "Bash"},
	{"*.zsh", "Bash"},
	{"Gemfile*", "Ruby"},
	{"*.cmake", "CMake"},
	{"CMakeLists.txt", "CMake"},
}

// LanguageForFile guesses a language name from path's base name: exact
// basename, then extension, then glob fallback, in that order. ok is false
// if nothing matches.
func LanguageForFile(path string) (language string, ok bool) {
	base := filepath.Base(path)

	if lang, found := basenameMap[base]; found {
		return lang, true
	}

	if ext := strings.TrimPrefix(filepath.Ext(base), "."); ext != "" {
		if lang, found := extensionMap[ext]; found {
			return lang, true
		}
	}

	for _, g := range globPatterns {
		if matched, _ := filepath.Match(g.pattern, base); matched {
			return g.language, true
		}
	}

	return "", false
}

// LanguageInfo is the minimal metadata the "languages" CLI subcommand needs
// to list and shell-complete known language names without fully loading
// every definition in the search path.
type LanguageInfo struct {
	Name       string
	Extensions []string
	File       string
}

// ListLanguages scans dirs for "*.xml" language definitions and returns
// their name and declared extensions, without resolving contexts or rules.
// A language name seen in an earlier directory shadows the same name found
// in a later one.
func ListLanguages(dirs []string) ([]LanguageInfo, error) {
	seen := make(map[string]bool)

	var infos []LanguageInfo

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".xml") {
				continue
			}

			info, err := readLanguageInfo(filepath.Join(dir, entry.Name()))
			if err != nil || seen[info.Name] {
				continue
			}

			seen[info.Name] = true
			infos = append(infos, info)
		}
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	return infos, nil
}

func readLanguageInfo(path string) (LanguageInfo, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return LanguageInfo{}, fmt.Errorf("%w: %w", ErrMalformedDefinition, err)
	}

	root := doc.SelectElement("language")
	if root == nil {
		return LanguageInfo{}, fmt.Errorf("%w: missing <language> root", ErrMalformedDefinition)
	}

	name := root.SelectAttrValue("name", "")
	if name == "" {
		return LanguageInfo{}, fmt.Errorf("%w: <language> missing name", ErrMalformedDefinition)
	}

	info := LanguageInfo{Name: name, File: path}

	if raw := root.SelectAttrValue("extensions", ""); raw != "" {
		for _, ext := range strings.Split(raw, ";") {
			if ext != "" {
				info.Extensions = append(info.Extensions, ext)
			}
		}
	}

	return info, nil
}
