package highlighting

import "strings"

// KeywordSet is a set of strings bucketed by length, remembering the global
// maximum length so lookups can skip buckets a buffer is too short to hold.
// Case-folding is a property of construction, not of lookup: Add folds the
// word before insertion when caseSensitive is false, and Match folds the
// buffer slice it compares the same way.
type KeywordSet struct {
	caseSensitive bool
	maxLen        int
	buckets       map[int]map[string]struct{}
}

// NewKeywordSet returns an empty set. caseSensitive controls whether Add
// folds words to lower-case before storing them, and whether Match folds
// the candidate substring the same way before comparing.
func NewKeywordSet(caseSensitive bool) *KeywordSet {
	return &KeywordSet{
		caseSensitive: caseSensitive,
		buckets:       make(map[int]map[string]struct{}),
	}
}

// Add inserts word into the set, folding case first if the set is
// case-insensitive.
func (k *KeywordSet) Add(word string) {
	if !k.caseSensitive {
		word = strings.ToLower(word)
	}
	n := len([]rune(word))
	if n == 0 {
		return
	}
	bucket, ok := k.buckets[n]
	if !ok {
		bucket = make(map[string]struct{})
		k.buckets[n] = bucket
	}
	bucket[word] = struct{}{}
	if n > k.maxLen {
		k.maxLen = n
	}
}

// isWordChar reports whether r is an ASCII letter, digit, or underscore.
func isWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}

// wordCharAt reports whether buf[i] is a word character, treating any
// position outside the buffer as non-word.
func wordCharAt(buf []rune, i int) bool {
	if i < 0 || i >= len(buf) {
		return false
	}
	return isWordChar(buf[i])
}

// Match looks up the longest keyword matching buf at pos. wholeWord, when
// true, requires that the match neither starts nor ends inside a run of
// word characters extending past its boundary. It returns the matched
// length and true, or (0, false) if nothing in the set matches.
func (k *KeywordSet) Match(buf []rune, pos int, wholeWord bool) (int, bool) {
	if wholeWord && wordCharAt(buf, pos-1) {
		return 0, false
	}

	remaining := len(buf) - pos
	maxTry := k.maxLen
	if remaining < maxTry {
		maxTry = remaining
	}

	for length := maxTry; length >= 1; length-- {
		bucket, ok := k.buckets[length]
		if !ok {
			continue
		}
		if wholeWord && wordCharAt(buf, pos+length) {
			continue
		}
		candidate := string(buf[pos : pos+length])
		if !k.caseSensitive {
			candidate = strings.ToLower(candidate)
		}
		if _, ok := bucket[candidate]; ok {
			return length, true
		}
	}

	return 0, false
}
