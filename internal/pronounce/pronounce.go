// Package pronounce rewrites narration text with phonetic respellings
// before it is handed to the speech model.
package pronounce

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"

	"github.com/slidecraft/deck2video/internal/deck"
)

// Table maps words or phrases to their phonetic respellings,
// e.g. {"kubectl": "cube control"}.
type Table map[string]string

// Load reads a pronunciation table from a flat JSON object.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pronunciations: %w", err)
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("%w: pronunciations file must be a JSON object: %v",
			deck.ErrInvalidInput, err)
	}
	return table, nil
}

// Apply replaces every table key found in text with its respelling.
// Matching is case-insensitive and whole-phrase; longer keys are applied
// first so multi-word phrases take priority. Keys are applied one after
// another over the full text, so a shorter key may match text introduced
// by an earlier replacement.
func Apply(text string, table Table) string {
	if len(table) == 0 {
		return text
	}

	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, key := range keys {
		re, err := regexp.Compile(keyPattern(key))
		if err != nil {
			continue
		}
		replacement := table[key]
		text = re.ReplaceAllStringFunc(text, func(string) string { return replacement })
	}
	return text
}

// keyPattern builds a case-insensitive pattern for key, anchored with word
// boundaries on the sides where the key edge is a word character. Keys like
// "C++" keep a boundary only at the front, so "C++ code" still matches.
func keyPattern(key string) string {
	pattern := "(?i)" + regexp.QuoteMeta(key)
	runes := []rune(key)
	if len(runes) > 0 && isWordRune(runes[0]) {
		pattern = `\b` + pattern
	}
	if len(runes) > 0 && isWordRune(runes[len(runes)-1]) {
		pattern = pattern + `\b`
	}
	return pattern
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}
