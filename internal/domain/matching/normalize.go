// Package matching is the retrieval core: it turns corpus questions and
// incoming queries into TF-IDF vectors and picks the closest stored question.
// Pure business logic, no I/O.
package matching

import (
	"regexp"
	"strings"
)

// tokenPattern matches runs of two or more letters, digits or underscores.
// Single-character tokens never enter the vocabulary.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Normalize prepares text for vectorization. It is applied to every corpus
// question at build time and to every query at match time; the two paths
// must never diverge. Whitespace-only input normalizes to "".
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Tokenize splits normalized text into terms.
func Tokenize(normalized string) []string {
	return tokenPattern.FindAllString(normalized, -1)
}
