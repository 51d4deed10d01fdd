// Package pretokenize implements the pre-tokenization grammars that split
// text into pieces before byte-pair-encoding is applied to each piece
// (spec §4.2). Two grammars are defined, Cl100k and O200k; pieces
// partition the input exactly and are always produced left to right.
package pretokenize

import "unicode/utf8"

// Grammar scans one piece starting at pos and returns its end offset.
// Implementations must always advance: Next(text, pos) > pos whenever
// pos < len(text).
type Grammar interface {
	Next(text []byte, pos int) int
}

// Split runs g over text and returns the ordered pieces. Concatenating the
// returned pieces reproduces text exactly (spec §4.2 "Contract").
func Split(g Grammar, text []byte) [][]byte {
	if len(text) == 0 {
		return nil
	}
	pieces := make([][]byte, 0, len(text)/4+1)
	pos := 0
	for pos < len(text) {
		end := g.Next(text, pos)
		if end <= pos {
			end = pos + 1 // safety net; grammars must not rely on this
		}
		pieces = append(pieces, text[pos:end])
		pos = end
	}
	return pieces
}

// decodeRune decodes the rune at the start of b using UTF-8 replacement
// semantics: an invalid byte sequence is reported as invalid rather than
// panicking, so the caller can fall back to a single-byte piece (spec
// §4.2.3 "UTF-8 safety").
func decodeRune(b []byte) (r rune, size int, valid bool) {
	if len(b) == 0 {
		return 0, 0, false
	}
	r, size = utf8.DecodeRune(b)
	if r == utf8.RuneError && size <= 1 {
		return r, 1, false
	}
	return r, size, true
}

// isPatternWhitespace reports whether r is one of the whitespace code
// points spec §4.2.3 names: CR, LF, HT, VT, FF, SP, and U+0085.
func isPatternWhitespace(r rune) bool {
	switch r {
	case '\r', '\n', '\t', '\v', '\f', ' ', 0x85:
		return true
	default:
		return false
	}
}

func isNewline(r rune) bool { return r == '\r' || r == '\n' }

// scanWhitespaceRun consumes a maximal run of pattern-whitespace runes
// starting at pos and returns the end offset (an invalid byte stops the
// run).
func scanWhitespaceRun(text []byte, pos int) int {
	i := pos
	for i < len(text) {
		r, size, ok := decodeRune(text[i:])
		if !ok || !isPatternWhitespace(r) {
			break
		}
		i += size
	}
	return i
}

// scanNewlineRun consumes a maximal run of CR/LF runes starting at pos.
func scanNewlineRun(text []byte, pos int) int {
	i := pos
	for i < len(text) {
		r, size, ok := decodeRune(text[i:])
		if !ok || !isNewline(r) {
			break
		}
		i += size
	}
	return i
}

// matchWhitespaceEndingInNewline implements the shared branch 5 of both
// grammars: zero or more whitespace characters followed by one or more
// CR/LF, greedy but backtracking so a trailing run of non-newline
// whitespace immediately before a non-whitespace byte is left for a later
// branch (spec §4.2.3 "Greedy with negative lookahead").
func matchWhitespaceEndingInNewline(text []byte, pos int) (end int, ok bool) {
	wsEnd := scanWhitespaceRun(text, pos)
	if wsEnd == pos {
		return 0, false
	}
	// Find the last maximal newline run within [pos, wsEnd).
	lastNLStart, lastNLEnd := -1, -1
	i := pos
	for i < wsEnd {
		r, size, valid := decodeRune(text[i:])
		if !valid {
			break
		}
		if isNewline(r) {
			start := i
			j := i
			for j < wsEnd {
				r2, size2, valid2 := decodeRune(text[j:])
				if !valid2 || !isNewline(r2) {
					break
				}
				j += size2
			}
			lastNLStart, lastNLEnd = start, j
			i = j
			continue
		}
		i += size
	}
	if lastNLStart < 0 {
		return 0, false
	}
	if lastNLEnd == wsEnd {
		return wsEnd, true
	}
	// Trailing non-newline whitespace after the last newline run is never
	// part of this match, whether it is followed by EOF or by a
	// non-whitespace byte: stop right after the newline run and leave it
	// for branches 6/7.
	return lastNLEnd, true
}

// matchTrailingWhitespaceAtEOF implements branch 6: one or more whitespace
// characters, valid only when no non-whitespace byte follows anywhere in
// the remaining input (spec §4.2.3 "EOF-negative-lookahead").
func matchTrailingWhitespaceAtEOF(text []byte, pos int) (end int, ok bool) {
	wsEnd := scanWhitespaceRun(text, pos)
	if wsEnd == pos {
		return 0, false
	}
	if wsEnd != len(text) {
		return 0, false
	}
	return wsEnd, true
}

// matchGenericWhitespace implements branch 7: one or more whitespace
// characters, the unconditional fallback.
func matchGenericWhitespace(text []byte, pos int) (end int, ok bool) {
	wsEnd := scanWhitespaceRun(text, pos)
	if wsEnd == pos {
		return 0, false
	}
	return wsEnd, true
}

// matchByteFallback implements branch 8: a single byte, reached only for
// malformed UTF-8.
func matchByteFallback(text []byte, pos int) int {
	return pos + 1
}

var contractionSuffixes = []string{"'re", "'ve", "'ll", "'s", "'t", "'m", "'d"}

// matchContraction implements the shared branch 1: one of 's, 't, 're,
// 've, 'm, 'll, 'd, matched case-insensitively.
func matchContraction(text []byte, pos int) (end int, ok bool) {
	if pos >= len(text) || text[pos] != '\'' {
		return 0, false
	}
	for _, suf := range contractionSuffixes {
		if pos+len(suf) > len(text) {
			continue
		}
		if equalFoldASCII(text[pos:pos+len(suf)], suf) {
			return pos + len(suf), true
		}
	}
	return 0, false
}

func equalFoldASCII(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := range b {
		bc, sc := b[i], s[i]
		if bc == sc {
			continue
		}
		if lowerASCII(bc) != lowerASCII(sc) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
