package pretokenize

import "unicode"

// O200k implements the o200k_base pre-tokenization grammar (spec §4.2.1).
// Branches are tried in order; the first that matches wins.
type O200k struct{}

// Next implements Grammar.
func (O200k) Next(text []byte, pos int) int {
	if end, ok := matchContraction(text, pos); ok {
		return end
	}
	if end, ok := o200kWord(text, pos); ok {
		return end
	}
	if end, ok := o200kDigitRun(text, pos); ok {
		return end
	}
	if end, ok := o200kSymbolCluster(text, pos); ok {
		return end
	}
	if end, ok := matchWhitespaceEndingInNewline(text, pos); ok {
		return end
	}
	if end, ok := matchTrailingWhitespaceAtEOF(text, pos); ok {
		return end
	}
	if end, ok := matchGenericWhitespace(text, pos); ok {
		return end
	}
	return matchByteFallback(text, pos)
}

// o200kPrefixable reports whether r is eligible as the word branch's
// optional single prefix character: anything but CR, LF, a letter, or a
// number (typically punctuation or a single leading space).
func o200kPrefixable(r rune) bool {
	return !isNewline(r) && !unicode.IsLetter(r) && !unicode.IsNumber(r)
}

// o200kWord matches an optional single prefix character, one or more
// letter code points, then zero or more letter-or-mark code points (spec
// §4.2.1 branch 3) - so a combining mark (NFD diacritics, Devanagari or
// Thai vowel signs, ...) stays attached to the word it modifies instead of
// spilling into the next symbol-cluster piece.
func o200kWord(text []byte, pos int) (end int, ok bool) {
	i := pos
	if i < len(text) {
		r, size, valid := decodeRune(text[i:])
		if valid && o200kPrefixable(r) {
			i += size
		}
	}
	start := i
	for i < len(text) {
		r, size, valid := decodeRune(text[i:])
		if !valid || !unicode.IsLetter(r) {
			break
		}
		i += size
	}
	if i == start {
		return 0, false
	}
	for i < len(text) {
		r, size, valid := decodeRune(text[i:])
		if !valid || (!unicode.IsLetter(r) && !unicode.IsMark(r)) {
			break
		}
		i += size
	}
	return i, true
}

// o200kDigitRun matches 1 to 3 Unicode numeric code points.
func o200kDigitRun(text []byte, pos int) (end int, ok bool) {
	i := pos
	count := 0
	for i < len(text) && count < 3 {
		r, size, valid := decodeRune(text[i:])
		if !valid || !unicode.IsNumber(r) {
			break
		}
		i += size
		count++
	}
	if count == 0 {
		return 0, false
	}
	return i, true
}

// o200kSymbolCluster matches an optional single leading space followed by
// one or more code points that are neither whitespace, letters, nor
// numbers; any trailing CR/LF run is absorbed into the same piece.
func o200kSymbolCluster(text []byte, pos int) (end int, ok bool) {
	i := pos
	if i < len(text) && text[i] == ' ' {
		i++
	}
	start := i
	for i < len(text) {
		r, size, valid := decodeRune(text[i:])
		if !valid || isPatternWhitespace(r) || unicode.IsLetter(r) || unicode.IsNumber(r) {
			break
		}
		i += size
	}
	if i == start {
		return 0, false
	}
	i = scanNewlineRun(text, i)
	return i, true
}
