package tokenizer

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llmcost/llmcost/pkg/pretokenize"
)

// corpusCase freezes one input against the token ID sequence this
// repository's embedded vocabulary must produce for both encodings (spec
// §8 "Tokenizer parity" / SPEC_FULL.md §13 "Evil-corpus parity"). Expected
// values were computed by an independent reference implementation of the
// same grammar and merge algorithm run offline against the embedded
// cl100k_base.tiktoken/o200k_base.tiktoken vocabularies, then frozen here.
type corpusCase struct {
	name   string
	text   string
	o200k  []uint32
	cl100k []uint32
}

var evilCorpus = []corpusCase{
	{
		name:   "ascii greeting",
		text:   "Hello world",
		o200k:  []uint32{259, 264},
		cl100k: []uint32{259, 264},
	},
	{
		name:   "leading-space contraction",
		text:   " don't",
		o200k:  []uint32{463, 464},
		cl100k: []uint32{335, 336},
	},
	{
		name:   "mixed contractions and punctuation",
		text:   "I'm here, you're there",
		o200k:  []uint32{73, 470, 486, 114, 101, 44, 321, 467, 267, 114, 101},
		cl100k: []uint32{73, 342, 303, 101, 114, 101, 44, 300, 339, 267, 114, 101},
	},
	{
		name:   "digit runs capped at three",
		text:   "12 345 6789",
		o200k:  []uint32{49, 50, 32, 51, 52, 53, 32, 54, 55, 56, 57},
		cl100k: []uint32{49, 50, 32, 51, 52, 53, 32, 54, 55, 56, 57},
	},
	{
		name:   "CJK has no merges in the embedded vocabulary",
		text:   "你好世界",
		o200k:  []uint32{228, 189, 160, 229, 165, 189, 228, 184, 150, 231, 149, 140},
		cl100k: []uint32{228, 189, 160, 229, 165, 189, 228, 184, 150, 231, 149, 140},
	},
	{
		name:   "emoji falls back to raw UTF-8 bytes",
		text:   "😀🎉",
		o200k:  []uint32{240, 159, 152, 128, 240, 159, 142, 137},
		cl100k: []uint32{240, 159, 152, 128, 240, 159, 142, 137},
	},
	{
		name:   "space run ending in newlines",
		text:   "a   \n\nb",
		o200k:  []uint32{97, 32, 32, 32, 10, 10, 98},
		cl100k: []uint32{97, 32, 32, 32, 10, 10, 98},
	},
	{
		name:   "tab run mid-string",
		text:   "a\t\tb",
		o200k:  []uint32{97, 9, 9, 98},
		cl100k: []uint32{97, 9, 9, 98},
	},
	{
		name:   "precomposed accented letter",
		text:   "café", // "café", NFC
		o200k:  []uint32{99, 97, 102, 195, 169},
		cl100k: []uint32{99, 97, 102, 195, 169},
	},
	{
		// NFD: "e" followed by a standalone combining acute accent
		// (U+0301). Same token IDs as the NFC case above (no merge applies
		// to either "cafe" alone or to the lone mark byte sequence), but
		// the two grammars disagree on where the piece boundary falls -
		// see TestNFDAccentPieceBoundaryDiffersByGrammar.
		name:   "NFD-decomposed accented letter",
		text:   "café",
		o200k:  []uint32{99, 97, 102, 101, 204, 129},
		cl100k: []uint32{99, 97, 102, 101, 204, 129},
	},
	{
		name:   "trailing whitespace at EOF",
		text:   "   ",
		o200k:  []uint32{32, 32, 32},
		cl100k: []uint32{32, 32, 32},
	},
	{
		name:   "empty input",
		text:   "",
		o200k:  nil,
		cl100k: nil,
	},
}

func TestEvilCorpusParity(t *testing.T) {
	o200k, err := New("gpt-4o")
	require.NoError(t, err)
	cl100k, err := New("gpt-4")
	require.NoError(t, err)

	for _, c := range evilCorpus {
		t.Run(c.name, func(t *testing.T) {
			res, err := o200k.Encode(c.text, EncodeOptions{})
			require.NoError(t, err)
			assert.Equal(t, c.o200k, res.Tokens, "o200k_base")

			res, err = cl100k.Encode(c.text, EncodeOptions{})
			require.NoError(t, err)
			assert.Equal(t, c.cl100k, res.Tokens, "cl100k_base")
		})
	}
}

// TestNFDAccentPieceBoundaryDiffersByGrammar pins the behavior review
// comment pkg/pretokenize/o200k.go:42-64 fixed: o200k_base's word branch
// accepts "one or more letters followed by zero or more letter-or-mark"
// codepoints, so a combining accent stays attached to the preceding word;
// cl100k_base's word branch does not, so the accent surfaces as its own
// piece. The token IDs happen to coincide (see evilCorpus above) because no
// merge rule applies within either split, so only the piece count tells
// the two grammars apart.
func TestNFDAccentPieceBoundaryDiffersByGrammar(t *testing.T) {
	o200k, err := New("gpt-4o")
	require.NoError(t, err)
	cl100k, err := New("gpt-4")
	require.NoError(t, err)

	text := "café"
	o200kPieces := splitPiecesForTest(t, o200k, text)
	cl100kPieces := splitPiecesForTest(t, cl100k, text)

	assert.Equal(t, []string{"café"}, o200kPieces)
	assert.Equal(t, []string{"cafe", "́"}, cl100kPieces)
}

// splitPiecesForTest reaches into the tokenizer's resolved grammar the same
// way encodePlain does, so the test observes the exact piece boundary
// Encode acts on rather than re-deriving it independently.
func splitPiecesForTest(t *testing.T, tok *Tokenizer, text string) []string {
	t.Helper()
	pieces := pretokenize.Split(tok.grammar, []byte(text))
	out := make([]string, len(pieces))
	for i, p := range pieces {
		out[i] = string(p)
	}
	return out
}

// TestInvalidUTF8AdversarialBytes exercises spec §4.2.3 "UTF-8 safety" /
// §8's invalid-input property directly in the byte domain: malformed UTF-8
// can never be expressed as a valid Go string literal of the "bad" bytes
// themselves, so this builds the adversarial input as a []byte and
// converts it with a raw string conversion (not a rune-validating one).
func TestInvalidUTF8AdversarialBytes(t *testing.T) {
	cases := [][]byte{
		{0xff, 0xfe},     // two standalone invalid lead bytes
		{'a', 0xe4, 'b'}, // truncated 3-byte lead mid-ASCII
		{0xc0, 0x80},     // overlong encoding of NUL
		{0x80},           // lone continuation byte
	}

	o200k, err := New("gpt-4o")
	require.NoError(t, err)

	for _, raw := range cases {
		text := string(raw)
		res, err := o200k.Encode(text, EncodeOptions{})
		require.NoError(t, err)
		// Every malformed byte falls back to its own single-byte piece,
		// whose rank in the embedded vocabulary equals the byte's value
		// (the synthetic vocabulary assigns rank == byte value to all 256
		// single-byte tokens).
		require.Len(t, res.Tokens, len(raw))
		for i, b := range raw {
			assert.Equal(t, uint32(b), res.Tokens[i])
		}
	}
}

// TestEncodeRoundTripsAndIsDeterministic is the testing/quick property test
// SPEC_FULL.md §10.5 promises: over random byte strings (valid or not),
// Encode must never panic, must be deterministic, and its output must
// recombine into the exact input bytes via the vocabulary's BytesOf table.
func TestEncodeRoundTripsAndIsDeterministic(t *testing.T) {
	tok, err := New("gpt-4o")
	require.NoError(t, err)

	prop := func(raw []byte) bool {
		text := string(raw)

		r1, err := tok.Encode(text, EncodeOptions{})
		if err != nil {
			return false
		}
		r2, err := tok.Encode(text, EncodeOptions{})
		if err != nil {
			return false
		}
		if len(r1.Tokens) != len(r2.Tokens) {
			return false
		}
		for i := range r1.Tokens {
			if r1.Tokens[i] != r2.Tokens[i] {
				return false
			}
		}

		var rebuilt []byte
		for _, rank := range r1.Tokens {
			b, ok := tok.vocab.BytesOf(rank)
			if !ok {
				return false
			}
			rebuilt = append(rebuilt, b...)
		}
		return string(rebuilt) == text
	}

	require.NoError(t, quick.Check(prop, &quick.Config{MaxCount: 200}))
}
