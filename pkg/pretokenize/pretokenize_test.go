package pretokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinPieces(pieces [][]byte) []byte {
	var out []byte
	for _, p := range pieces {
		out = append(out, p...)
	}
	return out
}

func pieceStrings(pieces [][]byte) []string {
	out := make([]string, len(pieces))
	for i, p := range pieces {
		out[i] = string(p)
	}
	return out
}

func TestO200kHelloWorld(t *testing.T) {
	text := []byte("Hello world")
	pieces := Split(O200k{}, text)
	require.Equal(t, []string{"Hello", " world"}, pieceStrings(pieces))
	assert.Equal(t, text, joinPieces(pieces))
}

func TestCl100kHelloWorld(t *testing.T) {
	text := []byte("Hello world")
	pieces := Split(Cl100k{}, text)
	require.Equal(t, []string{"Hello", " world"}, pieceStrings(pieces))
	assert.Equal(t, text, joinPieces(pieces))
}

func TestContractions(t *testing.T) {
	for _, g := range []Grammar{Cl100k{}, O200k{}} {
		pieces := Split(g, []byte("don't"))
		require.Equal(t, []string{"don", "'t"}, pieceStrings(pieces))
	}
}

func TestDigitRunCappedAtThree(t *testing.T) {
	for _, g := range []Grammar{Cl100k{}, O200k{}} {
		pieces := Split(g, []byte("12345"))
		require.Equal(t, []string{"123", "45"}, pieceStrings(pieces))
	}
}

func TestSymbolCluster(t *testing.T) {
	pieces := Split(Cl100k{}, []byte("foo!!!bar"))
	require.Equal(t, []string{"foo", "!!!", "bar"}, pieceStrings(pieces))
}

func TestWhitespaceEndingInNewlineVsTrailing(t *testing.T) {
	// A run of spaces followed by a newline, then a word: the newline
	// belongs to the first piece, the trailing word is untouched.
	pieces := Split(Cl100k{}, []byte("a   \n\nb"))
	require.Equal(t, []string{"a", "   \n\n", "b"}, pieceStrings(pieces))
}

func TestTrailingWhitespaceAtEOF(t *testing.T) {
	pieces := Split(Cl100k{}, []byte("a   "))
	require.Equal(t, []string{"a", "   "}, pieceStrings(pieces))
}

func TestGenericWhitespaceMidString(t *testing.T) {
	// Whitespace with a following non-whitespace, non-newline byte: the
	// EOF branch cannot fire, so the generic whitespace branch takes it.
	pieces := Split(Cl100k{}, []byte("a\t\tb"))
	require.Equal(t, []string{"a", "\t\t", "b"}, pieceStrings(pieces))
}

func TestInvalidUTF8FallsBackToSingleBytes(t *testing.T) {
	text := []byte{'a', 0xff, 0xfe, 'b'}
	for _, g := range []Grammar{Cl100k{}, O200k{}} {
		pieces := Split(g, text)
		assert.Equal(t, text, joinPieces(pieces))
		// the two invalid bytes must each surface as their own piece
		assert.Contains(t, pieceStrings(pieces), string([]byte{0xff}))
		assert.Contains(t, pieceStrings(pieces), string([]byte{0xfe}))
	}
}

func TestEmptyInput(t *testing.T) {
	for _, g := range []Grammar{Cl100k{}, O200k{}} {
		assert.Nil(t, Split(g, nil))
	}
}

func TestPiecesPartitionInput(t *testing.T) {
	samples := [][]byte{
		[]byte("The quick brown fox jumps over 123 lazy dogs!!\n\n  trailing  "),
		[]byte("it's don't we'll you're I'm they'd"),
		[]byte("no-whitespace,just.punctuation;everywhere"),
	}
	for _, g := range []Grammar{Cl100k{}, O200k{}} {
		for _, s := range samples {
			pieces := Split(g, s)
			assert.Equal(t, s, joinPieces(pieces))
			for _, p := range pieces {
				assert.NotEmpty(t, p)
			}
		}
	}
}
