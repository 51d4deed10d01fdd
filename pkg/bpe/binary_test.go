package bpe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryV2RoundTrip(t *testing.T) {
	ranks := map[string]uint32{
		"a": 0, "b": 1, "c": 2, "ab": 3, "abc": 4,
	}
	v, err := New(ranks)
	require.NoError(t, err)

	blob, err := EncodeBinaryV2(v)
	require.NoError(t, err)

	v2, err := DecodeBinaryV2(blob)
	require.NoError(t, err)

	assert.Equal(t, v.Size(), v2.Size())
	assert.Equal(t, v.MaxTokenLen(), v2.MaxTokenLen())
	for tok, rank := range ranks {
		r, ok := v2.RankOf([]byte(tok))
		require.True(t, ok)
		assert.Equal(t, rank, r)
	}
}

func TestDecodeBinaryV2RejectsBadMagic(t *testing.T) {
	ranks := map[string]uint32{"a": 0}
	v, err := New(ranks)
	require.NoError(t, err)
	blob, err := EncodeBinaryV2(v)
	require.NoError(t, err)

	blob[0] = 'X'
	_, err = DecodeBinaryV2(blob)
	require.Error(t, err)
	berr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ErrVocabularyCorrupt, berr.Kind)
}

func TestDecodeBinaryV2RejectsTruncatedHeader(t *testing.T) {
	_, err := DecodeBinaryV2(make([]byte, 10))
	require.Error(t, err)
}

func TestDecodeBinaryV2RejectsSourceHashMismatch(t *testing.T) {
	ranks := map[string]uint32{"a": 0, "b": 1}
	v, err := New(ranks)
	require.NoError(t, err)
	blob, err := EncodeBinaryV2(v)
	require.NoError(t, err)

	// Corrupt one byte of the embedded source hash (offset 20..52).
	blob[25] ^= 0xff
	_, err = DecodeBinaryV2(blob)
	require.Error(t, err)
	berr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ErrVocabularyCorrupt, berr.Kind)
	assert.Contains(t, berr.Reason, "hash")
}

func TestDecodeBinaryV2RejectsTruncatedBlob(t *testing.T) {
	ranks := map[string]uint32{"a": 0, "bcdef": 1}
	v, err := New(ranks)
	require.NoError(t, err)
	blob, err := EncodeBinaryV2(v)
	require.NoError(t, err)

	truncated := blob[:len(blob)-3]
	_, err = DecodeBinaryV2(truncated)
	require.Error(t, err)
}
