package bpe

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallVocab(t *testing.T) *Vocabulary {
	t.Helper()
	ranks := map[string]uint32{
		"a": 0,
		"b": 1,
		"ab": 2,
	}
	v, err := New(ranks)
	require.NoError(t, err)
	return v
}

func TestNewRejectsEmptyVocabulary(t *testing.T) {
	_, err := New(map[string]uint32{})
	require.Error(t, err)
	berr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ErrVocabularyCorrupt, berr.Kind)
}

func TestNewRejectsEmptyToken(t *testing.T) {
	_, err := New(map[string]uint32{"": 0})
	require.Error(t, err)
}

func TestRankOfAndBytesOfRoundTrip(t *testing.T) {
	v := smallVocab(t)
	r, ok := v.RankOf([]byte("ab"))
	require.True(t, ok)
	assert.Equal(t, uint32(2), r)

	b, ok := v.BytesOf(2)
	require.True(t, ok)
	assert.Equal(t, "ab", string(b))

	_, ok = v.BytesOf(99)
	assert.False(t, ok)

	_, ok = v.RankOf([]byte("zzz"))
	assert.False(t, ok)
}

func TestMaxTokenLen(t *testing.T) {
	v := smallVocab(t)
	assert.Equal(t, 2, v.MaxTokenLen())
}

func TestTiktokenRoundTrip(t *testing.T) {
	v := smallVocab(t)
	var buf bytes.Buffer
	require.NoError(t, EncodeTiktoken(&buf, v))

	v2, err := LoadTiktoken(strings.NewReader(buf.String()))
	require.NoError(t, err)

	assert.Equal(t, v.Size(), v2.Size())
	for tok, rank := range map[string]uint32{"a": 0, "b": 1, "ab": 2} {
		r, ok := v2.RankOf([]byte(tok))
		require.True(t, ok)
		assert.Equal(t, rank, r)
	}
}

func TestSourceHashStableAcrossEquivalentVocabularies(t *testing.T) {
	v1 := smallVocab(t)
	ranks := map[string]uint32{"a": 0, "b": 1, "ab": 2}
	v2, err := New(ranks)
	require.NoError(t, err)

	h1, err := SourceHash(v1)
	require.NoError(t, err)
	h2, err := SourceHash(v2)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}
