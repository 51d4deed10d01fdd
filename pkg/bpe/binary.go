package bpe

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Binary V2 vocabulary format (all integers little-endian, all reads
// alignment-safe - never a pointer cast over the raw blob):
//
//	offset  0   4 bytes   magic "BPE2"
//	offset  4   4 bytes   version (=2)
//	offset  8   4 bytes   token_count
//	offset 12   4 bytes   max_token_len
//	offset 16   4 bytes   blob_size
//	offset 20  32 bytes   SHA-256 of the vocabulary's canonical tiktoken-text
//	                      serialization (SourceHash), not of the source
//	                      file's own bytes
//	offset 52  12 bytes   reserved, zero
//	offset 64   token_count*8 bytes   (u32 offset, u32 length) table, by rank
//	offset 64+8*token_count  blob_size bytes   concatenated token bytes
const (
	v2Magic       = "BPE2"
	v2Version     = 2
	v2HeaderSize  = 64
	v2TableEntrySz = 8
)

// EncodeBinaryV2 serializes v to the binary V2 format.
func EncodeBinaryV2(v *Vocabulary) ([]byte, error) {
	srcHash, err := SourceHash(v)
	if err != nil {
		return nil, err
	}

	tokenCount := uint32(len(v.byRank))
	var blob bytes.Buffer
	table := make([]byte, tokenCount*v2TableEntrySz)

	for rank := uint32(0); rank < tokenCount; rank++ {
		tb, ok := v.BytesOf(rank)
		entryOff := rank * v2TableEntrySz
		if !ok {
			// hole: zero offset/length is a valid "no token at this rank"
			// marker, consistent with byRank's zero-value Token.
			continue
		}
		binary.LittleEndian.PutUint32(table[entryOff:], uint32(blob.Len()))
		binary.LittleEndian.PutUint32(table[entryOff+4:], uint32(len(tb)))
		blob.Write(tb)
	}

	out := make([]byte, v2HeaderSize, v2HeaderSize+len(table)+blob.Len())
	copy(out[0:4], v2Magic)
	binary.LittleEndian.PutUint32(out[4:8], v2Version)
	binary.LittleEndian.PutUint32(out[8:12], tokenCount)
	binary.LittleEndian.PutUint32(out[12:16], uint32(v.MaxTokenLen()))
	binary.LittleEndian.PutUint32(out[16:20], uint32(blob.Len()))
	copy(out[20:52], srcHash[:])
	// out[52:64] stays zero (reserved)

	out = append(out, table...)
	out = append(out, blob.Bytes()...)
	return out, nil
}

// DecodeBinaryV2 parses the binary V2 format into a Vocabulary. Every
// multi-byte read goes through encoding/binary so the source slice may
// come from an mmap'd region with no alignment guarantee beyond byte
// (spec §4.1 "Invariants").
func DecodeBinaryV2(data []byte) (*Vocabulary, error) {
	if len(data) < v2HeaderSize {
		return nil, &Error{Kind: ErrVocabularyCorrupt, Reason: "truncated header"}
	}
	if string(data[0:4]) != v2Magic {
		return nil, &Error{Kind: ErrVocabularyCorrupt, Reason: "bad magic"}
	}
	version := binary.LittleEndian.Uint32(data[4:8])
	if version != v2Version {
		return nil, &Error{Kind: ErrVocabularyCorrupt, Reason: fmt.Sprintf("unsupported version %d", version)}
	}

	tokenCount := binary.LittleEndian.Uint32(data[8:12])
	maxTokenLen := binary.LittleEndian.Uint32(data[12:16])
	blobSize := binary.LittleEndian.Uint32(data[16:20])
	var srcHash [32]byte
	copy(srcHash[:], data[20:52])

	tableEnd := v2HeaderSize + int(tokenCount)*v2TableEntrySz
	if tableEnd < v2HeaderSize || len(data) < tableEnd {
		return nil, &Error{Kind: ErrVocabularyCorrupt, Reason: "truncated offset/length table"}
	}
	blobStart := tableEnd
	blobEnd := blobStart + int(blobSize)
	if blobEnd < blobStart || len(data) < blobEnd {
		return nil, &Error{Kind: ErrVocabularyCorrupt, Reason: "truncated token blob"}
	}

	table := data[v2HeaderSize:tableEnd]
	blob := data[blobStart:blobEnd]

	tokenRanks := make(map[string]uint32, tokenCount)
	for rank := uint32(0); rank < tokenCount; rank++ {
		entryOff := rank * v2TableEntrySz
		off := binary.LittleEndian.Uint32(table[entryOff:])
		length := binary.LittleEndian.Uint32(table[entryOff+4:])
		if length == 0 && off == 0 {
			continue // hole: no token assigned at this rank
		}
		end := uint64(off) + uint64(length)
		if end > uint64(len(blob)) {
			return nil, &Error{Kind: ErrVocabularyCorrupt, Reason: "token offset/length out of bounds"}
		}
		if int(length) > int(maxTokenLen) {
			return nil, &Error{Kind: ErrVocabularyCorrupt, Reason: "token exceeds declared max length"}
		}
		tokenRanks[string(blob[off:end])] = rank
	}

	v, err := New(tokenRanks)
	if err != nil {
		return nil, err
	}

	gotHash, err := SourceHash(v)
	if err != nil {
		return nil, err
	}
	if gotHash != srcHash {
		return nil, &Error{Kind: ErrVocabularyCorrupt, Reason: "source hash mismatch"}
	}
	return v, nil
}
