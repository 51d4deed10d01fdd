// Package vocabio loads a binary V2 vocabulary (spec §6) from an external
// file via mmap, for callers that want to override the embedded
// cl100k_base/o200k_base vocabularies. Decoding copies every token into
// the Go heap; the mapping itself is only read during Open.
package vocabio

import (
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/llmcost/llmcost/pkg/bpe"
)

// MappedVocabulary is a Vocabulary decoded from an mmap'd binary V2 file.
// The decoded tables hold their own copies of the token bytes; the mapping
// stays open until Close unmaps it.
type MappedVocabulary struct {
	*bpe.Vocabulary
	file *os.File
	mm   mmap.MMap
}

// Open mmaps path read-only and decodes it as a binary V2 vocabulary. The
// returned MappedVocabulary owns the mapping; call Close when done. Every
// field of the decoded Vocabulary is read through encoding/binary
// accessors over the mapped bytes (pkg/bpe/binary.go), never a pointer
// cast, since an mmap'd region carries no alignment guarantee beyond
// byte (spec §4.1).
func Open(path string) (*MappedVocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	v, err := bpe.DecodeBinaryV2(m)
	if err != nil {
		m.Unmap()
		f.Close()
		return nil, err
	}

	return &MappedVocabulary{Vocabulary: v, file: f, mm: m}, nil
}

// Close unmaps the file and closes its descriptor.
func (mv *MappedVocabulary) Close() error {
	unmapErr := mv.mm.Unmap()
	closeErr := mv.file.Close()
	if unmapErr != nil {
		return unmapErr
	}
	return closeErr
}
