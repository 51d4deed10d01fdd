// Package tokenizer is the model-name-facing facade over pkg/bpe and
// pkg/pretokenize (spec §4.4): it resolves a model name to an encoding (or
// a heuristic approximation) and exposes Encode/Count/HasExact.
package tokenizer

import (
	"bytes"
	"sync"

	"github.com/llmcost/llmcost/internal/assets"
	"github.com/llmcost/llmcost/pkg/bpe"
	"github.com/llmcost/llmcost/pkg/pretokenize"
)

// Encoding names one of the two compiled-in BPE encodings (spec §3 "Data
// Model").
type Encoding int

const (
	Cl100kBase Encoding = iota
	O200kBase
)

func (e Encoding) String() string {
	switch e {
	case Cl100kBase:
		return "cl100k_base"
	case O200kBase:
		return "o200k_base"
	default:
		return "unknown"
	}
}

var (
	cl100kOnce sync.Once
	cl100kVoc  *bpe.Vocabulary
	cl100kErr  error

	o200kOnce sync.Once
	o200kVoc  *bpe.Vocabulary
	o200kErr  error
)

// vocabularyFor returns the lazily-built singleton Vocabulary for enc,
// loaded once from the embedded tiktoken-format asset (spec §11.1),
// matching the teacher's per-variant lazy-singleton pattern generalized
// from a fixed language set to the two compiled-in encodings.
func vocabularyFor(enc Encoding) (*bpe.Vocabulary, error) {
	switch enc {
	case Cl100kBase:
		cl100kOnce.Do(func() {
			cl100kVoc, cl100kErr = bpe.LoadTiktoken(bytes.NewReader(assets.Cl100kBaseTiktoken))
		})
		return cl100kVoc, cl100kErr
	case O200kBase:
		o200kOnce.Do(func() {
			o200kVoc, o200kErr = bpe.LoadTiktoken(bytes.NewReader(assets.O200kBaseTiktoken))
		})
		return o200kVoc, o200kErr
	default:
		return nil, &Error{Kind: ErrUnknownEncoding, Reason: enc.String()}
	}
}

// grammarFor returns the pre-tokenization grammar paired with enc.
func grammarFor(enc Encoding) pretokenize.Grammar {
	if enc == O200kBase {
		return pretokenize.O200k{}
	}
	return pretokenize.Cl100k{}
}
