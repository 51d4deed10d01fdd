package tokenizer

import (
	"strings"

	"github.com/llmcost/llmcost/pkg/bpe"
	"github.com/llmcost/llmcost/pkg/pretokenize"
)

// Tokenizer is bound to one resolved model (spec §4.4 "Tokenizer Facade").
type Tokenizer struct {
	resolution Resolution
	vocab      *bpe.Vocabulary
	grammar    pretokenize.Grammar
	encoder    *bpe.Encoder
}

// New resolves modelName and, if it has an exact encoding, loads the
// corresponding vocabulary and grammar. A heuristic-only resolution still
// returns a usable Tokenizer; Encode on it returns an approximate Result
// with no token IDs.
func New(modelName string) (*Tokenizer, error) {
	res, err := Resolve(modelName)
	if err != nil {
		return nil, err
	}

	t := &Tokenizer{resolution: res}
	if !res.Exact {
		return t, nil
	}

	vocab, err := vocabularyFor(res.Encoding)
	if err != nil {
		return nil, err
	}
	t.vocab = vocab
	t.grammar = grammarFor(res.Encoding)
	t.encoder = bpe.NewEncoder(vocab)
	return t, nil
}

// HasExact reports whether this Tokenizer performs exact BPE tokenization
// (spec §4.4 "has_exact()").
func (t *Tokenizer) HasExact() bool { return t.resolution.Exact }

// Encoding returns the resolved encoding, valid only when HasExact is
// true.
func (t *Tokenizer) Encoding() Encoding { return t.resolution.Encoding }

// Result is the tokenizer facade's output (spec §6 "Tokenizer facade
// output").
type Result struct {
	Tokens      []uint32
	ByteLen     uint64
	Approximate bool
}

// EncodeOptions controls special-token handling (spec §4.4 "Special
// tokens"). The zero value treats every special token name as ordinary
// bytes.
type EncodeOptions struct {
	// SpecialTokens, when non-empty, are matched verbatim against the
	// input before pre-tokenization; a matched name that is present in
	// the resolved vocabulary is emitted as its own rank, and one that is
	// absent is encoded as ordinary bytes.
	SpecialTokens []string
}

// Encode tokenizes text. When the tokenizer has an exact encoding, it
// concatenates EncodePiece over every piece pretokenize.Split produces
// (spec §4.4 "Contract"); otherwise it returns no token IDs, only ByteLen
// with Approximate set (Count turns that into len(text)/4).
func (t *Tokenizer) Encode(text string, opts EncodeOptions) (Result, error) {
	byteLen := uint64(len(text))
	if !t.HasExact() {
		return Result{ByteLen: byteLen, Approximate: true, Tokens: nil}, nil
	}

	spans := splitSpecialTokens(text, opts.SpecialTokens)
	var tokens []uint32
	for _, sp := range spans {
		if sp.isSpecial {
			rank, ok := t.vocab.RankOf([]byte(sp.text))
			if !ok {
				// Caller opted in but the name isn't in this vocabulary:
				// fall back to treating it as ordinary bytes.
				toks, err := t.encodePlain(sp.text)
				if err != nil {
					return Result{}, err
				}
				tokens = append(tokens, toks...)
				continue
			}
			tokens = append(tokens, rank)
			continue
		}
		toks, err := t.encodePlain(sp.text)
		if err != nil {
			return Result{}, err
		}
		tokens = append(tokens, toks...)
	}

	return Result{Tokens: tokens, ByteLen: byteLen, Approximate: false}, nil
}

func (t *Tokenizer) encodePlain(text string) ([]uint32, error) {
	var out []uint32
	for _, piece := range pretokenize.Split(t.grammar, []byte(text)) {
		toks, err := t.encoder.EncodePiece(piece)
		if err != nil {
			return nil, err
		}
		out = append(out, toks...)
	}
	return out, nil
}

// Count returns the exact or approximate token count (spec §4.4
// "count(text)").
func (t *Tokenizer) Count(text string, opts EncodeOptions) (uint64, error) {
	res, err := t.Encode(text, opts)
	if err != nil {
		return 0, err
	}
	if res.Approximate {
		return res.ByteLen / 4, nil
	}
	return uint64(len(res.Tokens)), nil
}

type span struct {
	text      string
	isSpecial bool
}

// splitSpecialTokens scans text left to right for the earliest occurrence
// of any name in specials, splitting it out as its own span; names never
// match unless the caller opted in by listing them (spec §4.4 "Special
// tokens").
func splitSpecialTokens(text string, specials []string) []span {
	if len(specials) == 0 || text == "" {
		return []span{{text: text}}
	}

	var spans []span
	rest := text
	for len(rest) > 0 {
		bestIdx := -1
		bestName := ""
		for _, name := range specials {
			if name == "" {
				continue
			}
			if idx := strings.Index(rest, name); idx >= 0 {
				if bestIdx == -1 || idx < bestIdx || (idx == bestIdx && len(name) > len(bestName)) {
					bestIdx = idx
					bestName = name
				}
			}
		}
		if bestIdx == -1 {
			spans = append(spans, span{text: rest})
			break
		}
		if bestIdx > 0 {
			spans = append(spans, span{text: rest[:bestIdx]})
		}
		spans = append(spans, span{text: bestName, isSpecial: true})
		rest = rest[bestIdx+len(bestName):]
	}
	return spans
}
