package main

import (
	"github.com/llmcost/llmcost/pkg/bpe"
	"github.com/llmcost/llmcost/pkg/pricing"
	"github.com/llmcost/llmcost/pkg/tokenizer"
)

// cliError carries the BSD-style exit code (spec §7 "Propagation policy")
// a command's RunE wants returned, without forcing every subcommand to
// call os.Exit itself.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

// exitCodeFor maps an error returned by a command to a BSD-style exit
// code: 64 usage/quota, 65 data, 66 no-input, 70 internal (spec §7).
func exitCodeFor(err error) int {
	if ce, ok := err.(*cliError); ok {
		return ce.code
	}

	switch e := err.(type) {
	case *tokenizer.Error:
		switch e.Kind {
		case tokenizer.ErrUnknownModel, tokenizer.ErrUnknownEncoding:
			return 64
		}
	case *bpe.Error:
		switch e.Kind {
		case bpe.ErrVocabularyCorrupt:
			return 65
		case bpe.ErrEncodePieceFailed:
			return 70
		}
	case *pricing.Error:
		switch e.Kind {
		case pricing.ErrUnknownModel:
			return 64
		case pricing.ErrParseError:
			return 65
		case pricing.ErrSignatureInvalid, pricing.ErrKeyMismatch, pricing.ErrKeyRevoked, pricing.ErrCriticallyStale:
			return 70
		}
	}
	return 70
}
