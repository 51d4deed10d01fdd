package pricing

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"
)

const (
	algTag        = "Ed"
	pubKeyRecSize = 2 + 8 + 32
	sigRecSize    = 2 + 8 + 64
)

// publicKey is a parsed 42-byte Minisign-compatible public key record
// (spec §4.5.2).
type publicKey struct {
	keyID [8]byte
	key   ed25519.PublicKey
}

// parsePublicKey decodes the single base64 line of a minisign-style public
// key file (the untrusted comment line, if present, is ignored by the
// caller before this is invoked).
func parsePublicKey(b64Line string) (*publicKey, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64Line))
	if err != nil {
		return nil, &Error{Kind: ErrParseError, Reason: fmt.Sprintf("public key base64: %v", err)}
	}
	if len(raw) != pubKeyRecSize {
		return nil, &Error{Kind: ErrParseError, Reason: "public key record has wrong length"}
	}
	if string(raw[0:2]) != algTag {
		return nil, &Error{Kind: ErrSignatureInvalid, Reason: "unsupported public key algorithm"}
	}
	pk := &publicKey{key: ed25519.PublicKey(raw[10:42])}
	copy(pk.keyID[:], raw[2:10])
	return pk, nil
}

// signature is a parsed detached Minisign-compatible signature file (spec
// §4.5.2): four lines, untrusted comment / signature record / trusted
// comment / global signature.
type signature struct {
	keyID           [8]byte
	dataSig         [64]byte
	trustedComment  string
	globalSig       [64]byte
}

func parseSignature(sigFile []byte) (*signature, error) {
	lines := strings.SplitN(string(sigFile), "\n", 4)
	if len(lines) < 4 {
		return nil, &Error{Kind: ErrParseError, Reason: "signature file has fewer than 4 lines"}
	}

	rec, err := base64.StdEncoding.DecodeString(strings.TrimSpace(lines[1]))
	if err != nil {
		return nil, &Error{Kind: ErrParseError, Reason: fmt.Sprintf("signature record base64: %v", err)}
	}
	if len(rec) != sigRecSize {
		return nil, &Error{Kind: ErrParseError, Reason: "signature record has wrong length"}
	}
	if string(rec[0:2]) != algTag {
		return nil, &Error{Kind: ErrSignatureInvalid, Reason: "unsupported signature algorithm"}
	}

	trustedLine := lines[2]
	const prefix = "trusted comment: "
	if !strings.HasPrefix(trustedLine, prefix) {
		return nil, &Error{Kind: ErrParseError, Reason: "missing trusted comment line"}
	}

	globalLine := strings.TrimRight(lines[3], "\n")
	globalSig, err := base64.StdEncoding.DecodeString(strings.TrimSpace(globalLine))
	if err != nil {
		return nil, &Error{Kind: ErrParseError, Reason: fmt.Sprintf("global signature base64: %v", err)}
	}
	if len(globalSig) != 64 {
		return nil, &Error{Kind: ErrParseError, Reason: "global signature has wrong length"}
	}

	s := &signature{trustedComment: strings.TrimPrefix(trustedLine, prefix)}
	copy(s.keyID[:], rec[2:10])
	copy(s.dataSig[:], rec[10:74])
	copy(s.globalSig[:], globalSig)
	return s, nil
}

// revokedKeyIDs is the compiled-in revocation list (spec §4.5.2 step 6,
// §12 "Supplemented features"). A single placeholder entry, distinct from
// the production signing key embedded in internal/assets.
var revokedKeyIDs = [][8]byte{
	{0x00, 0xde, 0xad, 0xbe, 0xef, 0xca, 0xfe, 0x01},
}

// revokedQuickFilter is an xxhash-keyed set giving an O(1) probabilistic
// pre-filter in front of the exact key-ID compare, so a larger future
// revocation list doesn't turn every load into a linear scan.
var revokedQuickFilter = buildRevokedFilter(revokedKeyIDs)

func buildRevokedFilter(ids [][8]byte) map[uint64]struct{} {
	m := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		m[xxhash.Sum64(id[:])] = struct{}{}
	}
	return m
}

func isRevoked(keyID [8]byte) bool {
	if _, maybe := revokedQuickFilter[xxhash.Sum64(keyID[:])]; !maybe {
		return false
	}
	for _, id := range revokedKeyIDs {
		if id == keyID {
			return true
		}
	}
	return false
}

// verifyResult carries the outcome of a successful verification, including
// whether the global (trusted-comment) signature checked out.
type verifyResult struct {
	trustedCommentValid bool
	trustedComment       string
}

// verify implements the six-step protocol of spec §4.5.2. data is the raw
// pricing JSON bytes; pubKeyFile and sigFile are the raw bytes of the
// public key and signature files respectively.
func verify(data, pubKeyFile, sigFile []byte) (*verifyResult, error) {
	pubLine, err := lastNonEmptyLine(pubKeyFile)
	if err != nil {
		return nil, err
	}
	pk, err := parsePublicKey(pubLine)
	if err != nil {
		return nil, err
	}

	sig, err := parseSignature(sigFile)
	if err != nil {
		return nil, err
	}

	if sig.keyID != pk.keyID {
		return nil, &Error{Kind: ErrKeyMismatch, Reason: "signature key id does not match public key"}
	}

	digest := blake2b.Sum512(data)
	if !ed25519.Verify(pk.key, digest[:], sig.dataSig[:]) {
		return nil, &Error{Kind: ErrSignatureInvalid, Reason: "data signature did not verify"}
	}

	globalMsg := append(append([]byte{}, sig.dataSig[:]...), []byte(sig.trustedComment+"\n")...)
	trustedOK := ed25519.Verify(pk.key, globalMsg, sig.globalSig[:])

	if isRevoked(sig.keyID) {
		return nil, &Error{Kind: ErrKeyRevoked, Reason: "signing key is on the revocation list"}
	}

	return &verifyResult{trustedCommentValid: trustedOK, trustedComment: sig.trustedComment}, nil
}

// lastNonEmptyLine returns the last non-empty line of a minisign-style
// two-line key file (the untrusted comment is line 1, the base64 record
// is line 2).
func lastNonEmptyLine(b []byte) (string, error) {
	lines := bytes.Split(bytes.TrimRight(b, "\n"), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		if len(bytes.TrimSpace(lines[i])) > 0 {
			return string(lines[i]), nil
		}
	}
	return "", &Error{Kind: ErrParseError, Reason: "key file has no content line"}
}
