package pricing

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/llmcost/llmcost/internal/assets"
	"github.com/llmcost/llmcost/internal/logx"
)

// Catalog is an immutable, verified pricing catalog (spec §4.5). Safe for
// concurrent use once constructed.
type Catalog struct {
	doc        catalogDoc
	validUntil time.Time
	staleness  Staleness
	source     string
}

// Options configures Load.
type Options struct {
	// CacheDirOverride, when non-empty, replaces the default cache
	// directory resolution (internal/config's cache_dir).
	CacheDirOverride string
	// ForceStale suppresses the Critical rejection of a cache-loaded
	// catalog only (spec §12 "--force-stale semantics"); it never
	// suppresses KeyRevoked, KeyMismatch, or InvalidSignature.
	ForceStale bool
}

// Load implements the §4.5.1 load order: try the user cache directory
// first, falling through silently to the embedded catalog on any failure;
// the embedded catalog's own verification failure is fatal.
func Load(opts Options) (*Catalog, error) {
	dir := cacheDir(opts.CacheDirOverride)
	if data, sig, ok := readCachedCatalog(dir); ok {
		cat, err := buildCatalog(data, sig, assets.PublicKey, "cache", opts.ForceStale)
		if err == nil {
			return cat, nil
		}
		logx.L().Debugw("cached pricing catalog rejected, falling back to embedded", "reason", err)
	}

	return buildCatalog(assets.PricingDB, assets.PricingDBSignature, assets.PublicKey, "embedded", opts.ForceStale)
}

// buildCatalog verifies data against sig/pubKey, parses it, and applies
// the staleness policy. source is "cache" or "embedded" and controls
// whether a Critical staleness is rejectable (cache) or merely warned
// about (embedded), per spec §4.5.3.
func buildCatalog(data, sig, pubKey []byte, source string, forceStale bool) (*Catalog, error) {
	vr, err := verify(data, pubKey, sig)
	if err != nil {
		return nil, err
	}
	if !vr.trustedCommentValid {
		logx.L().Warnw("pricing catalog trusted comment did not verify", "source", source)
	}

	var doc catalogDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Kind: ErrParseError, Reason: err.Error()}
	}

	validUntil, err := parseTimestamp(doc.ValidUntil)
	if err != nil {
		return nil, &Error{Kind: ErrParseError, Reason: "valid_until: " + err.Error()}
	}

	st := classifyStaleness(time.Now(), validUntil)
	switch st {
	case Warning:
		logx.L().Warnw("pricing catalog is stale", "source", source, "valid_until", doc.ValidUntil)
	case Critical:
		if source == "cache" && !forceStale {
			return nil, &Error{Kind: ErrCriticallyStale, Reason: "cached catalog is critically stale"}
		}
		if source == "embedded" && !forceStale {
			logx.L().Errorw("embedded pricing catalog is critically stale; proceeding with best available data", "valid_until", doc.ValidUntil)
		}
	}

	return &Catalog{doc: doc, validUntil: validUntil, staleness: st, source: source}, nil
}

// parseTimestamp accepts both ISO-8601 and epoch-seconds forms (spec
// §4.5.3 "format-version-dependent").
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, &Error{Kind: ErrParseError, Reason: "unrecognized timestamp format: " + s}
}

// Staleness returns the catalog's freshness classification at load time.
func (c *Catalog) Staleness() Staleness { return c.staleness }

// Source reports whether the catalog came from "cache" or "embedded".
func (c *Catalog) Source() string { return c.source }

// Get resolves model_name through the aliases table (one level of
// indirection, spec §4.5.4) and then the models table.
func (c *Catalog) Get(modelName string) (PriceDef, bool) {
	if canonical, ok := c.doc.Aliases[modelName]; ok {
		if def, ok := c.doc.Models[canonical]; ok {
			return def, true
		}
	}
	if def, ok := c.doc.Models[modelName]; ok {
		return def, true
	}
	return PriceDef{}, false
}

// Calculate implements the §4.5.4 cost formula.
func Calculate(def PriceDef, inputTokens, outputTokens, reasoningTokens int64) float64 {
	const perMillion = 1_000_000.0

	inputCost := float64(inputTokens) * def.InputPricePerMTok / perMillion

	standardOutput := outputTokens - reasoningTokens
	if standardOutput < 0 {
		standardOutput = 0
	}
	outputCost := float64(standardOutput) * def.OutputPricePerMTok / perMillion

	reasoningRate := def.OutputPricePerMTok
	if def.OutputReasoningPerMTok != nil {
		reasoningRate = *def.OutputReasoningPerMTok
	}
	reasoningCost := float64(reasoningTokens) * reasoningRate / perMillion

	return inputCost + outputCost + reasoningCost
}
