// Package assets embeds the data every llmcost binary ships with: the two
// built-in vocabularies and the signed pricing catalog, so the tool works
// fully offline with no install-time download step.
package assets

import _ "embed"

//go:embed cl100k_base.tiktoken
var Cl100kBaseTiktoken []byte

//go:embed o200k_base.tiktoken
var O200kBaseTiktoken []byte

//go:embed pricing_db.json
var PricingDB []byte

//go:embed pricing_db.json.sig
var PricingDBSignature []byte

//go:embed llmcost.pub
var PublicKey []byte
