package tokenizer

import (
	"sort"
	"strings"
)

// exactModels maps a bare model name to the encoding that tokenizes it
// exactly (spec §4.4 "Resolution tables are compile-time constants").
// Vendor-prefixed names (e.g. "openai/gpt-4o") are resolved by first
// stripping the "<vendor>/" prefix.
var exactModels = map[string]Encoding{
	"gpt-4o":                 O200kBase,
	"gpt-4o-mini":             O200kBase,
	"o1":                      O200kBase,
	"o1-mini":                 O200kBase,
	"o1-preview":              O200kBase,
	"o3":                      O200kBase,
	"o3-mini":                 O200kBase,
	"gpt-4":                   Cl100kBase,
	"gpt-4-turbo":             Cl100kBase,
	"gpt-4-32k":               Cl100kBase,
	"gpt-3.5-turbo":           Cl100kBase,
	"text-embedding-3-large":  Cl100kBase,
	"text-embedding-3-small":  Cl100kBase,
	"text-embedding-ada-002":  Cl100kBase,
}

// KnownModels returns the bare model names with a compiled-in exact
// encoding, sorted for stable CLI output.
func KnownModels() []string {
	names := make([]string, 0, len(exactModels))
	for name := range exactModels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolution describes how a model name was resolved (spec §4.4).
type Resolution struct {
	ModelName string
	Encoding  Encoding // only meaningful when Exact is true
	Exact     bool
}

// Resolve maps a model name to an encoding, or reports that only the
// heuristic approximation (spec §4.4 "bytes/4, no IDs") applies.
func Resolve(modelName string) (Resolution, error) {
	if modelName == "" {
		return Resolution{}, &Error{Kind: ErrUnknownModel, Reason: "empty model name"}
	}

	name := modelName
	if i := strings.IndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}

	if enc, ok := exactModels[name]; ok {
		return Resolution{ModelName: modelName, Encoding: enc, Exact: true}, nil
	}
	return Resolution{ModelName: modelName, Exact: false}, nil
}
