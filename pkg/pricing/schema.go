package pricing

// PriceDef is one model's pricing entry (spec §6 "Pricing JSON schema").
// Unknown JSON fields are tolerated by design; this struct only names the
// fields the core consumes.
type PriceDef struct {
	Provider                 string  `json:"provider"`
	DisplayName              string  `json:"display_name"`
	InputPricePerMTok        float64 `json:"input_price_per_mtok"`
	OutputPricePerMTok       float64 `json:"output_price_per_mtok"`
	OutputReasoningPerMTok   *float64 `json:"output_reasoning_price_per_mtok,omitempty"`
	CacheReadPricePerMTok    *float64 `json:"cache_read_price_per_mtok,omitempty"`
	CacheWritePricePerMTok   *float64 `json:"cache_write_price_per_mtok,omitempty"`
	ContextWindow            int64   `json:"context_window"`
	MaxOutputTokens          int64   `json:"max_output_tokens"`
	SupportsVision           bool    `json:"supports_vision"`
	SupportsFunctionCalling  bool    `json:"supports_function_calling"`
	Notes                    string  `json:"notes,omitempty"`
}

// Provider describes one pricing source provider (spec §6).
type Provider struct {
	DisplayName string `json:"display_name"`
	PricingURL  string `json:"pricing_url,omitempty"`
	APIBase     string `json:"api_base,omitempty"`
}

// catalogDoc mirrors the top-level pricing JSON document (spec §6).
type catalogDoc struct {
	Version    int                  `json:"version"`
	UpdatedAt  string               `json:"updated_at"`
	ValidUntil string               `json:"valid_until"`
	Source     string               `json:"source"`
	Models     map[string]PriceDef  `json:"models"`
	Aliases    map[string]string    `json:"aliases"`
	Providers  map[string]Provider  `json:"providers"`
}
