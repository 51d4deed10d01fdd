package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llmcost/llmcost/pkg/pricing"
)

func newPriceCmd() *cobra.Command {
	var (
		model           string
		inputTokens     int64
		outputTokens    int64
		reasoningTokens int64
		jsonOut         bool
		forceStale      bool
	)

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Estimate the cost of an API call",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := model
			if m == "" {
				m = cfg.DefaultModel
			}
			if m == "" {
				return &cliError{code: 64, err: fmt.Errorf("no --model given and no default_model configured")}
			}

			cat, err := pricing.Load(pricing.Options{
				CacheDirOverride: cfg.CacheDir,
				ForceStale:       forceStale || cfg.ForceStale,
			})
			if err != nil {
				return err
			}

			def, ok := cat.Get(m)
			if !ok {
				return &pricing.Error{Kind: pricing.ErrUnknownModel, Reason: m}
			}

			cost := pricing.Calculate(def, inputTokens, outputTokens, reasoningTokens)
			if err := checkCostBudget(cfg.Budget, cost); err != nil {
				return err
			}
			if err := checkTokenBudget(cfg.Budget, uint64(inputTokens+outputTokens)); err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(priceOutput{
					Model:          m,
					InputTokens:    inputTokens,
					OutputTokens:   outputTokens,
					ReasoningTokens: reasoningTokens,
					CostUSD:        cost,
					Staleness:      cat.Staleness().String(),
					Source:         cat.Source(),
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "$%.6f\n", cost)
			return nil
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "model name")
	cmd.Flags().Int64Var(&inputTokens, "input-tokens", 0, "number of input tokens")
	cmd.Flags().Int64Var(&outputTokens, "output-tokens", 0, "number of output tokens")
	cmd.Flags().Int64Var(&reasoningTokens, "reasoning-tokens", 0, "number of reasoning tokens (subset of output tokens)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit a JSON object instead of a bare dollar amount")
	cmd.Flags().BoolVar(&forceStale, "force-stale", false, "use a critically-stale cached catalog instead of falling back to embedded")
	return cmd
}

type priceOutput struct {
	Model           string  `json:"model"`
	InputTokens     int64   `json:"input_tokens"`
	OutputTokens    int64   `json:"output_tokens"`
	ReasoningTokens int64   `json:"reasoning_tokens"`
	CostUSD         float64 `json:"cost_usd"`
	Staleness       string  `json:"staleness"`
	Source          string  `json:"source"`
}
