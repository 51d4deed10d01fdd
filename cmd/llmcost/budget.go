package main

import (
	"fmt"

	"github.com/llmcost/llmcost/internal/config"
)

// checkTokenBudget rejects a token count against the configured
// [budget].max_tokens guardrail (spec §10.3: "consumed by the CLI, not the
// core"). A zero MaxTokens means no limit is configured.
func checkTokenBudget(b config.Budget, tokens uint64) error {
	if b.MaxTokens <= 0 {
		return nil
	}
	if tokens > uint64(b.MaxTokens) {
		return &cliError{code: 64, err: fmt.Errorf(
			"token count %d exceeds configured budget.max_tokens %d", tokens, b.MaxTokens)}
	}
	return nil
}

// checkCostBudget rejects an estimated cost against the configured
// [budget].max_usd guardrail. A zero or negative MaxUSD means no limit is
// configured.
func checkCostBudget(b config.Budget, costUSD float64) error {
	if b.MaxUSD <= 0 {
		return nil
	}
	if costUSD > b.MaxUSD {
		return &cliError{code: 64, err: fmt.Errorf(
			"estimated cost $%.6f exceeds configured budget.max_usd $%.6f", costUSD, b.MaxUSD)}
	}
	return nil
}
