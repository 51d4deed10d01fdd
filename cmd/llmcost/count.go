package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/llmcost/llmcost/pkg/tokenizer"
)

func newCountCmd() *cobra.Command {
	var (
		model        string
		jsonOut      bool
		specialToken []string
	)

	cmd := &cobra.Command{
		Use:   "count [text]",
		Short: "Count tokens in text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := model
			if m == "" {
				m = cfg.DefaultModel
			}
			if m == "" {
				return &cliError{code: 64, err: fmt.Errorf("no --model given and no default_model configured")}
			}

			text, err := readInput(args)
			if err != nil {
				return &cliError{code: 66, err: err}
			}

			tok, err := tokenizer.New(m)
			if err != nil {
				return err
			}
			res, err := tok.Encode(text, tokenizer.EncodeOptions{SpecialTokens: specialToken})
			if err != nil {
				return err
			}

			count := uint64(len(res.Tokens))
			if res.Approximate {
				count = res.ByteLen / 4
			}
			if err := checkTokenBudget(cfg.Budget, count); err != nil {
				return err
			}

			if jsonOut {
				out := countOutput{
					Tokens:      count,
					Bytes:       res.ByteLen,
					Approximate: res.Approximate,
					Model:       m,
				}
				if tok.HasExact() {
					out.Encoding = tok.Encoding().String()
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "model name (e.g. gpt-4o, openai/gpt-4o)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit a JSON object instead of a bare count")
	cmd.Flags().StringSliceVar(&specialToken, "special-token", nil, "special token name to recognize verbatim (repeatable)")
	return cmd
}

// countOutput is the CLI's JSON rendering of the tokenizer facade output
// (spec §6 "Tokenizer facade output"), with model/encoding added per
// §12 "count CLI output".
type countOutput struct {
	Tokens      uint64 `json:"tokens"`
	Bytes       uint64 `json:"bytes"`
	Approximate bool   `json:"approximate"`
	Model       string `json:"model"`
	Encoding    string `json:"encoding,omitempty"`
}

func readInput(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("no input: pass text as an argument or pipe it on stdin")
	}
	return string(data), nil
}
