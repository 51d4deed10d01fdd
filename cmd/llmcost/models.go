package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llmcost/llmcost/pkg/tokenizer"
)

func newModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List models with a compiled-in exact encoding",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range tokenizer.KnownModels() {
				tok, err := tokenizer.New(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-28s %s\n", name, tok.Encoding())
			}
			return nil
		},
	}
	return cmd
}
