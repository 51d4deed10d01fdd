package main

import (
	"github.com/spf13/cobra"

	"github.com/llmcost/llmcost/internal/config"
	"github.com/llmcost/llmcost/internal/logx"
)

var (
	cfgPath    string
	verbose    bool
	cfg        config.Config
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "llmcost",
		Short:         "Count tokens and estimate cost for LLM API calls",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(cfgPath)
			if err != nil {
				return &cliError{code: 64, err: err}
			}
			cfg = loaded
			if verbose {
				logx.SetLevel("debug")
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a TOML configuration file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newCountCmd())
	root.AddCommand(newPriceCmd())
	root.AddCommand(newModelsCmd())
	return root
}
