package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type cliOptions struct {
	jsonOutput bool
	envVar     string
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		logger.Fatal("command failed", zap.Error(err))
	}
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	opts := cliOptions{}

	root := &cobra.Command{
		Use:   "diagportctl",
		Short: "Inspect and validate diagnostic port configuration",
	}
	bindRootFlags(root.PersistentFlags(), &opts)

	root.AddCommand(
		newParseCmd(logger, &opts),
		newValidateCmd(logger, &opts),
	)

	return root
}

func bindRootFlags(flags *pflag.FlagSet, opts *cliOptions) {
	flags.BoolVar(&opts.jsonOutput, "json", false, "output JSON")
}
