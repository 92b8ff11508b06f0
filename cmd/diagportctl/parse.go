package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"diagport/internal/domain"
	"diagport/internal/infra/envutil"
	"diagport/internal/infra/portspec"
)

func newParseCmd(logger *zap.Logger, opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [spec]",
		Short: "Parse a diagnostic port specification",
		Long: "Parses `<uri>[,<connect|listen>][,<suspend|nosuspend>]` with " +
			"`;`-separated alternatives (last wins). Without an argument the " +
			"spec is read from the environment.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := ""
			if len(args) == 1 {
				raw = args[0]
			} else {
				value, ok := envutil.NewOSEnvironment().Lookup(opts.envVarName())
				if !ok {
					return fmt.Errorf("no spec argument and %s is not set", opts.envVarName())
				}
				raw = value
			}

			spec := portspec.NewParser(logger).Parse(raw)
			if opts.jsonOutput {
				return printParseJSON(cmd, spec)
			}
			return printParseText(cmd, spec)
		},
	}
	cmd.Flags().StringVar(&opts.envVar, "env-var", domain.DefaultPortsEnvVar, "environment variable to read when no spec argument is given")
	return cmd
}

func (o *cliOptions) envVarName() string {
	if o.envVar == "" {
		return domain.DefaultPortsEnvVar
	}
	return o.envVar
}

func printParseJSON(cmd *cobra.Command, spec *domain.PortSpecification) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if spec == nil {
		return encoder.Encode(map[string]any{"usable": false})
	}
	return encoder.Encode(map[string]any{
		"usable":  true,
		"uri":     spec.URI,
		"connect": spec.Connect,
		"suspend": spec.Suspend,
	})
}

func printParseText(cmd *cobra.Command, spec *domain.PortSpecification) error {
	out := cmd.OutOrStdout()
	if spec == nil {
		fmt.Fprintln(out, "no usable configuration")
		// Unusable input is reported, not treated as a command failure;
		// the runtime itself degrades the same way.
		return nil
	}
	fmt.Fprintf(out, "uri:     %s\n", spec.URI)
	fmt.Fprintf(out, "connect: %t\n", spec.Connect)
	fmt.Fprintf(out, "suspend: %t\n", spec.Suspend)
	return nil
}
