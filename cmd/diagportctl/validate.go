package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"diagport/internal/app/startup"
	"diagport/internal/infra/config"
)

func newValidateCmd(logger *zap.Logger, opts *cliOptions) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a diagnostic options file",
		RunE: func(cmd *cobra.Command, args []string) error {
			diagOpts, err := config.NewLoader(logger).Load(configPath)
			if err != nil {
				return err
			}

			// Run the real initialization path against no collaborators:
			// validation and suspend coercion happen before any attach, so
			// a passing dry run means the file would initialize cleanly.
			coord := startup.NewCoordinator(startup.CoordinatorConfig{Logger: logger})
			if err := coord.Initialize(cmd.Context(), diagOpts); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			if opts.jsonOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(map[string]any{
					"valid":    true,
					"server":   diagOpts.Server != nil,
					"sessions": len(diagOpts.Sessions),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (%d session configs)\n", configPath, len(diagOpts.Sessions))
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "diagnostics.yaml", "path to diagnostic options file")
	return cmd
}
