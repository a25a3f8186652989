package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"struct-layout/internal/compat"
	"struct-layout/internal/report"
	"struct-layout/internal/textfmt"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var (
		src      sourceFlags
		baseline string
	)

	cmd := &cobra.Command{
		Use:   "check [flags] INPUT...",
		Short: "Compare the current layout of a composite with a baseline file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			src.apply(cmd, cfg, args)
			if cmd.Flags().Changed("baseline") {
				cfg.Baseline = baseline
			}
			if cfg.Baseline == "" {
				return fmt.Errorf("no baseline layout given")
			}

			data, err := os.ReadFile(cfg.Baseline)
			if err != nil {
				return fmt.Errorf("failed to read baseline: %w", err)
			}
			base, err := textfmt.Unmarshal(data)
			if err != nil {
				return fmt.Errorf("baseline %s: %w", cfg.Baseline, err)
			}

			current, err := extract(cfg)
			if err != nil {
				return err
			}

			diags := compat.Compare(base, current)
			out := cmd.OutOrStdout()
			if err := report.WriteDiagnostics(out, diags, colorFor(out)); err != nil {
				return err
			}

			opts.log.Info("checked layout",
				zap.String("struct", cfg.Struct),
				zap.Int("errors", len(diags.Errors)),
				zap.Int("warnings", len(diags.Warnings)))

			if diags.HasErrors() {
				return fmt.Errorf("layout of %s is incompatible with %s: %w", cfg.Struct, cfg.Baseline, diags.Err())
			}
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().StringVarP(&baseline, "baseline", "b", "", "layout file to compare against")

	return cmd
}
