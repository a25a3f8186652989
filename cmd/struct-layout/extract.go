package main

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"struct-layout/internal/output"
	"struct-layout/internal/textfmt"
)

func newExtractCmd(opts *globalOptions) *cobra.Command {
	var (
		src  sourceFlags
		out  string
		dump bool
	)

	cmd := &cobra.Command{
		Use:   "extract [flags] INPUT...",
		Short: "Extract the layout of a composite and write it",
		Long: "Extract the layout of a struct or union and of every composite it embeds by value,\n" +
			"then write it atomically to the output file, or to stdout for \"-\".\n" +
			"Nothing is written when extraction fails.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			src.apply(cmd, cfg, args)
			if cmd.Flags().Changed("output") {
				cfg.Output = out
			}

			tbl, err := extract(cfg)
			if err != nil {
				return err
			}

			if dump {
				spew.Fdump(cmd.ErrOrStderr(), tbl)
			}

			if err := output.Write(cfg.Output, textfmt.Marshal(tbl), cmd.OutOrStdout()); err != nil {
				return err
			}

			opts.log.Info("wrote layout",
				zap.String("struct", cfg.Struct),
				zap.Int("composites", tbl.Len()),
				zap.String("output", cfg.Output))

			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "", `output file, "-" for stdout`)
	cmd.Flags().BoolVar(&dump, "dump", false, "dump the extracted table to stderr")

	return cmd
}
