package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"struct-layout/internal/output"
	"struct-layout/internal/report"
	"struct-layout/internal/textfmt"
)

func newShowCmd(_ *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: `Print a layout file as tables ("-" reads stdin)`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != output.Stdout {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			tbl, err := textfmt.Decode(r)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return report.Write(out, tbl, colorFor(out))
		},
	}
}
