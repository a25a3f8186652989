package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"struct-layout/internal/config"
	"struct-layout/internal/layout"
	"struct-layout/internal/oracle"
	dwarforacle "struct-layout/internal/oracle/dwarf"
	"struct-layout/internal/oracle/gotypes"
	"struct-layout/internal/oracle/universe"
	"struct-layout/internal/walker"
)

// sourceFlags select the oracle and the composite to extract.
type sourceFlags struct {
	structName string
	source     string
	goArch     string
	goCompiler string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&s.structName, "struct", "s", "", "name of the struct or union to extract")
	fs.StringVar(&s.source, "source", "", "type source: go, dwarf or universe")
	fs.StringVar(&s.goArch, "go-arch", "", "GOARCH used to size Go types")
	fs.StringVar(&s.goCompiler, "go-compiler", "", "Go compiler used to size Go types: gc or gccgo")
}

// apply overrides cfg with the flags that were set and the inputs given.
func (s *sourceFlags) apply(cmd *cobra.Command, cfg *config.Config, inputs []string) {
	fs := cmd.Flags()
	if fs.Changed("struct") {
		cfg.Struct = s.structName
	}
	if fs.Changed("source") {
		cfg.Source = config.Source(s.source)
	}
	if fs.Changed("go-arch") {
		cfg.Go.Arch = s.goArch
	}
	if fs.Changed("go-compiler") {
		cfg.Go.Compiler = s.goCompiler
	}
	if len(inputs) > 0 {
		cfg.Inputs = inputs
	}
}

// openOracle builds the oracle cfg selects.
func openOracle(cfg *config.Config) (oracle.Oracle, error) {
	switch cfg.Source {
	case config.SourceGo:
		return gotypes.Load(gotypes.Config{
			Dir:      cfg.Go.Dir,
			Compiler: cfg.Go.Compiler,
			Arch:     cfg.Go.Arch,
		}, cfg.Inputs...)
	case config.SourceDWARF:
		return dwarforacle.Open(cfg.Inputs[0])
	case config.SourceUniverse:
		return universe.LoadFile(cfg.Inputs[0])
	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

// extract validates cfg, opens its oracle and walks the requested
// composite.
func extract(cfg *config.Config) (*layout.Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o, err := openOracle(cfg)
	if err != nil {
		return nil, err
	}

	return walker.Extract(cfg.Struct, o)
}
