package gotypes

import (
	"errors"
	"fmt"
	"go/types"
	"os"
	"runtime"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedTypes |
	packages.NeedTypesSizes |
	packages.NeedImports |
	packages.NeedDeps

// Config selects the packages' build environment.
type Config struct {
	Dir      string // working directory for package patterns
	Compiler string // "gc" or "gccgo"; default gc
	Arch     string // GOARCH; default the host's
}

func (c Config) withDefaults() Config {
	if c.Compiler == "" {
		c.Compiler = "gc"
	}
	if c.Arch == "" {
		c.Arch = runtime.GOARCH
	}
	return c
}

// Load loads the packages matching patterns and returns an oracle whose
// primary package is the first one matched.
func Load(cfg Config, patterns ...string) (*Oracle, error) {
	cfg = cfg.withDefaults()

	sizes := types.SizesFor(cfg.Compiler, cfg.Arch)
	if sizes == nil {
		return nil, fmt.Errorf("no type sizes for compiler %q on %q", cfg.Compiler, cfg.Arch)
	}

	pcfg := &packages.Config{
		Mode: LoadMode,
		Dir:  cfg.Dir,
		Env:  append(os.Environ(), "GOARCH="+cfg.Arch),
	}

	pkgs, err := packages.Load(pcfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages match %v", patterns)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	o := FromPackage(pkgs[0].Types, sizes)
	for _, pkg := range pkgs[1:] {
		o.addPackage(pkg.Types)
	}

	return o, nil
}
