package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"struct-layout/internal/config"
	"struct-layout/internal/report"
	"struct-layout/internal/walker"
)

// globalOptions are shared by all subcommands.
type globalOptions struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "struct-layout",
		Short:         "Extract and check the memory layout of structs and unions",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")

	cmd.AddCommand(
		newExtractCmd(opts),
		newCheckCmd(opts),
		newShowCmd(opts),
	)

	return cmd
}

// setup loads the configuration and installs the logger.
func (o *globalOptions) setup(stderr io.Writer) error {
	cfg := config.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(o.configPath); err != nil {
			return err
		}
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	o.cfg = cfg
	o.log = newLogger(stderr, level)
	walker.SetLogger(o.log.Named("walker"))

	return nil
}

// newLogger builds a console logger writing to w.
func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		level,
	)

	return zap.New(core)
}

// colorFor reports whether output to w should be styled.
func colorFor(w io.Writer) report.Options {
	f, ok := w.(*os.File)
	return report.Options{Color: ok && report.IsTerminal(f)}
}
