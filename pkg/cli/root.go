/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package cli

import (
	"context"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/traas-stack/statsdump/pkg/appconfig"
	"github.com/traas-stack/statsdump/pkg/logger"
	"github.com/traas-stack/statsdump/pkg/pipeline"
	"github.com/traas-stack/statsdump/pkg/plugin/input"
	_ "github.com/traas-stack/statsdump/pkg/plugin/input/all"
	"github.com/traas-stack/statsdump/pkg/plugin/output"
	_ "github.com/traas-stack/statsdump/pkg/plugin/output/console"
	"go.uber.org/zap"
)

type (
	RootCommand struct {
		cmd *cobra.Command
		// data rows go here, everything else goes to stderr
		out io.Writer

		configPath string
		procRoot   string
		debug      bool

		// run drives the built pipeline, replaced in tests
		run func(ctx context.Context, p *pipeline.Pipeline) error
	}
)

func NewRootCommand(out io.Writer) *RootCommand {
	root := &RootCommand{
		out: out,
		run: runGroup,
	}

	cmd := &cobra.Command{
		Use:   "statsdump",
		Short: "Periodically dump host statistics as CSV",
		Long: `statsdump samples one kind of host statistics at a fixed interval and writes
every sample to stdout as CSV. Diagnostics are written to stderr.`,
		Version:       appconfig.Version(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		// subcommand flags given without a subcommand still end up as a no-op
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		Run: func(cmd *cobra.Command, args []string) {
			logger.Infoz("nothing to do", zap.Strings("inputs", input.Types()))
		},
	}
	cmd.SetOut(os.Stderr)
	cmd.SetErr(os.Stderr)

	pflags := cmd.PersistentFlags()
	pflags.StringVar(&root.configPath, "config", "", "Config file path (default: statsdump.yaml or statsdump.toml in the working directory)")
	pflags.StringVar(&root.procRoot, "proc-root", "", "Where procfs is mounted (default: /proc)")
	pflags.BoolVar(&root.debug, "debug", false, "Enable debug logging")

	root.cmd = cmd
	root.addSubCommands()
	return root
}

func (r *RootCommand) addSubCommands() {
	r.cmd.AddCommand(
		r.newDomainCommand("sys", "Dump memory and load average of the host", true),
		r.newDomainCommand("proc", "Dump resource usage of every process", false),
		r.newDomainCommand("mount", "Dump usage of every mounted filesystem", false),
		r.newDomainCommand("swap", "Dump usage of every swap area", false),
	)
}

func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// loadConfig applies explicitly set flags on top of file and env config.
func (r *RootCommand) loadConfig(cmd *cobra.Command) (*appconfig.AgentConfig, error) {
	cfg, err := appconfig.Load(r.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("proc-root") {
		cfg.ProcRoot = r.procRoot
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = r.debug
	}
	return cfg, nil
}

func (r *RootCommand) startPipeline(ctx context.Context, inputType string, cfg *appconfig.AgentConfig) error {
	logger.DebugEnabled = cfg.Debug

	in, err := input.Parse(inputType, cfg)
	if err != nil {
		return err
	}
	out, err := output.Parse(output.ConsoleType, r.out)
	if err != nil {
		return err
	}
	// run identifies this invocation in a shared log
	logger.Infoz("[cli] start",
		zap.String("run", uuid.NewString()),
		zap.String("version", appconfig.Version()),
		zap.String("input", inputType),
		zap.String("procRoot", cfg.ProcRoot))
	return r.run(ctx, pipeline.NewPipeline(inputType, in, out, cfg.Interval()))
}

// Execute runs the command line against os.Args and returns the process exit code.
func Execute() int {
	defer logger.Sync()
	if err := NewRootCommand(os.Stdout).Execute(); err != nil {
		logger.Errorf("%+v", err)
		return 1
	}
	return 0
}
