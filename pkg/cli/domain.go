/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package cli

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/traas-stack/statsdump/pkg/appconfig"
)

type (
	domainOptions struct {
		id           string
		intervalSecs string
	}
)

func (r *RootCommand) newDomainCommand(inputType, short string, withID bool) *cobra.Command {
	opts := &domainOptions{}

	cmd := &cobra.Command{
		Use:   inputType,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := r.loadConfig(cmd)
			if err != nil {
				return err
			}
			if withID && cmd.Flags().Changed("id") {
				cfg.ID = opts.id
			}
			if cmd.Flags().Changed("interval-secs") {
				cfg.IntervalSecs = opts.intervalSecs
			}
			return r.startPipeline(cmd.Context(), inputType, cfg)
		},
	}

	opts.addFlags(cmd.Flags(), withID)
	return cmd
}

func (o *domainOptions) addFlags(flags *pflag.FlagSet, withID bool) {
	if withID {
		flags.StringVarP(&o.id, "id", "i", appconfig.DefaultID, "Label written in the id column")
	}
	// a string so that bad input falls back to the default instead of failing
	flags.StringVarP(&o.intervalSecs, "interval-secs", "s", strconv.Itoa(appconfig.DefaultIntervalSecs), "Seconds to sleep between samples")
}
