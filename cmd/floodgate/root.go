package main

import (
	"github.com/spf13/cobra"

	"github.com/jassus213/floodgate/internal/config"
)

func newRootCommand() *cobra.Command {
	v := config.NewViper()

	root := &cobra.Command{
		Use:           "floodgate",
		Short:         "Jumping window rate limiter tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "config file (YAML)")

	root.AddCommand(newSimulateCommand())
	root.AddCommand(newServeCommand(v))

	return root
}
