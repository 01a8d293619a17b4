package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p3nguindeity/MPF-Nixie/internal/config"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Open the link and print its settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.close()

		fmt.Fprintln(cmd.OutOrStdout(), s.mgr.Info())
		return nil
	},
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config PATH",
	Short: "Write a starter config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := config.Default()
		c.Port = portFlag
		if c.Port == "" {
			c.Port = "/dev/ttyUSB0"
		}
		c.DefaultColor = []any{255, 0, 0}
		c.AutoAttract = "a"
		c.IgnoreUpdatesInAttract = true
		if err := config.Save(args[0], &c); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(initConfigCmd)
}
