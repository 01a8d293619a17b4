package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nixie",
	Short: "Drive a bank of RGB nixie tubes over a serial link",
	Long: `nixie talks to the Arduino nixie controller the same way a pinball
machine host does: it opens the configured serial port, waits for the
controller to boot, and sends one N,... line per tube.

Examples:
  # Show 42 on a four tube display starting at tube 10
  nixie render 10 42 --size 4 --color orange

  # Put the machine into attract mode
  nixie attract --config machine.yaml`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(debugFlag)
	},
}

var (
	configPath string
	portFlag   string
	debugFlag  bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the machine config (yaml or toml)")
	rootCmd.PersistentFlags().StringVarP(&portFlag, "port", "p", "", "serial port, overrides nixie.port (\"sim\" logs instead of writing)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "log every line sent or dropped")
}

func setupLogging(debug bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// signalContext is cancelled on Ctrl+C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
