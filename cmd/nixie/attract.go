package main

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/p3nguindeity/MPF-Nixie/internal/events"
)

var attractCmd = &cobra.Command{
	Use:   "attract",
	Short: "Publish the attract-mode event",
	Long: `Publish mode_attract_started as the machine would when a game ends.

With auto_attract: a the controller starts its own animation. With
--hold the command keeps the link open, then publishes game_started
so tube updates are accepted again.`,
	Args: cobra.NoArgs,
	RunE: runAttract,
}

var attractHold time.Duration

func init() {
	rootCmd.AddCommand(attractCmd)

	attractCmd.Flags().DurationVar(&attractHold, "hold", 0, "stay in attract for this long, then start a game")
}

func runAttract(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	if s.cfg.AttractMode() == "" {
		log.Warn().Msg("auto_attract is not configured; the event has no effect")
	}
	s.bus.Publish(events.AttractStarted, nil)
	if attractHold <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
	case <-time.After(attractHold):
		s.bus.Publish(events.GameStarted, nil)
	}
	return nil
}
