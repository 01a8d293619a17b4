package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/p3nguindeity/MPF-Nixie/internal/display"
	"github.com/p3nguindeity/MPF-Nixie/internal/rgb"
)

var renderCmd = &cobra.Command{
	Use:   "render INDEX TEXT",
	Short: "Show text on the tubes starting at INDEX",
	Long: `Render TEXT on a display of --size tubes whose leftmost tube is INDEX.

Colors are per character; a single color applies to every tube. A color is
a name ("orange"), hex ("#ff8800" or "ff8800") or "r,g,b".

Examples:
  nixie render 5 7
  nixie render 10 12 --size 4 --color red --color 0,0,255`,
	Args: cobra.ExactArgs(2),
	RunE: runRender,
}

var (
	renderSize   int
	renderColors []string
)

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().IntVarP(&renderSize, "size", "s", 1, "number of tubes in the display")
	renderCmd.Flags().StringArrayVar(&renderColors, "color", nil, "color per character (repeatable)")
}

func runRender(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid tube index %q: %w", args[0], err)
	}

	colors := make([]rgb.Input, 0, len(renderColors))
	for _, c := range renderColors {
		colors = append(colors, rgb.Parse(c))
	}

	ctx, cancel := signalContext()
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	d, err := s.mgr.ConfigureDisplay(index, renderSize, nil)
	if err != nil {
		return err
	}
	d.Render(display.NewText(args[1], colors...), display.FlashNo, "")
	return nil
}
