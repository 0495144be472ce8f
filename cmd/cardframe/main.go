package main

import (
	"fmt"
	"log"

	"github.com/dunamismax/cardframe/internal/config"
	"github.com/dunamismax/cardframe/internal/pipeline"
	"github.com/spf13/cobra"
)

// rootCmd is the one-shot renderer: cut the card frame out of a screenshot
// and write it next to the source. With no arguments it reproduces the
// original workflow, ChangeList.png -> ChangeList_crop.png at 1200x630.
var rootCmd = &cobra.Command{
	Use:   "cardframe [source] [output]",
	Short: "Cut a fixed-size preview card from a screenshot",
	Long: `Resize an image to the card frame width keeping its aspect ratio, crop the
frame from the top-left corner, and write the result. The source must be tall
enough that the resized height covers the frame.`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load().Card

		srcPath := cfg.SourcePath
		dstPath := cfg.OutputPath
		if len(args) >= 1 {
			srcPath = args[0]
		}
		if len(args) == 2 {
			dstPath = args[1]
		}

		width, err := cmd.Flags().GetInt("width")
		if err != nil {
			return err
		}
		if width == 0 {
			width = cfg.FrameWidth
		}
		height, err := cmd.Flags().GetInt("height")
		if err != nil {
			return err
		}
		if height == 0 {
			height = cfg.FrameHeight
		}

		if err := pipeline.Startup(); err != nil {
			return fmt.Errorf("initialize renderer: %w", err)
		}
		defer pipeline.Shutdown()

		if err := pipeline.RenderFile(cmd.Context(), srcPath, dstPath, width, height); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %dx%d card to %s\n", width, height, dstPath)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("cardframe: %v", err)
	}
}

func init() {
	rootCmd.Flags().IntP("width", "W", 0, "card frame width in pixels (default 1200)")
	rootCmd.Flags().IntP("height", "H", 0, "card frame height in pixels (default 630)")
}
