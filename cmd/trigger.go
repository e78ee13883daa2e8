package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/khapa77/gong-dullabha/internal/panel"
)

var (
	triggerDuration int
	triggerVolume   int
)

// triggerCmd represents the trigger command
var triggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Sound the gong now",
	Long: `Rings the gong immediately. Duration and volume default to the saved
settings (see 'gong-cli settings show').`,
	Example: `  gong-cli trigger
  gong-cli trigger --duration 10 --volume 25`,
	Run: func(cmd *cobra.Command, args []string) {
		s := cfg.Settings
		if cmd.Flags().Changed("duration") {
			s.Duration = triggerDuration
		}
		if cmd.Flags().Changed("volume") {
			s.Volume = triggerVolume
		}
		if err := panel.ValidateSettings(s); err != nil {
			fail("checking trigger values", err)
		}

		p := panel.New(getClient(), s, log)
		runPanel(p, p.Trigger(context.Background()))
	},
}

func init() {
	rootCmd.AddCommand(triggerCmd)

	triggerCmd.Flags().IntVar(&triggerDuration, "duration", 0, "Ring duration in seconds (overrides settings)")
	triggerCmd.Flags().IntVar(&triggerVolume, "volume", 0, "Volume 0-30 (overrides settings)")
}
