package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/khapa77/gong-dullabha/internal/config"
)

var (
	setDuration int
	setVolume   int
	setAutoSync bool
	setTimezone string
)

// Parent Command
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage default gong settings",
	Long: `The settings are kept in the local config file and pushed to the device.
They are never read back from the device.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved settings",
	Run: func(cmd *cobra.Command, args []string) {
		s := cfg.Settings
		if jsonOutput {
			printJSON(s)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintf(w, "Duration:\t%ds\n", s.Duration)
		fmt.Fprintf(w, "Volume:\t%d\n", s.Volume)
		fmt.Fprintf(w, "Auto sync:\t%t\n", s.AutoSync)
		fmt.Fprintf(w, "Timezone:\t%s\n", s.Timezone)
		w.Flush()
	},
}

var settingsSetCmd = &cobra.Command{
	Use:     "set",
	Short:   "Change settings and push them to the device",
	Example: `  gong-cli settings set --duration 45 --volume 18 --timezone UTC+5`,
	Run: func(cmd *cobra.Command, args []string) {
		s := cfg.Settings
		flags := cmd.Flags()
		if flags.Changed("duration") {
			s.Duration = setDuration
		}
		if flags.Changed("volume") {
			s.Volume = setVolume
		}
		if flags.Changed("auto-sync") {
			s.AutoSync = setAutoSync
		}
		if flags.Changed("timezone") {
			s.Timezone = setTimezone
		}

		p := newPanel()
		err := p.ApplySettings(context.Background(), s)

		// the mirror keeps the new values even when the push failed
		if mirrored := p.Settings(); mirrored == s {
			if saveErr := config.SaveSettings(mirrored); saveErr != nil {
				fmt.Printf("Warning: could not save settings locally: %v\n", saveErr)
			}
		}
		runPanel(p, err)
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)

	settingsSetCmd.Flags().IntVar(&setDuration, "duration", 0, "Default ring duration in seconds")
	settingsSetCmd.Flags().IntVar(&setVolume, "volume", 0, "Default volume 0-30")
	settingsSetCmd.Flags().BoolVar(&setAutoSync, "auto-sync", true, "Sync the device clock automatically")
	settingsSetCmd.Flags().StringVar(&setTimezone, "timezone", "", "Timezone, e.g. UTC+3")
}
