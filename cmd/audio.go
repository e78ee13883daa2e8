package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/khapa77/gong-dullabha/internal/panel"
)

func newPanel() *panel.Panel {
	return panel.New(getClient(), cfg.Settings, log)
}

// runPanel prints the panel status line and exits non-zero on failure.
func runPanel(p *panel.Panel, err error) {
	if err != nil {
		if p.Status() != "" {
			fmt.Println(p.Status())
		} else {
			fmt.Printf("Error: %v\n", err)
		}
		exit(1)
	}
	fmt.Println(p.Status())
}

// Parent Command
var audioCmd = &cobra.Command{
	Use:   "audio",
	Short: "Control the DFPlayer directly",
	Long:  `Start, stop or select tracks and set the volume on the device's MP3 player.`,
}

var audioPlayCmd = &cobra.Command{
	Use:   "play",
	Short: "Start playback",
	Run: func(cmd *cobra.Command, args []string) {
		p := newPanel()
		runPanel(p, p.Play(context.Background()))
	},
}

var audioStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop playback",
	Run: func(cmd *cobra.Command, args []string) {
		p := newPanel()
		runPanel(p, p.Stop(context.Background()))
	},
}

var audioTrackCmd = &cobra.Command{
	Use:     "track <number>",
	Short:   "Play a track from the SD card",
	Args:    cobra.ExactArgs(1),
	Example: `  gong-cli audio track 2`,
	Run: func(cmd *cobra.Command, args []string) {
		num, err := strconv.Atoi(args[0])
		if err != nil {
			fail("parsing track number", err)
		}
		p := newPanel()
		runPanel(p, p.Track(context.Background(), num))
	},
}

var audioVolumeCmd = &cobra.Command{
	Use:   "volume <0-30>",
	Short: "Set the player volume",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		value, err := strconv.Atoi(args[0])
		if err != nil {
			fail("parsing volume", err)
		}
		p := newPanel()
		runPanel(p, p.Volume(context.Background(), value))
	},
}

func init() {
	rootCmd.AddCommand(audioCmd)
	audioCmd.AddCommand(audioPlayCmd)
	audioCmd.AddCommand(audioStopCmd)
	audioCmd.AddCommand(audioTrackCmd)
	audioCmd.AddCommand(audioVolumeCmd)
}
