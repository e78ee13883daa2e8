package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/khapa77/gong-dullabha/internal/clock"
	"github.com/khapa77/gong-dullabha/pkg/models"
)

// Parent Command
var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Show the device clock",
}

var clockShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the device time once",
	Run: func(cmd *cobra.Command, args []string) {
		t, err := getClient().GetTime(context.Background())
		if err != nil {
			fail("fetching device time", err)
		}
		if jsonOutput {
			printJSON(t)
			return
		}
		fmt.Println(clock.Format(t))
	},
}

var clockWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the device clock until interrupted",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		display := clock.DisplayFunc(func(t models.ServerTime) {
			fmt.Printf("\r%-30s", clock.Format(t))
		})
		p := clock.NewPoller(getClient(), display, cfg.ClockInterval, log)

		err := p.Run(ctx)
		fmt.Println()
		if err != nil && !errors.Is(err, context.Canceled) {
			fail("watching clock", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(clockCmd)
	clockCmd.AddCommand(clockShowCmd)
	clockCmd.AddCommand(clockWatchCmd)
}
