package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khapa77/gong-dullabha/internal/client"
	"github.com/khapa77/gong-dullabha/internal/clock"
	"github.com/khapa77/gong-dullabha/internal/config"
	"github.com/khapa77/gong-dullabha/internal/weekday"
)

var (
	targetHost    string
	targetDayBase int
	targetSkip    bool
)

// targetCmd represents the target command
var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Point the CLI at a gong controller",
	Long: `Checks that the device answers on /api/time and saves its address in
the config file for future commands.

Example:
  gong-cli target --host http://gong.local
  gong-cli target --host http://localhost:5001 --day-base 1`,
	Run: func(cmd *cobra.Command, args []string) {
		host := strings.TrimRight(targetHost, "/")

		base, err := weekday.ParseBase(targetDayBase)
		if err != nil {
			fail("parsing --day-base", err)
		}

		if !targetSkip {
			fmt.Printf("Contacting %s...\n", host)
			api := client.New(client.ClientConfig{BaseURL: host, Timeout: cfg.Timeout, DayBase: base, Logger: log})
			t, err := api.GetTime(context.Background())
			if err != nil {
				fail("contacting device", err)
			}
			fmt.Printf("Device clock: %s\n", clock.Format(t))
		}

		if err := config.SaveTarget(host, base); err != nil {
			fail("saving configuration", err)
		}
		fmt.Println("Target saved. You can now run commands like 'gong-cli alarms list'.")
	},
}

func init() {
	rootCmd.AddCommand(targetCmd)

	targetCmd.Flags().StringVar(&targetHost, "host", "", "Device base URL (e.g. http://gong.local)")
	targetCmd.Flags().IntVar(&targetDayBase, "day-base", 0, "Number the backend uses for Monday (0 or 1)")
	targetCmd.Flags().BoolVar(&targetSkip, "no-check", false, "Save without contacting the device")

	_ = targetCmd.MarkFlagRequired("host")
}
