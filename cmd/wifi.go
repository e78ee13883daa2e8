package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	wifiSSID string
	wifiPass string
)

// wifiCmd represents the wifi command
var wifiCmd = &cobra.Command{
	Use:   "wifi",
	Short: "Change the Wi-Fi network the device joins",
	Long: `Sends new Wi-Fi credentials to the ESP32. The device restarts and
joins the new network; it may come back under a different address.`,
	Example: `  gong-cli wifi --ssid ashram --pass secret`,
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		if !confirmer().Confirm(fmt.Sprintf("Switch the device to network '%s'? It will restart.", wifiSSID)) {
			fmt.Println("Cancelled.")
			return
		}

		if err := api.SetWiFi(context.Background(), wifiSSID, wifiPass); err != nil {
			fail("updating Wi-Fi", err)
		}
		fmt.Println("Credentials saved. The device is restarting.")
	},
}

func init() {
	rootCmd.AddCommand(wifiCmd)

	wifiCmd.Flags().StringVar(&wifiSSID, "ssid", "", "Network name")
	wifiCmd.Flags().StringVar(&wifiPass, "pass", "", "Network password")

	_ = wifiCmd.MarkFlagRequired("ssid")
	_ = wifiCmd.MarkFlagRequired("pass")
}
