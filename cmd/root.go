package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khapa77/gong-dullabha/internal/alarms"
	"github.com/khapa77/gong-dullabha/internal/client"
	"github.com/khapa77/gong-dullabha/internal/config"
	"github.com/khapa77/gong-dullabha/internal/logger"
	"github.com/khapa77/gong-dullabha/internal/weekday"
)

var (
	cfgFile    string
	jsonOutput bool
	assumeYes  bool

	cfg *config.Config
	log = zap.NewNop()

	// exit is swapped out by tests.
	exit = os.Exit
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gong-cli",
	Short: "A CLI for the meditation gong controller",
	Long: `Manage the alarm schedule, audio and settings of an ESP32 gong
controller (or the Flask development backend) over its REST API.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gong-cli.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to every confirmation prompt")
}

func initConfig() {
	config.InitConfig(cfgFile)

	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		exit(1)
	}

	log, err = logger.NewLogger(cfg.Log)
	if err != nil {
		fmt.Printf("Error building logger: %v\n", err)
		exit(1)
	}
}

// getClient builds a client for the configured device.
func getClient() *client.GongClient {
	if cfg == nil || cfg.BaseURL == "" {
		fmt.Println("Error: No device configured. Please run 'gong-cli target' first.")
		exit(1)
	}
	return client.New(client.ClientConfig{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		DayBase: cfg.DayBaseValue(),
		Logger:  log,
	})
}

func formatter() weekday.Formatter {
	// alarms are held in canonical numbering once decoded
	return weekday.Formatter{Base: weekday.Zero, Locale: cfg.LocaleValue()}
}

// confirmer asks on stdin unless --yes was given.
func confirmer() alarms.Confirmer {
	return alarms.ConfirmFunc(func(prompt string) bool {
		if assumeYes {
			return true
		}
		fmt.Printf("%s [y/N]: ", prompt)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes", "д", "да":
			return true
		}
		return false
	})
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Printf("Error encoding JSON: %v\n", err)
		exit(1)
	}
}

func fail(doing string, err error) {
	fmt.Printf("Error %s: %v\n", doing, err)
	exit(1)
}
