package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/khapa77/gong-dullabha/internal/alarms"
	"github.com/khapa77/gong-dullabha/internal/weekday"
	"github.com/khapa77/gong-dullabha/pkg/models"
)

// Variables to hold flag values
var (
	alarmTime     string
	alarmDays     string
	alarmDuration int
	alarmActive   bool
	alarmLabel    string
	exportFile    string
	importFile    string
	importCheck   bool
)

// alarmBackup is the file layout of 'alarms export' and 'alarms import'.
// Days are numbered from 0 = Monday regardless of the device.
type alarmBackup struct {
	Alarms []models.Alarm `yaml:"alarms"`
}

func newAlarmController() *alarms.Controller {
	rules := alarms.DefaultRules()
	rules.RequireDays = cfg.RequireDays
	return alarms.NewController(getClient(), alarms.Options{
		Formatter: formatter(),
		Rules:     rules,
		Confirmer: confirmer(),
		Logger:    log,
	})
}

// reportMutation treats a failed reload as a warning; the write itself went through.
func reportMutation(doing, done string, err error) {
	var reloadErr *alarms.ReloadError
	switch {
	case err == nil:
		fmt.Println(done)
	case errors.As(err, &reloadErr):
		fmt.Println(done)
		fmt.Printf("Warning: %v\n", reloadErr)
	case errors.Is(err, alarms.ErrCancelled):
		fmt.Println("Cancelled.")
	default:
		fail(doing, err)
	}
}

func parseAlarmID(arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		fail("parsing alarm id", fmt.Errorf("%q is not an alarm id", arg))
	}
	return id
}

func printAlarms(ctrl *alarms.Controller) {
	if jsonOutput {
		printJSON(ctrl.Store.Snapshot())
		return
	}

	rows := ctrl.Rows()
	if len(rows) == 0 {
		fmt.Println("No alarms configured.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tALARM")
	fmt.Fprintln(w, "--\t-----")
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%s\n", r.ID, r.Label)
	}
	w.Flush()
}

// Parent Command
var alarmsCmd = &cobra.Command{
	Use:   "alarms",
	Short: "Manage the gong schedule",
	Long:  `List, add, edit and delete scheduled gong alarms.`,
}

// List Command
var alarmsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scheduled alarms",
	Run: func(cmd *cobra.Command, args []string) {
		ctrl := newAlarmController()
		if err := ctrl.Load(context.Background()); err != nil {
			fail("fetching alarms", err)
		}
		printAlarms(ctrl)
	},
}

// Add Command
var alarmsAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Schedule a new alarm",
	Example: `  gong-cli alarms add --time 04:30 --days weekdays --duration 30`,
	Run: func(cmd *cobra.Command, args []string) {
		ctrl := newAlarmController()

		days, err := weekday.Parse(alarmDays, weekday.Zero)
		if err != nil {
			fail("parsing --days", err)
		}

		ctrl.Form.BeginCreate()
		ctrl.Form.SetFields(alarms.Fields{
			Time:     alarmTime,
			Days:     days,
			Duration: alarmDuration,
			Active:   alarmActive,
			Label:    alarmLabel,
		})

		err = ctrl.Form.Submit(context.Background())
		reportMutation("creating alarm", "Alarm created.", err)
		if err == nil {
			printAlarms(ctrl)
		}
	},
}

// Edit Command
var alarmsEditCmd = &cobra.Command{
	Use:     "edit <id>",
	Short:   "Change an existing alarm",
	Args:    cobra.ExactArgs(1),
	Example: `  gong-cli alarms edit 3 --time 05:00 --active=false`,
	Run: func(cmd *cobra.Command, args []string) {
		id := parseAlarmID(args[0])
		ctrl := newAlarmController()
		ctx := context.Background()

		if err := ctrl.Dispatch(ctx, alarms.Action{Kind: alarms.ActionEdit, AlarmID: id}); err != nil {
			fail("loading alarm", err)
		}

		// only the flags given on the command line change the alarm
		f := ctrl.Form.Fields()
		flags := cmd.Flags()
		if flags.Changed("time") {
			f.Time = alarmTime
		}
		if flags.Changed("days") {
			days, err := weekday.Parse(alarmDays, weekday.Zero)
			if err != nil {
				fail("parsing --days", err)
			}
			f.Days = days
		}
		if flags.Changed("duration") {
			f.Duration = alarmDuration
		}
		if flags.Changed("active") {
			f.Active = alarmActive
		}
		if flags.Changed("label") {
			f.Label = alarmLabel
		}
		ctrl.Form.SetFields(f)

		reportMutation("updating alarm", fmt.Sprintf("Alarm #%d updated.", id), ctrl.Form.Submit(ctx))
	},
}

// Delete Command
var alarmsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an alarm",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseAlarmID(args[0])
		ctrl := newAlarmController()

		err := ctrl.Dispatch(context.Background(), alarms.Action{Kind: alarms.ActionDelete, AlarmID: id})
		reportMutation("deleting alarm", fmt.Sprintf("Alarm #%d deleted.", id), err)
	},
}

// Export Command
var alarmsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the schedule to a YAML file",
	Run: func(cmd *cobra.Command, args []string) {
		ctrl := newAlarmController()
		if err := ctrl.Load(context.Background()); err != nil {
			fail("fetching alarms", err)
		}

		data, err := yaml.Marshal(alarmBackup{Alarms: ctrl.Store.Snapshot()})
		if err != nil {
			fail("encoding YAML", err)
		}
		if exportFile == "-" {
			os.Stdout.Write(data)
			return
		}
		if err := os.WriteFile(exportFile, data, 0o644); err != nil {
			fail("writing backup", err)
		}
		fmt.Printf("Exported %d alarms to %s.\n", ctrl.Store.Len(), exportFile)
	},
}

// Import Command
var alarmsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Create alarms from a YAML file",
	Long: `Creates every alarm in the file as a new alarm. Ids in the file are
ignored; existing alarms are left untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(importFile)
		if err != nil {
			fail("reading backup", err)
		}
		var backup alarmBackup
		if err := yaml.Unmarshal(data, &backup); err != nil {
			fail("decoding YAML", err)
		}

		ctrl := newAlarmController()
		ctx := context.Background()
		created := 0
		for i, a := range backup.Alarms {
			ctrl.Form.BeginCreate()
			ctrl.Form.SetFields(alarms.Fields{
				Time:     a.Time,
				Days:     a.Days,
				Duration: a.Duration,
				Active:   a.Active,
				Label:    a.Label,
			})

			if importCheck {
				if err := ctrl.Form.Validate(); err != nil {
					fmt.Printf("Entry %d (%s): %v\n", i+1, a.Time, err)
					continue
				}
				created++
				continue
			}

			err := ctrl.Form.Submit(ctx)
			var reloadErr *alarms.ReloadError
			if err != nil && !errors.As(err, &reloadErr) {
				fmt.Printf("Skipping entry %d (%s): %v\n", i+1, a.Time, err)
				continue
			}
			created++
		}
		if importCheck {
			fmt.Printf("%d of %d alarms are valid.\n", created, len(backup.Alarms))
			return
		}
		fmt.Printf("Imported %d of %d alarms.\n", created, len(backup.Alarms))
		if ctrl.Store.Loaded() {
			printAlarms(ctrl)
		}
	},
}

func init() {
	// Register Parent
	rootCmd.AddCommand(alarmsCmd)

	alarmsCmd.AddCommand(alarmsListCmd)
	alarmsCmd.AddCommand(alarmsAddCmd)
	alarmsCmd.AddCommand(alarmsEditCmd)
	alarmsCmd.AddCommand(alarmsDeleteCmd)
	alarmsCmd.AddCommand(alarmsExportCmd)
	alarmsCmd.AddCommand(alarmsImportCmd)

	for _, c := range []*cobra.Command{alarmsAddCmd, alarmsEditCmd} {
		c.Flags().StringVar(&alarmTime, "time", "", "Time of day, HH:MM")
		c.Flags().StringVar(&alarmDays, "days", "", "Days, e.g. mon,wed,fri | weekdays | weekend | all | 0,2,4 (0 = Monday)")
		c.Flags().IntVar(&alarmDuration, "duration", 30, "Ring duration in seconds")
		c.Flags().BoolVar(&alarmActive, "active", true, "Whether the alarm is enabled")
		c.Flags().StringVar(&alarmLabel, "label", "", "Optional label")
	}
	_ = alarmsAddCmd.MarkFlagRequired("time")

	alarmsExportCmd.Flags().StringVarP(&exportFile, "file", "f", "alarms.yaml", "Output file, - for stdout")
	alarmsImportCmd.Flags().StringVarP(&importFile, "file", "f", "", "YAML file to import")
	alarmsImportCmd.Flags().BoolVar(&importCheck, "check", false, "Validate the file without creating anything")
	_ = alarmsImportCmd.MarkFlagRequired("file")
}
