package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/khapa77/gong-dullabha/internal/client"
	"github.com/khapa77/gong-dullabha/internal/weekday"
	"github.com/khapa77/gong-dullabha/pkg/models"
)

var templateFile string

// validateTemplate checks a template file before it is sent to the device.
func validateTemplate(tpl models.Template) error {
	if strings.TrimSpace(tpl.Name) == "" {
		return errors.New("name is required")
	}
	if tpl.Duration <= 0 {
		return errors.New("duration must be a positive number of days")
	}
	if len(tpl.Alarms) == 0 {
		return errors.New("at least one alarm is required")
	}
	for i, a := range tpl.Alarms {
		if _, err := time.Parse("15:04", a.Time); err != nil || len(a.Time) != len("15:04") {
			return fmt.Errorf("alarm %d: time %q must be HH:MM", i+1, a.Time)
		}
		if !weekday.Valid(a.Days) {
			return fmt.Errorf("alarm %d: days must be between 0 (Monday) and 6 (Sunday)", i+1)
		}
	}
	return nil
}

func parseTemplateIndex(arg string) int {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 0 {
		fail("parsing template index", fmt.Errorf("%q is not a template index", arg))
	}
	return idx
}

// failTemplate points at 'templates list' when the index no longer exists.
func failTemplate(doing string, idx int, err error) {
	if client.IsStatus(err, http.StatusNotFound) {
		err = fmt.Errorf("no template #%d, run 'gong-cli templates list'", idx)
	}
	fail(doing, err)
}

// Parent Command
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage schedule templates",
	Long: `List, create, delete and apply named alarm templates. Templates are
addressed by their position in 'templates list'.`,
}

// List Command
var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates stored on the device",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		list, err := api.ListTemplates(context.Background())
		if err != nil {
			fail("fetching templates", err)
		}

		if jsonOutput {
			printJSON(list)
			return
		}

		if len(list) == 0 {
			fmt.Println("No templates found.")
			return
		}

		f := formatter()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "INDEX\tNAME\tDAYS\tALARMS")
		fmt.Fprintln(w, "-----\t----\t----\t------")
		for i, t := range list {
			parts := make([]string, 0, len(t.Alarms))
			for _, a := range t.Alarms {
				parts = append(parts, fmt.Sprintf("%s (%s)", a.Time, f.Format(a.Days)))
			}
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", i, t.Name, t.Duration, strings.Join(parts, "; "))
		}
		w.Flush()
	},
}

// Create Command
var templatesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Upload a template from a YAML file",
	Example: `  gong-cli templates create --file retreat.yaml

  # retreat.yaml
  name: 10-day retreat
  duration: 10
  alarms:
    - time: "04:00"
      days: [0, 1, 2, 3, 4, 5, 6]`,
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(templateFile)
		if err != nil {
			fail("reading template", err)
		}
		var tpl models.Template
		if err := yaml.Unmarshal(data, &tpl); err != nil {
			fail("decoding YAML", err)
		}
		if err := validateTemplate(tpl); err != nil {
			fail("validating template", err)
		}

		fmt.Printf("Creating template '%s' with %d alarms...\n", tpl.Name, len(tpl.Alarms))
		if err := getClient().CreateTemplate(context.Background(), tpl); err != nil {
			fail("creating template", err)
		}
		fmt.Println("Template created successfully.")
	},
}

// Delete Command
var templatesDeleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		idx := parseTemplateIndex(args[0])
		if !confirmer().Confirm(fmt.Sprintf("Delete template #%d?", idx)) {
			fmt.Println("Cancelled.")
			return
		}

		if err := getClient().DeleteTemplate(context.Background(), idx); err != nil {
			failTemplate("deleting template", idx, err)
		}
		fmt.Println("Template deleted successfully.")
	},
}

// Apply Command
var templatesApplyCmd = &cobra.Command{
	Use:   "apply <index>",
	Short: "Replace the schedule with a template",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		idx := parseTemplateIndex(args[0])
		if !confirmer().Confirm(fmt.Sprintf("Apply template #%d? Existing alarms will be replaced.", idx)) {
			fmt.Println("Cancelled.")
			return
		}

		ctx := context.Background()
		if err := getClient().ApplyTemplate(ctx, idx); err != nil {
			failTemplate("applying template", idx, err)
		}
		fmt.Println("Template applied.")

		ctrl := newAlarmController()
		if err := ctrl.Load(ctx); err != nil {
			fmt.Printf("Warning: could not reload alarms: %v\n", err)
			return
		}
		printAlarms(ctrl)
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)

	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesCreateCmd)
	templatesCmd.AddCommand(templatesDeleteCmd)
	templatesCmd.AddCommand(templatesApplyCmd)

	templatesCreateCmd.Flags().StringVarP(&templateFile, "file", "f", "", "YAML template definition")
	_ = templatesCreateCmd.MarkFlagRequired("file")
}
