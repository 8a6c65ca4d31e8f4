package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kalambet/foretell/internal/config"
	"github.com/kalambet/foretell/internal/export"
	"github.com/kalambet/foretell/internal/history"
	"github.com/kalambet/foretell/internal/predict"
	"github.com/kalambet/foretell/internal/reminder"
	"github.com/kalambet/foretell/internal/share"
)

// --- predict ---

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Generate a fortune prediction",
	Long: `Generate a fortune prediction.

Examples:
  foretell predict
  foretell predict --category career
  foretell predict --smart
  foretell predict --theme spooky --share twitter --copy
  foretell predict --remind --remind-on 2025-03-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		theme, _ := cmd.Flags().GetString("theme")
		timeAware, _ := cmd.Flags().GetBool("time-aware")
		preferred, _ := cmd.Flags().GetBool("preferred")
		smart, _ := cmd.Flags().GetBool("smart")
		noSave, _ := cmd.Flags().GetBool("no-save")
		shareStyle, _ := cmd.Flags().GetString("share")
		copyToClipboard, _ := cmd.Flags().GetBool("copy")
		remind, _ := cmd.Flags().GetBool("remind")
		remindOn, _ := cmd.Flags().GetString("remind-on")

		a, err := newApp()
		if err != nil {
			return err
		}

		rec, err := a.assembler.Predict(predict.Options{
			Category:  category,
			Theme:     theme,
			TimeAware: timeAware,
			Preferred: preferred,
			Smart:     smart,
			Save:      !noSave,
		})
		if err != nil {
			return err
		}

		printPrediction(rec)

		if shareStyle != "" || copyToClipboard {
			if shareStyle == "" {
				shareStyle = "text"
			}
			formatted := share.Format(rec, shareStyle)
			fmt.Println(formatted)
			if copyToClipboard {
				if share.Copy(formatted) {
					printSuccess("Copied to clipboard")
				} else {
					printWarning("Could not copy to clipboard")
				}
			}
		}

		if remind || remindOn != "" {
			date := reminder.DeriveDate(remindOn, rec.AppliesTo, sysClock{})
			created, err := a.reminders.Append(reminder.Record{
				PredictionID: rec.ID,
				Prediction:   rec.Text,
				Category:     rec.Category,
				RemindDate:   date,
			})
			if err != nil {
				return fmt.Errorf("saving reminder: %w", err)
			}
			printSuccess("Reminder #%d set for %s", created.ReminderID, created.RemindDate)
		}

		return nil
	},
}

type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now() }

func init() {
	predictCmd.Flags().String("category", "", "restrict to one category")
	predictCmd.Flags().String("theme", "", "draw from a themed catalog")
	predictCmd.Flags().Bool("time-aware", false, "blend in time-of-day predictions")
	predictCmd.Flags().Bool("preferred", false, "weight categories by your ratings")
	predictCmd.Flags().Bool("smart", false, "combine preference weights with time context")
	predictCmd.Flags().Bool("no-save", false, "do not record the prediction in history")
	predictCmd.Flags().String("share", "", "print a shareable rendering (text, twitter, markdown)")
	predictCmd.Flags().Bool("copy", false, "copy the shareable rendering to the clipboard")
	predictCmd.Flags().Bool("remind", false, "set a reminder for when the prediction applies")
	predictCmd.Flags().String("remind-on", "", "reminder date (YYYY-MM-DD, implies --remind)")
}

// --- rate ---

var rateCmd = &cobra.Command{
	Use:   "rate <id> <rating>",
	Short: "Rate a stored prediction from 1 to 5",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid prediction id %q", args[0])
		}
		rating, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid rating %q", args[1])
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.history.SetRating(id, rating); err != nil {
			return err
		}

		printSuccess("Rated prediction #%d as %d/5", id, rating)
		return nil
	},
}

// --- history ---

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored predictions",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		since, _ := cmd.Flags().GetString("since")
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp()
		if err != nil {
			return err
		}

		records := history.Filter(a.history.Load(), category, since)
		if len(records) == 0 {
			fmt.Println("No predictions found.")
			return nil
		}
		if limit > 0 && len(records) > limit {
			records = records[len(records)-limit:]
		}
		for _, rec := range records {
			printHistoryRecord(rec)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored predictions",
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			printWarning("This will delete ALL prediction history. Use --confirm to proceed.")
			return nil
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		n, err := a.history.Clear()
		if err != nil {
			return err
		}

		printSuccess("Cleared %d predictions", n)
		return nil
	},
}

func init() {
	historyCmd.Flags().String("category", "", "filter by category")
	historyCmd.Flags().String("since", "", "only predictions generated on or after this date")
	historyCmd.Flags().Int("limit", 0, "show at most N most recent predictions")
	historyClearCmd.Flags().Bool("confirm", false, "confirm history deletion")
	historyCmd.AddCommand(historyClearCmd)
}

// --- stats ---

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show prediction history statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		stats := history.ComputeStats(a.history.Load())
		if stats.Total == 0 {
			fmt.Println("No predictions yet.")
			return nil
		}

		printStatus("Total", "%d", stats.Total)
		for _, cat := range sortedKeys(stats.ByCategory) {
			printStatus("  "+cat, "%d (%.0f%%)", stats.ByCategory[cat], stats.CategoryPercent(cat))
		}
		printStatus("Rated", "%d", stats.Rated)
		if stats.Rated > 0 {
			printStatus("Mean rating", "%.2f", stats.MeanRating)
			for r := 1; r <= 5; r++ {
				if n := stats.RatingCounts[r]; n > 0 {
					printStatus(fmt.Sprintf("  %d star", r), "%s", strings.Repeat("█", n))
				}
			}
		}
		if stats.Oldest != "" {
			printStatus("Oldest", "%s", stats.Oldest)
			printStatus("Newest", "%s", stats.Newest)
		}
		return nil
	},
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// --- categories ---

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List prediction categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		for _, cat := range a.assembler.Categories() {
			fmt.Println(cat)
		}
		return nil
	},
}

// --- export ---

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export prediction history",
	Long: `Export prediction history.

Examples:
  foretell export --format csv --output history.csv
  foretell export --format markdown
  foretell export --format sqlite --output history.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		a, err := newApp()
		if err != nil {
			return err
		}
		records := a.history.Load()

		if format == "sqlite" {
			if output == "" {
				return fmt.Errorf("--output is required for sqlite export")
			}
			if err := export.SQLite(output, records); err != nil {
				return err
			}
			printSuccess("Exported %d predictions to %s", len(records), output)
			return nil
		}

		writer := os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()
			writer = f
		}

		switch format {
		case "csv":
			err = export.CSV(writer, records)
		case "markdown", "md":
			err = export.Markdown(writer, records)
		case "json":
			err = export.JSON(writer, records)
		default:
			return fmt.Errorf("unknown format %q (want csv, markdown, json, or sqlite)", format)
		}
		if err != nil {
			return err
		}

		if output != "" {
			printSuccess("Exported %d predictions to %s", len(records), output)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().String("format", "json", "export format: csv, markdown, json, or sqlite")
	exportCmd.Flags().String("output", "", "output file path (default: stdout; required for sqlite)")
}

// --- reminders ---

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Manage prediction reminders",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		records := a.reminders.Load()
		if len(records) == 0 {
			fmt.Println("No reminders set.")
			return nil
		}
		for _, r := range records {
			printReminder(r)
		}
		return nil
	},
}

var remindersPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List reminders due today or earlier",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		due := a.reminders.Pending(time.Now().Format("2006-01-02"))
		if len(due) == 0 {
			fmt.Println("Nothing due. The future keeps its secrets for now.")
			return nil
		}
		for _, r := range due {
			printReminder(r)
		}
		return nil
	},
}

var remindersAckCmd = &cobra.Command{
	Use:   "ack <id>",
	Short: "Acknowledge a reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid reminder id %q", args[0])
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.reminders.Acknowledge(id); err != nil {
			return err
		}

		printSuccess("Acknowledged reminder #%d", id)
		return nil
	},
}

var remindersClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove acknowledged reminders (or all with --all)",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		a, err := newApp()
		if err != nil {
			return err
		}
		n, err := a.reminders.Clear(all)
		if err != nil {
			return err
		}

		printSuccess("Removed %d reminders", n)
		return nil
	},
}

func printReminder(r reminder.Record) {
	status := colorize(colorYellow, "pending")
	if r.Acknowledged {
		status = colorize(colorGreen, "done")
	}
	fmt.Printf("%s  %s  %s  [%s]\n",
		colorize(colorCyan, fmt.Sprintf("#%-3d", r.ReminderID)),
		r.RemindDate,
		r.Prediction,
		status,
	)
}

func init() {
	remindersClearCmd.Flags().Bool("all", false, "remove every reminder, not just acknowledged ones")
	remindersCmd.AddCommand(remindersPendingCmd)
	remindersCmd.AddCommand(remindersAckCmd)
	remindersCmd.AddCommand(remindersClearCmd)
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		for _, k := range config.ShowAll(cfg) {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
