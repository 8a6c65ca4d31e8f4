package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage prediction themes",
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		for _, name := range a.themes.Names() {
			marker := ""
			if !a.themes.IsBuiltin(name) {
				marker = colorize(colorCyan, " (custom)")
			}
			fmt.Printf("%s%s\n", name, marker)
		}
		return nil
	},
}

var themeCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a custom theme interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		name, categories, err := runThemeForm()
		if err != nil {
			return err
		}

		updated, err := a.themes.Add(name, categories)
		if err != nil {
			return err
		}
		if updated {
			printSuccess("Updated theme %q", strings.ToLower(name))
		} else {
			printSuccess("Created theme %q", strings.ToLower(name))
		}
		return nil
	},
}

var themeAddCmd = &cobra.Command{
	Use:   "add <theme> <category> <prediction>...",
	Short: "Add predictions to a custom theme",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		created, err := a.themes.AddEntries(args[0], args[1], args[2:])
		if err != nil {
			return err
		}
		name := strings.ToLower(args[0])
		if created {
			printSuccess("Created theme %q with %d prediction(s)", name, len(args)-2)
		} else {
			printSuccess("Added %d prediction(s) to theme %q", len(args)-2, name)
		}
		return nil
	},
}

var themeDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a custom theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.themes.Delete(args[0]); err != nil {
			return err
		}
		printSuccess("Deleted theme %q", strings.ToLower(args[0]))
		return nil
	},
}

var themeExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Export a theme as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		a, err := newApp()
		if err != nil {
			return err
		}
		doc, err := a.themes.Export(args[0])
		if err != nil {
			return err
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

		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return err
		}

		if output != "" {
			printSuccess("Exported theme %q to %s", doc.Name, output)
		}
		return nil
	},
}

var themeImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a theme from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		name, updated, err := a.themes.Import(args[0])
		if err != nil {
			return err
		}
		if updated {
			printSuccess("Updated theme %q", name)
		} else {
			printSuccess("Imported theme %q", name)
		}
		return nil
	},
}

func init() {
	themeExportCmd.Flags().String("output", "", "output file path (default: stdout)")
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeCreateCmd)
	themeCmd.AddCommand(themeAddCmd)
	themeCmd.AddCommand(themeDeleteCmd)
	themeCmd.AddCommand(themeExportCmd)
	themeCmd.AddCommand(themeImportCmd)
}

// runThemeForm collects a theme name and its categories interactively.
// Each category is a name plus newline-separated predictions; the user can
// keep adding categories until they decline.
func runThemeForm() (string, map[string][]string, error) {
	var name string
	categories := make(map[string][]string)

	nameForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Theme name").
				Description("Letters, digits, '_' and '-' only").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("theme name cannot be empty")
					}
					return nil
				}),
		),
	)
	if err := nameForm.Run(); err != nil {
		return "", nil, err
	}

	for {
		var catName, entries string
		another := false

		catForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Category name").
					Value(&catName).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("category name cannot be empty")
						}
						return nil
					}),
				huh.NewText().
					Title("Predictions").
					Description("One prediction per line").
					Value(&entries).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("at least one prediction is required")
						}
						return nil
					}),
				huh.NewConfirm().
					Title("Add another category?").
					Value(&another),
			),
		)
		if err := catForm.Run(); err != nil {
			return "", nil, err
		}

		var lines []string
		for _, line := range strings.Split(entries, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		categories[strings.TrimSpace(catName)] = lines

		if !another {
			break
		}
	}

	return name, categories, nil
}
