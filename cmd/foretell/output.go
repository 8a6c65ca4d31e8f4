package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/kalambet/foretell/internal/history"
)

const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorBold    = "\033[1m"
)

func colorize(color, text string) string {
	if noColor {
		return text
	}
	return color + text + colorReset
}

func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorGreen, "✓ "+msg))
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorRed, "✗ "+msg))
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorYellow, "⚠ "+msg))
}

func printStatus(label string, format string, args ...any) {
	val := fmt.Sprintf(format, args...)
	l := colorize(colorBold, label+":")
	fmt.Fprintf(os.Stderr, "  %s %s\n", l, val)
}

func printPrediction(rec history.Record) {
	fmt.Println()
	fmt.Printf("  %s %s\n", "🔮", colorize(colorMagenta+colorBold, rec.Text))
	fmt.Println()
	fmt.Printf("  %s %s\n", colorize(colorBold, "Category:"), rec.Category)
	if rec.Theme != "" {
		fmt.Printf("  %s %s\n", colorize(colorBold, "Theme:"), rec.Theme)
	}
	if rec.AppliesTo != "" {
		fmt.Printf("  %s %s\n", colorize(colorBold, "Applies to:"), rec.AppliesTo)
	}
	if rec.Confidence != "" {
		fmt.Printf("  %s %s\n", colorize(colorBold, "Confidence:"), rec.Confidence)
	}
	if rec.TimeContext != nil {
		fmt.Printf("  %s %s, %s\n", colorize(colorBold, "Context:"), rec.TimeContext.TimeOfDay, rec.TimeContext.DayType)
	}
	if rec.ID != 0 {
		fmt.Printf("  %s\n", colorize(colorCyan, fmt.Sprintf("saved as #%d", rec.ID)))
	}
	fmt.Println()
}

func printHistoryRecord(rec history.Record) {
	rating := ""
	if rec.Rating > 0 {
		rating = " " + colorize(colorYellow, strings.Repeat("★", rec.Rating))
	}
	fmt.Printf("%s  %s  [%s]%s\n",
		colorize(colorCyan, fmt.Sprintf("#%-3d", rec.ID)),
		rec.Text,
		rec.Category,
		rating,
	)
}
