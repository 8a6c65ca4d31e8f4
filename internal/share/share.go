// Package share renders a prediction as a shareable string and copies it
// to the system clipboard.
package share

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kalambet/foretell/internal/history"
)

var titler = cases.Title(language.English)

// Format renders the record in the requested style: "text" (default),
// "twitter", or "markdown". Unknown styles fall back to text.
func Format(rec history.Record, style string) string {
	switch style {
	case "twitter":
		return twitterFormat(rec)
	case "markdown":
		return markdownFormat(rec)
	default:
		return textFormat(rec)
	}
}

func textFormat(rec history.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔮 %s\n\n", rec.Text)
	fmt.Fprintf(&b, "Category: %s\n", titler.String(rec.Category))
	if rec.AppliesTo != "" {
		fmt.Fprintf(&b, "Applies to: %s\n", rec.AppliesTo)
	}
	if rec.Confidence != "" {
		fmt.Fprintf(&b, "Confidence: %s\n", rec.Confidence)
	}
	b.WriteString("\n— Foretell")
	return b.String()
}

func twitterFormat(rec history.Record) string {
	// Custom theme entries can be arbitrarily long; the rendered tweet
	// must stay under the 280-character limit.
	text := rec.Text
	if len(text) > 200 {
		text = text[:197] + "..."
	}
	tag := strings.Map(func(r rune) rune {
		if r == ' ' || r == ':' {
			return -1
		}
		return r
	}, titler.String(rec.Category))
	return fmt.Sprintf("🔮 %q (%s confident) #%s #Foretell", text, rec.Confidence, tag)
}

func markdownFormat(rec history.Record) string {
	var b strings.Builder
	b.WriteString("## 🔮 Your Fortune\n\n")
	fmt.Fprintf(&b, "> %s\n\n", rec.Text)
	fmt.Fprintf(&b, "- **Category**: %s\n", titler.String(rec.Category))
	if rec.AppliesTo != "" {
		fmt.Fprintf(&b, "- **Applies to**: %s\n", rec.AppliesTo)
	}
	if rec.Confidence != "" {
		fmt.Fprintf(&b, "- **Confidence**: %s\n", rec.Confidence)
	}
	return b.String()
}

// Copy puts text on the system clipboard, reporting success. Clipboard
// access fails on headless systems; that is not fatal.
func Copy(text string) bool {
	if err := clipboard.WriteAll(text); err != nil {
		slog.Warn("could not copy to clipboard", "error", err)
		return false
	}
	return true
}
