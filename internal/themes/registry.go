// Package themes layers a mutable, file-backed custom theme registry
// beneath the immutable built-in theme catalog. Custom themes can never
// shadow a built-in name.
package themes

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/kalambet/foretell/internal/catalog"
)

// Document is the export/import format for a single theme.
type Document struct {
	Name       string              `json:"name"`
	Categories map[string][]string `json:"categories"`
}

var themeNameRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Registry resolves themes over the built-in set plus custom. Custom themes persist
// as a JSON object mapping theme name to its category tables; the file is
// rewritten whole on every mutation, last write wins.
type Registry struct {
	path    string
	builtin map[string]catalog.Catalog
}

func NewRegistry(path string, builtin map[string]catalog.Catalog) *Registry {
	return &Registry{path: path, builtin: builtin}
}

// Custom reads the persisted custom themes, soft-failing to empty on a
// missing or malformed file.
func (r *Registry) Custom() map[string]catalog.Catalog {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("could not read themes file, starting empty", "path", r.path, "error", err)
		}
		return map[string]catalog.Catalog{}
	}
	var custom map[string]catalog.Catalog
	if err := json.Unmarshal(data, &custom); err != nil {
		slog.Warn("malformed themes file, starting empty", "path", r.path, "error", err)
		return map[string]catalog.Catalog{}
	}
	if custom == nil {
		custom = map[string]catalog.Catalog{}
	}
	return custom
}

// Resolve returns the catalog for a theme name, built-ins first.
func (r *Registry) Resolve(name string) (catalog.Catalog, bool) {
	key := strings.ToLower(name)
	if cat, ok := r.builtin[key]; ok {
		return cat, true
	}
	cat, ok := r.Custom()[key]
	return cat, ok
}

// Names returns all resolvable theme names, sorted.
func (r *Registry) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for name := range r.builtin {
		seen[name] = true
		names = append(names, name)
	}
	for name := range r.Custom() {
		if !seen[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// IsBuiltin reports whether the name belongs to a built-in theme
// (case-insensitive).
func (r *Registry) IsBuiltin(name string) bool {
	_, ok := r.builtin[strings.ToLower(name)]
	return ok
}

// Add validates and upserts a custom theme, lower-casing the name before
// storage. It reports whether an existing custom theme was overwritten so
// callers can distinguish update from create. The registry is left
// untouched on any validation failure.
func (r *Registry) Add(name string, categories map[string][]string) (updated bool, err error) {
	if name == "" {
		return false, fmt.Errorf("theme name is required")
	}
	if !themeNameRE.MatchString(name) {
		return false, fmt.Errorf("theme name %q may only contain letters, digits, '_' and '-'", name)
	}
	key := strings.ToLower(name)
	if r.IsBuiltin(key) {
		return false, fmt.Errorf("%q is a built-in theme and cannot be overwritten", key)
	}
	if len(categories) == 0 {
		return false, fmt.Errorf("a theme needs at least one category")
	}
	for cat, entries := range categories {
		if strings.TrimSpace(cat) == "" {
			return false, fmt.Errorf("category names cannot be empty")
		}
		if len(entries) == 0 {
			return false, fmt.Errorf("category %q has no predictions", cat)
		}
		for _, entry := range entries {
			if strings.TrimSpace(entry) == "" {
				return false, fmt.Errorf("category %q contains a blank prediction", cat)
			}
		}
	}

	custom := r.Custom()
	_, updated = custom[key]
	cat := make(catalog.Catalog, len(categories))
	for name, entries := range categories {
		cat[name] = entries
	}
	custom[key] = cat
	if err := r.save(custom); err != nil {
		return false, err
	}
	return updated, nil
}

// AddEntries appends predictions to one category of a custom theme,
// creating the theme or the category as needed. It reports whether the
// theme was newly created. Built-in themes stay immutable.
func (r *Registry) AddEntries(theme, category string, entries []string) (created bool, err error) {
	existing, ok := r.Custom()[strings.ToLower(theme)]
	merged := make(map[string][]string, len(existing)+1)
	for cat, list := range existing {
		merged[cat] = list
	}
	merged[category] = append(append([]string{}, merged[category]...), entries...)
	if _, err := r.Add(theme, merged); err != nil {
		return false, err
	}
	return !ok, nil
}

// Delete removes a custom theme. Built-in themes cannot be deleted.
func (r *Registry) Delete(name string) error {
	key := strings.ToLower(name)
	if r.IsBuiltin(key) {
		return fmt.Errorf("%q is a built-in theme and cannot be deleted", key)
	}
	custom := r.Custom()
	if _, ok := custom[key]; !ok {
		return fmt.Errorf("no custom theme named %q", key)
	}
	delete(custom, key)
	return r.save(custom)
}

// Export returns the theme (built-in or custom) as a Document.
func (r *Registry) Export(name string) (Document, error) {
	key := strings.ToLower(name)
	cat, ok := r.Resolve(key)
	if !ok {
		return Document{}, fmt.Errorf("no theme named %q", key)
	}
	return Document{Name: key, Categories: cat}, nil
}

// Import reads a Document from path and delegates to Add. It fails on a
// missing file, malformed JSON, or missing required fields.
func (r *Registry) Import(path string) (name string, updated bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("reading theme file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", false, fmt.Errorf("parsing theme file: %w", err)
	}
	if doc.Name == "" {
		return "", false, fmt.Errorf("theme file is missing a name")
	}
	if len(doc.Categories) == 0 {
		return "", false, fmt.Errorf("theme file is missing categories")
	}
	updated, err = r.Add(doc.Name, doc.Categories)
	if err != nil {
		return "", false, err
	}
	return strings.ToLower(doc.Name), updated, nil
}

func (r *Registry) save(custom map[string]catalog.Catalog) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	data, err := json.MarshalIndent(custom, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing themes: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("writing themes: %w", err)
	}
	return nil
}
