// Package engine implements the weighted random selection behind every
// prediction mode. All modes are pure functions of the injected catalog,
// clock, random source, and caller-supplied preference scores.
package engine

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/kalambet/foretell/internal/catalog"
)

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Rand supplies the two draw primitives selection needs: a uniform int in
// [0, n) and a uniform float in [0, 1).
type Rand interface {
	IntN(n int) int
	Float64() float64
}

type systemRand struct{}

func (systemRand) IntN(n int) int   { return rand.IntN(n) }
func (systemRand) Float64() float64 { return rand.Float64() }

// ThemeSource resolves theme names to their catalogs.
// Implemented by themes.Registry.
type ThemeSource interface {
	Resolve(name string) (catalog.Catalog, bool)
	Names() []string
}

// Engine selects (text, label) pairs from the catalog under one of five
// modes. Unknown categories and themes are not errors: the diagnostic
// message is returned in the text position with the requested label
// unchanged, and callers detect the case by checking the label against the
// known catalog.
type Engine struct {
	catalog   catalog.Catalog
	timePools map[string][]string
	dayPools  map[string][]string
	themes    ThemeSource
	clock     Clock
	rand      Rand
}

func New(cat catalog.Catalog, timePools, dayPools map[string][]string, themes ThemeSource) *Engine {
	return NewWithSources(cat, timePools, dayPools, themes, systemClock{}, systemRand{})
}

// NewWithSources creates an Engine with a custom clock and random source
// (for testing).
func NewWithSources(cat catalog.Catalog, timePools, dayPools map[string][]string, themes ThemeSource, clock Clock, rnd Rand) *Engine {
	return &Engine{
		catalog:   cat,
		timePools: timePools,
		dayPools:  dayPools,
		themes:    themes,
		clock:     clock,
		rand:      rnd,
	}
}

// Categories returns the catalog's category names.
func (e *Engine) Categories() []string {
	return e.catalog.Categories()
}

// Plain selects in two uniform stages: a category first, then an entry
// within it, so every category carries equal mass regardless of size.
func (e *Engine) Plain(category string) (string, string) {
	if category == "" {
		cats := e.catalog.Categories()
		category = cats[e.rand.IntN(len(cats))]
	}
	entries := e.catalog[category]
	if len(entries) == 0 {
		return unknownCategory(category, e.catalog.Categories()), category
	}
	return entries[e.rand.IntN(len(entries))], category
}

// TimeAware flattens every catalog entry plus the current time-of-day and
// day-type pools into one pool and draws once uniformly, so each entry
// carries equal weight rather than each category.
func (e *Engine) TimeAware(category string) (string, string) {
	if category != "" {
		return e.Plain(category)
	}

	type entry struct{ text, label string }
	var pool []entry
	for _, cat := range e.catalog.Categories() {
		for _, text := range e.catalog[cat] {
			pool = append(pool, entry{text, cat})
		}
	}
	now := e.clock.Now()
	slot := TimeOfDay(now)
	for _, text := range e.timePools[slot] {
		pool = append(pool, entry{text, "time:" + slot})
	}
	day := DayType(now)
	for _, text := range e.dayPools[day] {
		pool = append(pool, entry{text, "day:" + day})
	}

	picked := pool[e.rand.IntN(len(pool))]
	return picked.text, picked.label
}

// Preferred draws a category by cumulative-weight roulette, weighting each
// category 1 + 4*score, then picks uniformly within it. Categories without
// a score weigh 1.0.
func (e *Engine) Preferred(category string, prefs map[string]float64) (string, string) {
	if category != "" {
		return e.Plain(category)
	}

	cats := e.catalog.Categories()
	weights := make([]float64, len(cats))
	total := 0.0
	for i, cat := range cats {
		weights[i] = 1.0 + prefs[cat]*4
		total += weights[i]
	}

	draw := e.rand.Float64() * total
	chosen := cats[len(cats)-1]
	cum := 0.0
	for i, cat := range cats {
		cum += weights[i]
		if cum >= draw {
			chosen = cat
			break
		}
	}
	return e.Plain(chosen)
}

// Smart blends preference weights with the time and day pools in a single
// flat weighted pool: catalog entries weigh min(1 + 4*score, 5), time and
// day entries weigh 2. One roulette draw decides; if floating-point
// rounding leaves the draw past the last cumulative weight, the last pool
// entry wins.
func (e *Engine) Smart(category string, prefs map[string]float64) (string, string) {
	if category != "" {
		return e.Plain(category)
	}

	type weighted struct {
		text, label string
		weight      float64
	}
	var pool []weighted
	for _, cat := range e.catalog.Categories() {
		w := 1.0 + prefs[cat]*4
		if w > 5.0 {
			w = 5.0
		}
		for _, text := range e.catalog[cat] {
			pool = append(pool, weighted{text, cat, w})
		}
	}
	now := e.clock.Now()
	slot := TimeOfDay(now)
	for _, text := range e.timePools[slot] {
		pool = append(pool, weighted{text, "time:" + slot, 2.0})
	}
	day := DayType(now)
	for _, text := range e.dayPools[day] {
		pool = append(pool, weighted{text, "day:" + day, 2.0})
	}

	total := 0.0
	for _, it := range pool {
		total += it.weight
	}
	draw := e.rand.Float64() * total
	cum := 0.0
	for _, it := range pool {
		cum += it.weight
		if cum >= draw {
			return it.text, it.label
		}
	}
	last := pool[len(pool)-1]
	return last.text, last.label
}

// Themed resolves a theme (built-in or custom; built-ins cannot be
// shadowed) and selects in the same two uniform stages as Plain. Theme
// selection never blends with the other modes.
func (e *Engine) Themed(theme, category string) (string, string) {
	cat, ok := e.themes.Resolve(theme)
	if !ok {
		return fmt.Sprintf("Unknown theme '%s'. Available: %s",
			theme, strings.Join(e.themes.Names(), ", ")), theme
	}
	if category == "" {
		names := cat.Categories()
		category = names[e.rand.IntN(len(names))]
	}
	entries := cat[category]
	if len(entries) == 0 {
		return fmt.Sprintf("Category '%s' not available in theme '%s'. Available: %s",
			category, theme, strings.Join(cat.Categories(), ", ")), category
	}
	return entries[e.rand.IntN(len(entries))], category
}

func unknownCategory(name string, available []string) string {
	return fmt.Sprintf("Unknown category '%s'. Available: %s", name, strings.Join(available, ", "))
}
