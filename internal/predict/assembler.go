// Package predict assembles complete prediction records: it runs the
// selection engine under the requested mode, stamps the result with a
// randomized future date and confidence, and optionally persists it.
package predict

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/kalambet/foretell/internal/engine"
	"github.com/kalambet/foretell/internal/history"
)

// appliesToLayout is the long date stamped on every prediction.
const appliesToLayout = "Monday, January 2, 2006"

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Rand supplies the uniform int draws for the date offset and confidence.
type Rand interface {
	IntN(n int) int
}

type systemRand struct{}

func (systemRand) IntN(n int) int { return rand.IntN(n) }

// Options selects a mode and target. When several mode flags are set the
// precedence is theme > smart > time-aware > preferred > plain.
type Options struct {
	Category  string
	Theme     string
	TimeAware bool
	Preferred bool
	Smart     bool
	Save      bool
}

// Assembler builds prediction records from engine output.
type Assembler struct {
	engine  *engine.Engine
	history *history.Store
	clock   Clock
	rand    Rand
}

func New(eng *engine.Engine, hist *history.Store) *Assembler {
	return NewWithSources(eng, hist, systemClock{}, systemRand{})
}

// NewWithSources creates an Assembler with a custom clock and random
// source (for testing).
func NewWithSources(eng *engine.Engine, hist *history.Store, clock Clock, rnd Rand) *Assembler {
	return &Assembler{engine: eng, history: hist, clock: clock, rand: rnd}
}

// Categories returns the catalog's category names.
func (a *Assembler) Categories() []string {
	return a.engine.Categories()
}

// Predict generates one prediction record. Time context fields are set for
// the time-aware and smart modes (from the clock, also when an explicit
// category was given); the theme field is set only for themed selection.
// With Save set the record is appended to history and returned with its
// assigned id.
func (a *Assembler) Predict(opts Options) (history.Record, error) {
	var text, label string
	withTimeContext := false

	switch {
	case opts.Theme != "":
		text, label = a.engine.Themed(opts.Theme, opts.Category)
	case opts.Smart:
		prefs := history.PreferenceScores(a.history.Load())
		text, label = a.engine.Smart(opts.Category, prefs)
		withTimeContext = true
	case opts.TimeAware:
		text, label = a.engine.TimeAware(opts.Category)
		withTimeContext = true
	case opts.Preferred:
		prefs := history.PreferenceScores(a.history.Load())
		text, label = a.engine.Preferred(opts.Category, prefs)
	default:
		text, label = a.engine.Plain(opts.Category)
	}

	now := a.clock.Now()
	rec := history.Record{
		Text:        text,
		Category:    label,
		AppliesTo:   now.AddDate(0, 0, 1+a.rand.IntN(7)).Format(appliesToLayout),
		Confidence:  fmt.Sprintf("%d%%", 70+a.rand.IntN(30)),
		GeneratedAt: now.Format(time.RFC3339),
		Theme:       opts.Theme,
	}
	if withTimeContext {
		rec.TimeContext = &history.TimeContext{
			TimeOfDay: engine.TimeOfDay(now),
			DayType:   engine.DayType(now),
		}
	}

	if opts.Save {
		return a.history.Append(rec)
	}
	return rec, nil
}
