package main

import (
	"github.com/kalambet/foretell/internal/catalog"
	"github.com/kalambet/foretell/internal/config"
	"github.com/kalambet/foretell/internal/engine"
	"github.com/kalambet/foretell/internal/history"
	"github.com/kalambet/foretell/internal/predict"
	"github.com/kalambet/foretell/internal/reminder"
	"github.com/kalambet/foretell/internal/themes"
)

// app wires the stores and the prediction engine from config. Commands
// operate on the data files directly; the HTTP server is optional.
type app struct {
	cfg       config.Config
	history   *history.Store
	reminders *reminder.Store
	themes    *themes.Registry
	assembler *predict.Assembler
}

var newApp = func() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	hist := history.NewStore(cfg.HistoryPath())
	rem := reminder.NewStore(cfg.RemindersPath())
	reg := themes.NewRegistry(cfg.ThemesPath(), catalog.BuiltinThemes())
	eng := engine.New(catalog.Default(), catalog.TimePools(), catalog.DayPools(), reg)

	return &app{
		cfg:       cfg,
		history:   hist,
		reminders: rem,
		themes:    reg,
		assembler: predict.New(eng, hist),
	}, nil
}
