package report

import (
	"fmt"

	"geothermal-load/internal/analysis"
	"geothermal-load/internal/config"
	"geothermal-load/internal/load"

	"go.uber.org/zap"
)

type Engine struct {
	Reader load.ProfileReader
	Logger *zap.Logger
}

func New(reader load.ProfileReader, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.L()
	}
	return &Engine{Reader: reader, Logger: logger}
}

// Result holds every imported profile of a case and their sum.
type Result struct {
	Profiles []analysis.Profile
	Total    load.LoadData
	Summary  Summary
	Ranking  []analysis.RankedProfile
}

// Run imports every profile of a validated case and adds them up.
func (e *Engine) Run(cfg *config.Config) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if e.Reader == nil {
		return nil, fmt.Errorf("profile reader is nil")
	}
	if len(cfg.Profiles) == 0 {
		return nil, fmt.Errorf("no profiles")
	}
	opts, err := cfg.Options(e.Logger)
	if err != nil {
		return nil, err
	}

	profiles := make([]analysis.Profile, 0, len(cfg.Profiles))
	loads := make([]load.LoadData, 0, len(cfg.Profiles))
	for idx, p := range cfg.Profiles {
		years := p.SimulationPeriod
		if years == 0 {
			years = cfg.SimulationPeriod
		}
		h, err := load.NewHourly(nil, nil, years, p.DHW, opts...)
		if err != nil {
			return nil, fmt.Errorf("profile %d (%s): %w", idx, p.Name, err)
		}
		if err := h.LoadHourlyProfile(e.Reader, p.File, p.Format(), p.HeatingColumn, p.CoolingColumn); err != nil {
			return nil, fmt.Errorf("profile %d (%s): %w", idx, p.Name, err)
		}
		profiles = append(profiles, analysis.Profile{Name: p.Name, Load: h})
		loads = append(loads, h)
	}

	total, err := load.Sum(loads...)
	if err != nil {
		return nil, err
	}
	e.Logger.Info("load case combined",
		zap.String("case", cfg.Name),
		zap.Int("profiles", len(loads)),
		zap.Float64("imbalance_kwh", total.Imbalance()),
	)

	return &Result{
		Profiles: profiles,
		Total:    total,
		Summary:  BuildSummary(total),
		Ranking:  analysis.RankByImbalance(profiles),
	}, nil
}
