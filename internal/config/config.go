package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"geothermal-load/internal/calendar"
	"geothermal-load/internal/load"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk description of a load case (YAML): the simulation context plus
// the hourly profiles whose sum makes up the case.
type Config struct {
	Name             string          `yaml:"name"`
	SimulationPeriod int             `yaml:"simulation_period"`
	StartMonth       int             `yaml:"start_month"`
	Calendar         CalendarConfig  `yaml:"calendar"`
	Defaults         ProfileConfig   `yaml:"defaults"`
	Profiles         []ProfileConfig `yaml:"profiles"`
}

type CalendarConfig struct {
	AllMonthsEqual bool  `yaml:"all_months_equal"`
	HoursPerMonth  []int `yaml:"hours_per_month"`
}

// ProfileConfig points at one tabular hourly load file.
// Header is a pointer so an explicit false survives merging with the defaults.
type ProfileConfig struct {
	Name             string  `yaml:"name"`
	File             string  `yaml:"file"`
	Header           *bool   `yaml:"header"`
	Separator        string  `yaml:"separator"`
	DecimalSeparator string  `yaml:"decimal_separator"`
	HeatingColumn    int     `yaml:"heating_column"`
	CoolingColumn    int     `yaml:"cooling_column"`
	DHW              float64 `yaml:"dhw"`
	SimulationPeriod int     `yaml:"simulation_period"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads the case and merges the defaults block into every profile,
// but does not validate it. Relative profile paths are resolved against the directory
// of the config file when such a file exists there.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	for i, p := range c.Profiles {
		p = MergeProfile(c.Defaults, p)
		if p.File != "" && !filepath.IsAbs(p.File) {
			cand := filepath.Join(filepath.Dir(path), p.File)
			if _, err := os.Stat(cand); err == nil {
				p.File = cand
			}
		}
		c.Profiles[i] = p
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.SimulationPeriod == 0 {
		c.SimulationPeriod = load.DefaultSimulationPeriod
	}
	if c.StartMonth == 0 {
		c.StartMonth = 1
	}
	for i := range c.Profiles {
		p := &c.Profiles[i]
		if p.Header == nil {
			t := true
			p.Header = &t
		}
		if p.Separator == "" {
			p.Separator = ";"
		}
		if p.DecimalSeparator == "" {
			p.DecimalSeparator = "."
		}
		if p.CoolingColumn == 0 && p.HeatingColumn == 0 {
			p.CoolingColumn = 1
		}
		if p.SimulationPeriod == 0 {
			p.SimulationPeriod = c.SimulationPeriod
		}
		if p.Name == "" {
			p.Name = fmt.Sprintf("profile_%d", i+1)
		}
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.SimulationPeriod < 1 {
		return errors.New("simulation_period must be >= 1")
	}
	if err := calendar.ValidateStartMonth(c.StartMonth); err != nil {
		return err
	}
	cal, err := c.Calendar.ToCalendar()
	if err != nil {
		return err
	}
	if err := cal.Validate(); err != nil {
		return fmt.Errorf("calendar invalid: %w", err)
	}
	if len(c.Profiles) == 0 {
		return errors.New("at least one profile is required")
	}
	for _, p := range c.Profiles {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("profile %s invalid: %w", p.Name, err)
		}
	}
	return nil
}

// ToCalendar converts the YAML block; an empty hours_per_month keeps the default year.
func (c CalendarConfig) ToCalendar() (calendar.Calendar, error) {
	cal := calendar.Default()
	cal.AllMonthsEqual = c.AllMonthsEqual
	if len(c.HoursPerMonth) == 0 {
		return cal, nil
	}
	if len(c.HoursPerMonth) != calendar.MonthsPerYear {
		return calendar.Calendar{}, fmt.Errorf("hours_per_month must have %d entries, got %d", calendar.MonthsPerYear, len(c.HoursPerMonth))
	}
	copy(cal.HoursPerMonth[:], c.HoursPerMonth)
	return cal, nil
}

// Options returns the load options for the case context.
func (c *Config) Options(logger *zap.Logger) ([]load.Option, error) {
	cal, err := c.Calendar.ToCalendar()
	if err != nil {
		return nil, err
	}
	return []load.Option{
		load.WithStartMonth(c.StartMonth),
		load.WithCalendar(cal),
		load.WithLogger(logger),
	}, nil
}

func (p ProfileConfig) Validate() error {
	if p.File == "" {
		return errors.New("file is required")
	}
	if utf8.RuneCountInString(p.Separator) != 1 {
		return fmt.Errorf("separator must be a single character, got %q", p.Separator)
	}
	if utf8.RuneCountInString(p.DecimalSeparator) != 1 {
		return fmt.Errorf("decimal_separator must be a single character, got %q", p.DecimalSeparator)
	}
	if p.HeatingColumn < 0 || p.CoolingColumn < 0 {
		return errors.New("column indices must be >= 0")
	}
	if p.DHW < 0 {
		return errors.New("dhw must be >= 0")
	}
	if p.SimulationPeriod < 0 {
		return errors.New("simulation_period must be >= 0")
	}
	return nil
}

// Format converts the layout fields for the tabular reader.
func (p ProfileConfig) Format() load.ProfileFormat {
	f := load.DefaultProfileFormat()
	if p.Header != nil {
		f.Header = *p.Header
	}
	if r, _ := utf8.DecodeRuneInString(p.Separator); r != utf8.RuneError {
		f.Separator = r
	}
	if r, _ := utf8.DecodeRuneInString(p.DecimalSeparator); r != utf8.RuneError {
		f.DecimalSeparator = r
	}
	return f
}

// MergeProfile overlays non-zero fields from override onto base.
func MergeProfile(base, override ProfileConfig) ProfileConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.File != "" {
		out.File = override.File
	}
	if override.Header != nil {
		out.Header = override.Header
	}
	if override.Separator != "" {
		out.Separator = override.Separator
	}
	if override.DecimalSeparator != "" {
		out.DecimalSeparator = override.DecimalSeparator
	}
	// Column 0 is a valid index, so a zero override cannot be told apart from "unset";
	// both columns are taken together when either is set.
	if override.HeatingColumn != 0 || override.CoolingColumn != 0 {
		out.HeatingColumn = override.HeatingColumn
		out.CoolingColumn = override.CoolingColumn
	}
	if override.DHW != 0 {
		out.DHW = override.DHW
	}
	if override.SimulationPeriod != 0 {
		out.SimulationPeriod = override.SimulationPeriod
	}
	return out
}
