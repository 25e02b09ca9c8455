package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"feeder-dispatch/internal/model"
	"feeder-dispatch/internal/strategy"
	"feeder-dispatch/internal/validate"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load battery parameters from a separate YAML (e.g. examples/batteries/*.yaml).
	// If both BatteryFile and Battery are provided, Battery overrides BatteryFile.
	BatteryFile string           `yaml:"battery_file"`
	Battery     BatteryConfig    `yaml:"battery"`
	Strategy    StrategyConfig   `yaml:"strategy"`
	Validation  ValidationConfig `yaml:"validation"`
	Tunables    TunablesConfig   `yaml:"tunables"`
}

type BatteryConfig struct {
	Name                string  `yaml:"name"`
	PowerRatingMW       float64 `yaml:"power_rating_mw"`
	CapacityMWh         float64 `yaml:"capacity_mwh"`
	RoundTripEfficiency float64 `yaml:"round_trip_efficiency"`
	MinSOC              float64 `yaml:"min_soc"`
	MaxSOC              float64 `yaml:"max_soc"`
	InitialSOC          float64 `yaml:"initial_soc"`
}

type StrategyConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

// ValidationConfig overrides validator thresholds; zero fields keep defaults.
type ValidationConfig struct {
	BalanceToleranceMWh  float64 `yaml:"balance_tolerance_mwh"`
	LossWarnPct          float64 `yaml:"loss_warn_pct"`
	LossErrorPct         float64 `yaml:"loss_error_pct"`
	MinBESSEfficiencyPct float64 `yaml:"min_bess_efficiency_pct"`
	SOCMinPct            float64 `yaml:"soc_min_pct"`
	SOCMaxPct            float64 `yaml:"soc_max_pct"`
}

// TunablesConfig overrides strategy soft tolerances; zero fields keep defaults.
type TunablesConfig struct {
	ActionEpsilonMW     float64 `yaml:"action_epsilon_mw"`
	CapOvershootFrac    float64 `yaml:"cap_overshoot_frac"`
	TrickleFrac         float64 `yaml:"trickle_frac"`
	SoftDischargeMinSOC float64 `yaml:"soft_discharge_min_soc"`
	TopUpFrac           float64 `yaml:"top_up_frac"`
	TopUpMinSOC         float64 `yaml:"top_up_min_soc"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	// If initial_soc is not provided, default it to min_soc: the battery
	// starts empty so energy-out is explainable purely by energy-in.
	if c.Battery.InitialSOC == 0 {
		c.Battery.InitialSOC = c.Battery.MinSOC
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If battery_file is set, load it and merge in any explicit overrides from c.Battery.
	if c.BatteryFile != "" {
		batteryPath := c.BatteryFile
		if !filepath.IsAbs(batteryPath) {
			// Prefer interpreting relative paths as relative to the config file directory,
			// but fall back to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), batteryPath)
			if _, err := os.Stat(cand); err == nil {
				batteryPath = cand
			}
		}
		loaded, err := loadBatteryFile(batteryPath)
		if err != nil {
			return nil, err
		}
		c.Battery = MergeBattery(loaded, c.Battery)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Strategy.Name == "" {
		return errors.New("strategy.name is required")
	}
	// Validate battery params by constructing a model.Battery.
	params := c.Battery.ToModelParams()
	if _, err := model.NewBattery(params, c.Battery.InitialSOC); err != nil {
		return fmt.Errorf("battery config invalid: %w", err)
	}
	return nil
}

func (b BatteryConfig) ToModelParams() model.BatteryParams {
	return model.BatteryParams{
		PowerRatingMW:       b.PowerRatingMW,
		CapacityMWh:         b.CapacityMWh,
		RoundTripEfficiency: b.RoundTripEfficiency,
		MinSOC:              b.MinSOC,
		MaxSOC:              b.MaxSOC,
	}
}

// ToThresholds overlays non-zero overrides onto the validator defaults.
func (v ValidationConfig) ToThresholds() validate.Thresholds {
	th := validate.DefaultThresholds()
	if v.BalanceToleranceMWh != 0 {
		th.BalanceToleranceMWh = v.BalanceToleranceMWh
	}
	if v.LossWarnPct != 0 {
		th.LossWarnPct = v.LossWarnPct
	}
	if v.LossErrorPct != 0 {
		th.LossErrorPct = v.LossErrorPct
	}
	if v.MinBESSEfficiencyPct != 0 {
		th.MinBESSEfficiencyPct = v.MinBESSEfficiencyPct
	}
	if v.SOCMinPct != 0 {
		th.SOCMinPct = v.SOCMinPct
	}
	if v.SOCMaxPct != 0 {
		th.SOCMaxPct = v.SOCMaxPct
	}
	return th
}

// ToTunables overlays non-zero overrides onto the strategy defaults.
func (t TunablesConfig) ToTunables() strategy.Tunables {
	tun := strategy.DefaultTunables()
	if t.ActionEpsilonMW != 0 {
		tun.ActionEpsilonMW = t.ActionEpsilonMW
	}
	if t.CapOvershootFrac != 0 {
		tun.CapOvershootFrac = t.CapOvershootFrac
	}
	if t.TrickleFrac != 0 {
		tun.TrickleFrac = t.TrickleFrac
	}
	if t.SoftDischargeMinSOC != 0 {
		tun.SoftDischargeMinSOC = t.SoftDischargeMinSOC
	}
	if t.TopUpFrac != 0 {
		tun.TopUpFrac = t.TopUpFrac
	}
	if t.TopUpMinSOC != 0 {
		tun.TopUpMinSOC = t.TopUpMinSOC
	}
	return tun
}

type batteryFileWrapper struct {
	Battery BatteryConfig `yaml:"battery"`
}

func loadBatteryFile(path string) (BatteryConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BatteryConfig{}, err
	}
	var w batteryFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return BatteryConfig{}, err
	}
	return w.Battery, nil
}

// MergeBattery overlays non-zero fields from override onto base.
// This is used when loading a battery file and then applying overrides from the request.
func MergeBattery(base, override BatteryConfig) BatteryConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.PowerRatingMW != 0 {
		out.PowerRatingMW = override.PowerRatingMW
	}
	if override.CapacityMWh != 0 {
		out.CapacityMWh = override.CapacityMWh
	}
	if override.RoundTripEfficiency != 0 {
		out.RoundTripEfficiency = override.RoundTripEfficiency
	}
	// Note: these are allowed to be 0 in theory, but our configs use non-zero values.
	if override.MinSOC != 0 {
		out.MinSOC = override.MinSOC
	}
	if override.MaxSOC != 0 {
		out.MaxSOC = override.MaxSOC
	}
	if override.InitialSOC != 0 {
		out.InitialSOC = override.InitialSOC
	}
	return out
}
