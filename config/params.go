package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rustyeddy/leversim/sim"
	"gopkg.in/yaml.v3"
)

// Params is the file-facing simulation configuration. All rate fields are
// decimals: max_drop_percent 0.30 means a 30% worst-case drop.
type Params struct {
	Ticker                 string  `json:"ticker" yaml:"ticker"`
	InitialCapital         float64 `json:"initial_capital" yaml:"initial_capital"`
	MaxDropPercent         float64 `json:"max_drop_percent" yaml:"max_drop_percent"`
	MarginRequirement      float64 `json:"margin_requirement" yaml:"margin_requirement"`
	MarginCloseoutFraction float64 `json:"margin_closeout_fraction" yaml:"margin_closeout_fraction"`
	AnnualCostRate         float64 `json:"annual_cost_rate" yaml:"annual_cost_rate"`
	RebalanceFrequency     string  `json:"rebalance_frequency" yaml:"rebalance_frequency"`
}

// LoadFromFile loads parameters from a file (YAML first, JSON fallback)
// and validates them.
func LoadFromFile(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	p := &Params{}
	if err := yaml.Unmarshal(data, p); err != nil {
		if jerr := json.Unmarshal(data, p); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return p, nil
}

// SaveToFile writes parameters to a file, YAML for .yaml/.yml paths and
// indented JSON otherwise.
func (p *Params) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(p)
	} else {
		data, err = json.MarshalIndent(p, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the parameter ranges the engine assumes.
func (p *Params) Validate() error {
	if p.InitialCapital <= 0 {
		return fmt.Errorf("initial_capital must be positive")
	}
	if p.MaxDropPercent < 0 || p.MaxDropPercent >= 1 {
		return fmt.Errorf("max_drop_percent must be in [0,1)")
	}
	if p.MarginRequirement < 0 || p.MarginRequirement >= 1 {
		return fmt.Errorf("margin_requirement must be in [0,1)")
	}
	if p.MarginCloseoutFraction < 0 || p.MarginCloseoutFraction >= 1 {
		return fmt.Errorf("margin_closeout_fraction must be in [0,1)")
	}
	if p.AnnualCostRate < 0 || p.AnnualCostRate >= 1 {
		return fmt.Errorf("annual_cost_rate must be in [0,1)")
	}
	// The sizing buffer must not collapse to zero.
	if p.MaxDropPercent <= 0 && p.MarginRequirement <= 0 {
		return fmt.Errorf("max_drop_percent or margin_requirement must be positive")
	}
	if _, err := sim.ParseFrequency(p.RebalanceFrequency); err != nil {
		return fmt.Errorf("rebalance_frequency: %q (want none, daily, monthly or quarterly)", p.RebalanceFrequency)
	}
	return nil
}

// SimParams converts to the engine's parameter struct. Call Validate first;
// the only parse that can fail here is the frequency name.
func (p *Params) SimParams() (sim.Params, error) {
	freq, err := sim.ParseFrequency(p.RebalanceFrequency)
	if err != nil {
		return sim.Params{}, err
	}
	return sim.Params{
		InitialCapital:         p.InitialCapital,
		MaxDropPercent:         p.MaxDropPercent,
		MarginRequirement:      p.MarginRequirement,
		MarginCloseoutFraction: p.MarginCloseoutFraction,
		AnnualCostRate:         p.AnnualCostRate,
		RebalanceFrequency:     freq,
	}, nil
}

// Default returns parameters matching the reference scenario: $10k capital,
// 30% survivable drop, 5% margin at 50% closeout, 5.33% annual carry.
func Default() *Params {
	return &Params{
		Ticker:                 "SIM",
		InitialCapital:         10_000,
		MaxDropPercent:         0.30,
		MarginRequirement:      0.05,
		MarginCloseoutFraction: 0.50,
		AnnualCostRate:         0.0533,
		RebalanceFrequency:     "none",
	}
}
