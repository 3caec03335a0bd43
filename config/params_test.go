package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/leversim/sim"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	p := Default()
	assert.NoError(t, p.Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	mutate := func(fn func(*Params)) *Params {
		p := Default()
		fn(p)
		return p
	}

	tests := []struct {
		name    string
		params  *Params
		wantErr string
	}{
		{
			name:   "default ok",
			params: Default(),
		},
		{
			name:    "zero capital",
			params:  mutate(func(p *Params) { p.InitialCapital = 0 }),
			wantErr: "initial_capital",
		},
		{
			name:    "negative capital",
			params:  mutate(func(p *Params) { p.InitialCapital = -100 }),
			wantErr: "initial_capital",
		},
		{
			name:    "drop at one",
			params:  mutate(func(p *Params) { p.MaxDropPercent = 1.0 }),
			wantErr: "max_drop_percent",
		},
		{
			name:    "negative margin requirement",
			params:  mutate(func(p *Params) { p.MarginRequirement = -0.1 }),
			wantErr: "margin_requirement",
		},
		{
			name:    "closeout fraction out of range",
			params:  mutate(func(p *Params) { p.MarginCloseoutFraction = 1.5 }),
			wantErr: "margin_closeout_fraction",
		},
		{
			name:    "cost rate out of range",
			params:  mutate(func(p *Params) { p.AnnualCostRate = 1.0 }),
			wantErr: "annual_cost_rate",
		},
		{
			name: "buffer collapses to zero",
			params: mutate(func(p *Params) {
				p.MaxDropPercent = 0
				p.MarginRequirement = 0
			}),
			wantErr: "max_drop_percent or margin_requirement",
		},
		{
			name:    "bad frequency",
			params:  mutate(func(p *Params) { p.RebalanceFrequency = "weekly" }),
			wantErr: "rebalance_frequency",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.params.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSimParams(t *testing.T) {
	t.Parallel()

	p := Default()
	p.RebalanceFrequency = "quarterly"

	sp, err := p.SimParams()
	require.NoError(t, err)

	assert.Equal(t, p.InitialCapital, sp.InitialCapital)
	assert.Equal(t, p.MaxDropPercent, sp.MaxDropPercent)
	assert.Equal(t, sim.Quarterly, sp.RebalanceFrequency)
}

func TestLoadFromFileYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "params.yaml")
	data := `
ticker: SPY
initial_capital: 25000
max_drop_percent: 0.40
margin_requirement: 0.05
margin_closeout_fraction: 0.50
annual_cost_rate: 0.0533
rebalance_frequency: monthly
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	p, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "SPY", p.Ticker)
	assert.Equal(t, 25_000.0, p.InitialCapital)
	assert.Equal(t, 0.40, p.MaxDropPercent)
	assert.Equal(t, "monthly", p.RebalanceFrequency)
}

func TestLoadFromFileJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "params.json")
	data := `{
  "ticker": "QQQ",
  "initial_capital": 5000,
  "max_drop_percent": 0.30,
  "margin_requirement": 0.05,
  "margin_closeout_fraction": 0.50,
  "annual_cost_rate": 0.0533,
  "rebalance_frequency": "none"
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	p, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "QQQ", p.Ticker)
	assert.Equal(t, 5_000.0, p.InitialCapital)
}

func TestLoadFromFileRejectsInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "params.yaml")
	data := "initial_capital: -5\nrebalance_frequency: none\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := LoadFromFile(path)
	assert.ErrorContains(t, err, "invalid config")
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	p := Default()
	p.Ticker = "IWM"

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, p.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}
