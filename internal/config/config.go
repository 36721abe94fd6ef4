// Package config holds the single configuration record every top-level
// core operation is parameterized by. There is no global/package-level
// configuration state; callers build a Config (or take Default()) and pass
// it explicitly.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config enumerates every tunable named in the recognizer's parameter table.
type Config struct {
	TargetRate int `yaml:"target_rate"` // post-decimation rate, Hz
	FIROrder   int `yaml:"fir_order"`   // anti-alias FIR length

	WindowLen int `yaml:"window_len"` // STFT window size, samples
	Hop       int `yaml:"hop"`        // STFT hop, samples

	NMSAlpha     float64 `yaml:"nms_alpha"`      // log-freq NMS width coefficient
	NMSTimeHalf  int     `yaml:"nms_time_half"`  // NMS time half-width, frames
	Percentile   float64 `yaml:"percentile"`     // percentile threshold
	Fanout       int     `yaml:"fanout"`         // max targets per anchor
	DtMin        int     `yaml:"dt_min"`         // target zone min Δframe
	DtMax        int     `yaml:"dt_max"`         // target zone max Δframe
	DfMax        int     `yaml:"df_max"`         // target zone max Δbin

	KMin   int `yaml:"k_min"`  // matcher candidate floor
	SMin   int `yaml:"s_min"`  // matcher score floor
	Margin int `yaml:"margin"` // matcher ambiguity margin
	Bucket int `yaml:"bucket"` // matcher offset-histogram bucket width
}

// Default returns the configuration documented in the external interface
// table. It is a value, not a package-level variable, so callers that
// mutate their copy never affect another caller's defaults.
func Default() Config {
	return Config{
		TargetRate: 11025,
		FIROrder:   101,

		WindowLen: 1024,
		Hop:       512,

		NMSAlpha:    4.0,
		NMSTimeHalf: 3,
		Percentile:  75,
		Fanout:      5,
		DtMin:       1,
		DtMax:       32,
		DfMax:       64,

		KMin:   5,
		SMin:   5,
		Margin: 2,
		Bucket: 1,
	}
}

// Load reads a YAML configuration file, filling in any field left zero with
// the documented default. A missing file is not an error — it simply
// yields Default().
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	overlay := Config{}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyOverlay(overlay)
	return cfg, nil
}

func (c *Config) applyOverlay(o Config) {
	if o.TargetRate != 0 {
		c.TargetRate = o.TargetRate
	}
	if o.FIROrder != 0 {
		c.FIROrder = o.FIROrder
	}
	if o.WindowLen != 0 {
		c.WindowLen = o.WindowLen
	}
	if o.Hop != 0 {
		c.Hop = o.Hop
	}
	if o.NMSAlpha != 0 {
		c.NMSAlpha = o.NMSAlpha
	}
	if o.NMSTimeHalf != 0 {
		c.NMSTimeHalf = o.NMSTimeHalf
	}
	if o.Percentile != 0 {
		c.Percentile = o.Percentile
	}
	if o.Fanout != 0 {
		c.Fanout = o.Fanout
	}
	if o.DtMin != 0 {
		c.DtMin = o.DtMin
	}
	if o.DtMax != 0 {
		c.DtMax = o.DtMax
	}
	if o.DfMax != 0 {
		c.DfMax = o.DfMax
	}
	if o.KMin != 0 {
		c.KMin = o.KMin
	}
	if o.SMin != 0 {
		c.SMin = o.SMin
	}
	if o.Margin != 0 {
		c.Margin = o.Margin
	}
	if o.Bucket != 0 {
		c.Bucket = o.Bucket
	}
}

// Validate rejects parameter combinations the core cannot operate under.
func (c Config) Validate() error {
	if c.TargetRate <= 0 {
		return fmt.Errorf("config: target_rate must be positive")
	}
	if c.WindowLen <= 0 || c.WindowLen%2 != 0 {
		return fmt.Errorf("config: window_len must be a positive even number")
	}
	if c.Hop <= 0 || c.Hop > c.WindowLen {
		return fmt.Errorf("config: hop must be in (0, window_len]")
	}
	if c.DtMin < 0 || c.DtMax < c.DtMin {
		return fmt.Errorf("config: dt_min/dt_max out of order")
	}
	if c.Fanout <= 0 {
		return fmt.Errorf("config: fanout must be positive")
	}
	if c.Bucket <= 0 {
		return fmt.Errorf("config: bucket must be positive")
	}
	return nil
}
