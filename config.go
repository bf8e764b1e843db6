package sensorhub

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DriverConfig describes one physical driver: the name its raw event source
// advertises, the chip behind it and where its control interface lives. A
// driver with an empty chip is input-only (no power control).
type DriverConfig struct {
	Name string `yaml:"name"`
	Chip string `yaml:"chip,omitempty"`
	Path string `yaml:"path,omitempty"`
	// optional I2C attachment for the control interface; when set, commands
	// go through the bus instead of the control device file
	Bus  string `yaml:"bus,omitempty"`
	Addr uint16 `yaml:"addr,omitempty"`
	// logical sensor types this driver produces
	Sensors []string `yaml:"sensors"`
}

// Mask resolves the driver's logical sensor set.
func (d DriverConfig) Mask() (Mask, error) {
	var m Mask
	for _, s := range d.Sensors {
		t, err := ParseType(s)
		if err != nil {
			return 0, fmt.Errorf("driver %s: %w", d.Name, err)
		}
		m = m.With(t)
	}
	return m, nil
}

// Config is the hub configuration.
type Config struct {
	// directory scanned for raw event sources
	InputDir string         `yaml:"input_dir,omitempty"`
	Drivers  []DriverConfig `yaml:"drivers"`
}

// DefaultConfig mirrors the built-in driver table of the reference hardware.
func DefaultConfig() Config {
	return Config{
		Drivers: []DriverConfig{
			{
				Name:    "accelerometer",
				Chip:    "kxtf9",
				Path:    "/dev/kxtf9",
				Sensors: []string{"acceleration"},
			},
			{
				Name:    "compass",
				Chip:    "akm8973",
				Path:    "/dev/akm8973_aot",
				Sensors: []string{"magnetic_field", "orientation", "temperature"},
			},
			{
				Name:    "proximity",
				Chip:    "sfh7743",
				Path:    "/dev/sfh7743",
				Sensors: []string{"proximity"},
			},
			{
				Name:    "max9635",
				Sensors: []string{"light"},
			},
		},
	}
}

// LoadConfig reads a yaml configuration file.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse config: %w", err)
	}
	if len(cfg.Drivers) == 0 {
		cfg.Drivers = DefaultConfig().Drivers
	}
	return cfg, nil
}

// ParseType resolves a logical sensor type by name.
func ParseType(s string) (Type, error) {
	for t := Type(0); t.Valid(); t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown sensor type %q", ErrInvalidHandle, s)
}
