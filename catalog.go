package sensorhub

// Descriptor is the static description of one logical sensor exposed to
// consumers.
type Descriptor struct {
	Name       string  `yaml:"name"`
	Vendor     string  `yaml:"vendor"`
	Version    int     `yaml:"version"`
	Type       Type    `yaml:"type"`
	MaxRange   float32 `yaml:"max_range"`
	Resolution float32 `yaml:"resolution"`
	// typical current draw in mA
	Power float32 `yaml:"power"`
}

// the AK8973 has an 8-bit ADC but the firmware averages 16 samples and
// calibrates on 12-bit values, which buys 4 extra bits of resolution; its
// orientation output has a 1/64 degree resolution
var catalog = []Descriptor{
	{
		Name:       "KXTF9 3-axis Accelerometer",
		Vendor:     "Kionix",
		Version:    1,
		Type:       Acceleration,
		MaxRange:   4.0 * gravityEarth,
		Resolution: gravityEarth / lsgPerG,
		Power:      0.25,
	},
	{
		Name:       "AK8973 3-axis Magnetic field sensor",
		Vendor:     "Asahi Kasei",
		Version:    1,
		Type:       MagneticField,
		MaxRange:   2000.0,
		Resolution: 1.0 / 16.0,
		Power:      6.8,
	},
	{
		Name:       "AK8973 Temperature sensor",
		Vendor:     "Asahi Kasei",
		Version:    1,
		Type:       Temperature,
		MaxRange:   115.0,
		Resolution: 1.6,
		Power:      3.0,
	},
	{
		Name:       "Orientation sensor",
		Vendor:     "Asahi Kasei",
		Version:    1,
		Type:       Orientation,
		MaxRange:   360.0,
		Resolution: 1.0 / 64.0,
		Power:      7.05,
	},
	{
		Name:       "SFH7743 Proximity sensor",
		Vendor:     "Osram",
		Version:    1,
		Type:       Proximity,
		MaxRange:   ProximityThreshold,
		Resolution: ProximityThreshold,
		Power:      0.5,
	},
	{
		Name:       "MAX9635 Light sensor",
		Vendor:     "Maxim",
		Version:    1,
		Type:       Light,
		MaxRange:   27000.0,
		Resolution: 1.0,
		Power:      0.0,
	},
}

// Catalog returns the ordered, read-only list of supported sensors.
func Catalog() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}

// Describe returns the descriptor for one logical type.
func Describe(t Type) (Descriptor, bool) {
	if !t.Valid() {
		return Descriptor{}, false
	}
	for _, d := range catalog {
		if d.Type == t {
			return d, true
		}
	}
	return Descriptor{}, false
}
