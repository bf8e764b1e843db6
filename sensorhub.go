// Package sensorhub multiplexes raw per-axis measurement events from several
// physical sensing chips into typed sensor readings. It tracks which logical
// sensor types a consumer requested, powers the backing chips up and down on
// demand, bridges the raw streams onto one logical channel and serves
// complete readings one at a time through a pull-based poll interface.
package sensorhub

import "math/bits"

// Type is a consumer-facing sensor category, independent of which physical
// chip produces it. The numbering is the stable identity a consumer uses to
// request activation and doubles as the bit position in a Mask.
type Type int

const (
	Acceleration Type = iota
	MagneticField
	Orientation
	Temperature
	Proximity
	Light

	numTypes
)

// NumTypes is the number of supported logical sensor types.
const NumTypes = int(numTypes)

func (t Type) Valid() bool {
	return t >= 0 && t < numTypes
}

// Bit returns the mask with only this type set.
func (t Type) Bit() Mask {
	return 1 << uint(t)
}

func (t Type) String() string {
	switch t {
	case Acceleration:
		return "acceleration"
	case MagneticField:
		return "magnetic_field"
	case Orientation:
		return "orientation"
	case Temperature:
		return "temperature"
	case Proximity:
		return "proximity"
	case Light:
		return "light"
	}
	return "unknown"
}

// Mask is a set of logical sensor types. Bit position equals Type identity;
// the highest set bit has dispatch priority.
type Mask uint32

// All is the mask with every supported type set.
const All Mask = 1<<numTypes - 1

func (m Mask) Has(t Type) bool {
	return m&t.Bit() != 0
}

func (m Mask) With(t Type) Mask {
	return m | t.Bit()
}

func (m Mask) Without(t Type) Mask {
	return m &^ t.Bit()
}

func (m Mask) Empty() bool {
	return m == 0
}

// Highest returns the highest-priority type in the set.
func (m Mask) Highest() (Type, bool) {
	if m == 0 {
		return 0, false
	}
	return Type(bits.Len32(uint32(m)) - 1), true
}

// Descending returns the set's members from highest priority to lowest.
func (m Mask) Descending() []Type {
	out := make([]Type, 0, bits.OnesCount32(uint32(m)))
	for m != 0 {
		t, _ := m.Highest()
		out = append(out, t)
		m = m.Without(t)
	}
	return out
}
