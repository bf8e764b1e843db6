package sensorhub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask_Highest(t *testing.T) {
	tests := []struct {
		name     string
		mask     Mask
		expected Type
		ok       bool
	}{
		{"empty", 0, 0, false},
		{"single low", Acceleration.Bit(), Acceleration, true},
		{"single high", Light.Bit(), Light, true},
		{"mixed", Acceleration.Bit() | Orientation.Bit() | Light.Bit(), Light, true},
		{"all", All, Light, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := test.mask.Highest()
			assert.Equal(t, test.ok, ok)
			if ok {
				assert.Equal(t, test.expected, got)
			}
		})
	}
}

func TestMask_Descending(t *testing.T) {
	m := Acceleration.Bit() | Orientation.Bit() | Light.Bit()
	assert.Equal(t, []Type{Light, Orientation, Acceleration}, m.Descending())
	assert.Empty(t, Mask(0).Descending())
}

func TestMask_SetOperations(t *testing.T) {
	var m Mask
	m = m.With(Proximity).With(Temperature)
	assert.True(t, m.Has(Proximity))
	assert.True(t, m.Has(Temperature))
	assert.False(t, m.Has(Light))
	m = m.Without(Proximity)
	assert.False(t, m.Has(Proximity))
	assert.False(t, m.Empty())
	assert.True(t, m.Without(Temperature).Empty())
}

func TestType_Valid(t *testing.T) {
	for typ := Type(0); typ.Valid(); typ++ {
		assert.NotEqual(t, "unknown", typ.String())
	}
	assert.False(t, Type(-1).Valid())
	assert.False(t, Type(NumTypes).Valid())
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("magnetic_field")
	assert.NoError(t, err)
	assert.Equal(t, MagneticField, typ)

	_, err = ParseType("barometer")
	assert.ErrorIs(t, err, ErrInvalidHandle)
}
