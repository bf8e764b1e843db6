package sensorhub

import "time"

// Status is the accuracy/calibration status attached to a reading.
type Status uint8

const (
	StatusUnreliable Status = iota
	StatusAccuracyLow
	StatusAccuracyMedium
	StatusAccuracyHigh
)

// Vec3 holds the component values of one reading. Vector sensors use all
// three axes; scalar sensors carry their value in X.
type Vec3 struct {
	X float32
	Y float32
	Z float32
}

// Reading is one complete, converted measurement handed to the consumer.
// It is immutable once returned; the caller owns it.
type Reading struct {
	Type   Type
	Values Vec3
	Status Status
	Time   time.Time
}

// Scalar returns the value of a single-component reading.
func (r Reading) Scalar() float32 {
	return r.Values.X
}

// draft is the in-progress accumulation buffer for one logical type. Only a
// snapshot taken at a boundary is ever exposed.
type draft struct {
	values [3]float32
	status Status
	time   time.Time
}

func (d draft) snapshot(t Type) Reading {
	return Reading{
		Type:   t,
		Values: Vec3{X: d.values[0], Y: d.values[1], Z: d.values[2]},
		Status: d.status,
		Time:   d.time,
	}
}
