package sensorhub

// Unit conversion at the channel boundary: raw integer axis values become
// physical units here and nowhere else.

// standard gravity in m/s²
const gravityEarth = 9.80665

// the accelerometer reports 1000 LSG per g
const lsgPerG = 1000.0

const (
	convertAccel  = gravityEarth / lsgPerG
	convertAccelX = convertAccel
	convertAccelY = convertAccel
	convertAccelZ = convertAccel
)

// the compass ADC calibrates on 12-bit values, 1/16 µT per LSB
const (
	convertMag  = 1.0 / 16.0
	convertMagX = convertMag
	convertMagY = -convertMag
	convertMagZ = -convertMag
)

// the orientation fusion reports 1/64 degree per LSB
const (
	convertOrient = 1.0 / 64.0
	convertYaw    = convertOrient
	convertPitch  = convertOrient
	convertRoll   = -convertOrient
)

// proximity wire format is fifths of a centimeter
const convertProximity = 1.0 / 5.0

// ProximityThreshold is the trigger distance in cm. The detector is binary
// on this hardware: readings at or under the threshold report 0, everything
// else reports the threshold itself.
const ProximityThreshold float32 = 6.0

// status events carry calibration state in the low bits
const statusStateMask = 0x7FFF

func clampProximity(raw int32) float32 {
	if float32(raw)*convertProximity <= ProximityThreshold {
		return 0
	}
	return ProximityThreshold
}

var (
	accelConvert  = [3]float32{convertAccelX, convertAccelY, convertAccelZ}
	magConvert    = [3]float32{convertMagX, convertMagY, convertMagZ}
	orientConvert = [3]float32{convertYaw, convertPitch, convertRoll}
)

// convertAxis turns one raw component value into physical units.
func convertAxis(t Type, axis int, raw int32) float32 {
	switch t {
	case Acceleration:
		return float32(raw) * accelConvert[axis]
	case MagneticField:
		return float32(raw) * magConvert[axis]
	case Orientation:
		return float32(raw) * orientConvert[axis]
	case Proximity:
		return clampProximity(raw)
	}
	// temperature and light pass through raw-valued
	return float32(raw)
}
