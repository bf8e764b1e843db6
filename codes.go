package sensorhub

import "github.com/mklimuk/sensorhub/event"

// axisFor maps an axis-value code to the logical type and component index it
// updates. Status codes are not axis values and report false here.
func axisFor(c event.Code) (Type, int, bool) {
	switch c {
	case event.CodeAccelX:
		return Acceleration, 0, true
	case event.CodeAccelY:
		return Acceleration, 1, true
	case event.CodeAccelZ:
		return Acceleration, 2, true
	case event.CodeMagX:
		return MagneticField, 0, true
	case event.CodeMagY:
		return MagneticField, 1, true
	case event.CodeMagZ:
		return MagneticField, 2, true
	case event.CodeYaw:
		return Orientation, 0, true
	case event.CodePitch:
		return Orientation, 1, true
	case event.CodeRoll:
		return Orientation, 2, true
	case event.CodeTemperature:
		return Temperature, 0, true
	case event.CodeProximity:
		return Proximity, 0, true
	case event.CodeLight:
		return Light, 0, true
	}
	return 0, 0, false
}

// statusFor maps a calibration status code to the logical type it latches.
func statusFor(c event.Code) (Type, bool) {
	switch c {
	case event.CodeAccelStatus:
		return Acceleration, true
	case event.CodeOrientStatus:
		return Orientation, true
	}
	return 0, false
}

// axisCodes lists the codes a full draft of one type republishes, in
// component order.
func axisCodes(t Type) []event.Code {
	switch t {
	case Acceleration:
		return []event.Code{event.CodeAccelX, event.CodeAccelY, event.CodeAccelZ}
	case MagneticField:
		return []event.Code{event.CodeMagX, event.CodeMagY, event.CodeMagZ}
	case Orientation:
		return []event.Code{event.CodeYaw, event.CodePitch, event.CodeRoll}
	case Temperature:
		return []event.Code{event.CodeTemperature}
	case Proximity:
		return []event.Code{event.CodeProximity}
	case Light:
		return []event.Code{event.CodeLight}
	}
	return nil
}

// statusCodeFor returns the status code of a type that has one.
func statusCodeFor(t Type) (event.Code, bool) {
	switch t {
	case Acceleration:
		return event.CodeAccelStatus, true
	case Orientation:
		return event.CodeOrientStatus, true
	}
	return 0, false
}
