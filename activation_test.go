package sensorhub

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mklimuk/sensorhub/device"
	"github.com/mklimuk/sensorhub/event"
)

// fakeCap records the commands a driver issues without touching hardware.
type fakeCap struct {
	power       []bool
	intervals   []time.Duration
	powerErr    error
	intervalErr error
	closed      bool
}

func (f *fakeCap) SetPower(ctx context.Context, on bool) error {
	f.power = append(f.power, on)
	return f.powerErr
}

func (f *fakeCap) SetInterval(ctx context.Context, interval time.Duration) error {
	f.intervals = append(f.intervals, interval)
	return f.intervalErr
}

func (f *fakeCap) Close() error {
	f.closed = true
	return nil
}

// intervalLess hides the interval setter, like the proximity detector.
type intervalLess struct {
	inner *fakeCap
}

func (c *intervalLess) SetPower(ctx context.Context, on bool) error { return c.inner.SetPower(ctx, on) }
func (c *intervalLess) Close() error                                { return c.inner.Close() }

type testRig struct {
	st        *state
	ctrl      *Controller
	accel     *fakeCap
	compass   *fakeCap
	proximity *fakeCap
	opens     map[string]int
	openErr   map[string]error
	injected  []event.Event
}

func newTestRig() *testRig {
	r := &testRig{
		st:        &state{},
		accel:     &fakeCap{},
		compass:   &fakeCap{},
		proximity: &fakeCap{},
		opens:     map[string]int{},
		openErr:   map[string]error{},
	}
	opener := func(name string, cap device.Capability) func(context.Context) (device.Capability, error) {
		return func(ctx context.Context) (device.Capability, error) {
			if err := r.openErr[name]; err != nil {
				return nil, err
			}
			r.opens[name]++
			return cap, nil
		}
	}
	drivers := []*Driver{
		{Name: "accelerometer", Types: Acceleration.Bit(), Open: opener("accelerometer", r.accel)},
		{Name: "compass", Types: MagneticField.Bit() | Orientation.Bit() | Temperature.Bit(), Open: opener("compass", r.compass)},
		{Name: "proximity", Types: Proximity.Bit(), Open: opener("proximity", &intervalLess{inner: r.proximity})},
		{Name: "max9635", Types: Light.Bit()},
	}
	r.ctrl = NewController(r.st, drivers, func(e event.Event) error {
		r.injected = append(r.injected, e)
		return nil
	})
	return r
}

func TestController_InvalidType(t *testing.T) {
	r := newTestRig()
	err := r.ctrl.Activate(context.Background(), Type(42), true)
	assert.ErrorIs(t, err, ErrInvalidHandle)
	err = r.ctrl.Activate(context.Background(), Type(-1), true)
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestController_DependencyClosure(t *testing.T) {
	r := newTestRig()
	ctx := context.Background()

	require.NoError(t, r.ctrl.Activate(ctx, Orientation, true))
	requested, powered := r.ctrl.State()
	assert.Equal(t, Orientation.Bit(), requested)
	assert.Equal(t, Orientation.Bit()|Acceleration.Bit(), powered)
	assert.Equal(t, []bool{true}, r.accel.power)
	assert.Equal(t, []bool{true}, r.compass.power)

	// dropping orientation powers the accelerometer chip down again
	require.NoError(t, r.ctrl.Activate(ctx, Orientation, false))
	requested, powered = r.ctrl.State()
	assert.True(t, requested.Empty())
	assert.True(t, powered.Empty())
	assert.Equal(t, []bool{true, false}, r.accel.power)
	assert.True(t, r.accel.closed)
}

func TestController_ClosureKeepsRequestedAcceleration(t *testing.T) {
	r := newTestRig()
	ctx := context.Background()

	require.NoError(t, r.ctrl.Activate(ctx, Acceleration, true))
	require.NoError(t, r.ctrl.Activate(ctx, Orientation, true))
	require.NoError(t, r.ctrl.Activate(ctx, Orientation, false))

	_, powered := r.ctrl.State()
	assert.True(t, powered.Has(Acceleration), "independently requested acceleration must stay powered")
}

func TestController_Idempotence(t *testing.T) {
	r := newTestRig()
	ctx := context.Background()

	require.NoError(t, r.ctrl.Activate(ctx, Acceleration, true))
	require.NoError(t, r.ctrl.Activate(ctx, Acceleration, true))
	assert.Equal(t, []bool{true}, r.accel.power, "second identical request must issue no command")
	assert.Equal(t, 1, r.opens["accelerometer"])
}

func TestController_OpenFailureAbortsTransition(t *testing.T) {
	r := newTestRig()
	r.openErr["accelerometer"] = errors.New("device busy")

	err := r.ctrl.Activate(context.Background(), Acceleration, true)
	assert.ErrorIs(t, err, ErrDeviceUnavailable)
	requested, powered := r.ctrl.State()
	assert.True(t, requested.Empty())
	assert.True(t, powered.Empty())
}

func TestController_CommandRejectionAbortsTransition(t *testing.T) {
	r := newTestRig()
	r.compass.powerErr = errors.New("flag refused")

	err := r.ctrl.Activate(context.Background(), MagneticField, true)
	assert.ErrorIs(t, err, ErrCommandRejected)
	requested, powered := r.ctrl.State()
	assert.True(t, requested.Empty())
	assert.True(t, powered.Empty())
}

func TestController_HandleReleasedWhenPoweredOff(t *testing.T) {
	r := newTestRig()
	ctx := context.Background()

	require.NoError(t, r.ctrl.Activate(ctx, Proximity, true))
	assert.False(t, r.proximity.closed)
	require.NoError(t, r.ctrl.Activate(ctx, Proximity, false))
	assert.True(t, r.proximity.closed)

	// a later activation reopens the device
	require.NoError(t, r.ctrl.Activate(ctx, Proximity, true))
	assert.Equal(t, 2, r.opens["proximity"])
}

func TestController_SetIntervalBestEffort(t *testing.T) {
	r := newTestRig()
	ctx := context.Background()
	require.NoError(t, r.ctrl.Activate(ctx, Acceleration, true))
	require.NoError(t, r.ctrl.Activate(ctx, MagneticField, true))
	require.NoError(t, r.ctrl.Activate(ctx, Proximity, true))

	r.accel.intervalErr = errors.New("interval out of range")
	err := r.ctrl.SetInterval(ctx, 20*time.Millisecond)
	assert.Error(t, err)
	// the rejection must not keep other devices from being commanded
	assert.Equal(t, []time.Duration{20 * time.Millisecond}, r.compass.intervals)
	// the proximity detector has no interval to set
	assert.Empty(t, r.proximity.intervals)
}

func TestController_SetIntervalSkipsClosedDevices(t *testing.T) {
	r := newTestRig()
	require.NoError(t, r.ctrl.SetInterval(context.Background(), 50*time.Millisecond))
	assert.Empty(t, r.accel.intervals)
	assert.Empty(t, r.compass.intervals)
}

func TestController_WakeInjectsShutdownMarker(t *testing.T) {
	r := newTestRig()
	require.NoError(t, r.ctrl.Wake(context.Background()))
	require.Len(t, r.injected, 1)
	assert.True(t, r.injected[0].IsShutdown())
}
