package device

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type portMock struct {
	mock.Mock
}

func (p *portMock) Command(ctx context.Context, op uint16, arg int32) error {
	args := p.Called(ctx, op, arg)
	return args.Error(0)
}

func (p *portMock) Close() error {
	return p.Called().Error(0)
}

func TestForChip(t *testing.T) {
	port := &portMock{}
	tests := []struct {
		chip string
		want Capability
	}{
		{"kxtf9", &KXTF9{port: port}},
		{"akm8973", &AKM8973{port: port}},
		{"sfh7743", &SFH7743{port: port}},
	}
	for _, tt := range tests {
		t.Run(tt.chip, func(t *testing.T) {
			got, err := ForChip(tt.chip, port)
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
		})
	}

	_, err := ForChip("bma150", port)
	assert.ErrorIs(t, err, ErrUnknownChip)
}

func TestKXTF9_Power(t *testing.T) {
	ctx := context.Background()
	port := &portMock{}
	port.On("Command", ctx, kxtf9OpEnable, int32(1)).Return(nil).Once()
	port.On("Command", ctx, kxtf9OpEnable, int32(0)).Return(nil).Once()

	d := NewKXTF9(port)
	require.NoError(t, d.SetPower(ctx, true))
	require.NoError(t, d.SetPower(ctx, false))
	port.AssertExpectations(t)
}

func TestKXTF9_Interval(t *testing.T) {
	ctx := context.Background()
	port := &portMock{}
	port.On("Command", ctx, kxtf9OpDelay, int32(20)).Return(nil).Once()

	require.NoError(t, NewKXTF9(port).SetInterval(ctx, 20*time.Millisecond))
	port.AssertExpectations(t)
}

func TestAKM8973_PowerTogglesAllEngines(t *testing.T) {
	ctx := context.Background()
	port := &portMock{}
	var order []uint16
	for _, op := range []uint16{akmOpMagFlag, akmOpOrientFlag, akmOpTempFlag} {
		op := op
		port.On("Command", ctx, op, int32(1)).Run(func(mock.Arguments) {
			order = append(order, op)
		}).Return(nil).Once()
	}

	require.NoError(t, NewAKM8973(port).SetPower(ctx, true))
	assert.Equal(t, []uint16{akmOpMagFlag, akmOpOrientFlag, akmOpTempFlag}, order)
	port.AssertExpectations(t)
}

func TestAKM8973_PowerAbortsOnFirstFailure(t *testing.T) {
	ctx := context.Background()
	rejected := errors.New("bus stuck")
	port := &portMock{}
	port.On("Command", ctx, akmOpMagFlag, int32(1)).Return(rejected).Once()

	err := NewAKM8973(port).SetPower(ctx, true)
	assert.ErrorIs(t, err, rejected)
	port.AssertNotCalled(t, "Command", ctx, akmOpOrientFlag, int32(1))
	port.AssertNotCalled(t, "Command", ctx, akmOpTempFlag, int32(1))
}

func TestSFH7743_Power(t *testing.T) {
	ctx := context.Background()
	port := &portMock{}
	port.On("Command", ctx, sfh7743OpEnable, int32(1)).Return(nil).Once()

	d := NewSFH7743(port)
	require.NoError(t, d.SetPower(ctx, true))

	// proximity detection has a fixed cadence
	_, configurable := Capability(d).(IntervalSetter)
	assert.False(t, configurable)
	port.AssertExpectations(t)
}

func TestClose_ReleasesPort(t *testing.T) {
	port := &portMock{}
	port.On("Close").Return(nil).Once()

	require.NoError(t, NewKXTF9(port).Close())
	port.AssertExpectations(t)
}
