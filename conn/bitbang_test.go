package conn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// event is one observed line transition.
type event struct {
	pin   string
	level gpio.Level
}

// recorder collects line transitions across all pins of a bus, in order.
type recorder struct {
	events []event
	halted []string
}

func (r *recorder) clear() {
	r.events = r.events[:0]
}

// levelsAtRisingEdges replays the event log and returns the data line level
// at each rising clock edge, which is what the controller samples.
func (r *recorder) levelsAtRisingEdges() []gpio.Level {
	var (
		data   gpio.Level
		levels []gpio.Level
	)
	for _, e := range r.events {
		switch e.pin {
		case "data":
			data = e.level
		case "clock":
			if e.level == gpio.High {
				levels = append(levels, data)
			}
		}
	}
	return levels
}

func (r *recorder) count(pin string) int {
	var n int
	for _, e := range r.events {
		if e.pin == pin {
			n++
		}
	}
	return n
}

// testPin is a mock gpio.PinOut that records transitions instead of driving
// hardware.
type testPin struct {
	r         *recorder
	name      string
	fail      bool
	failAfter int
	writes    int
}

func (p *testPin) String() string   { return p.name }
func (p *testPin) Name() string     { return p.name }
func (p *testPin) Number() int      { return 0 }
func (p *testPin) Function() string { return "Out" }

func (p *testPin) Halt() error {
	p.r.halted = append(p.r.halted, p.name)
	return nil
}

func (p *testPin) Out(l gpio.Level) error {
	p.writes++
	if p.fail || (p.failAfter > 0 && p.writes > p.failAfter) {
		return errors.New("line busy")
	}
	p.r.events = append(p.r.events, event{p.name, l})
	return nil
}

func (p *testPin) PWM(gpio.Duty, physic.Frequency) error {
	return errors.New("not supported")
}

func testPins(r *recorder) BitBangPins {
	return BitBangPins{
		Data:  &testPin{r: r, name: "data"},
		Clock: &testPin{r: r, name: "clock"},
		DC:    &testPin{r: r, name: "dc"},
		CS:    &testPin{r: r, name: "cs"},
		Ctrl:  &testPin{r: r, name: "ctrl"},
		Reset: &testPin{r: r, name: "reset"},
	}
}

func testBus(t *testing.T) (*BitBang, *recorder) {
	t.Helper()
	r := new(recorder)
	b, err := OpenBitBang(testPins(r))
	require.NoError(t, err)
	r.clear()
	return b, r
}

func TestOpenBitBangInitialLevels(t *testing.T) {
	r := new(recorder)
	_, err := OpenBitBang(testPins(r))
	require.NoError(t, err)

	want := []event{
		{"data", gpio.High},
		{"clock", gpio.High},
		{"dc", gpio.High},
		{"cs", gpio.High},
		{"ctrl", gpio.High},
		{"reset", gpio.High},
	}
	assert.Equal(t, want, r.events, "all six lines must be claimed high, in order")
}

func TestOpenBitBangAllOrNothing(t *testing.T) {
	r := new(recorder)
	pins := testPins(r)
	pins.CS = &testPin{r: r, name: "cs", fail: true}

	_, err := OpenBitBang(pins)
	require.ErrorIs(t, err, ErrPinUnavailable)

	// Lines claimed before the failure are released, the rest never were.
	assert.Equal(t, []string{"data", "clock", "dc"}, r.halted)
}

func TestOpenBitBangMissingPin(t *testing.T) {
	r := new(recorder)
	pins := testPins(r)
	pins.Reset = nil

	_, err := OpenBitBang(pins)
	require.ErrorIs(t, err, ErrPinUnavailable)
	assert.Len(t, r.halted, 5)
}

func TestSendByteWire(t *testing.T) {
	b, r := testBus(t)

	require.NoError(t, b.SendByte(0b10110000, false))

	want := []gpio.Level{
		gpio.High, gpio.Low, gpio.High, gpio.High,
		gpio.Low, gpio.Low, gpio.Low, gpio.Low,
	}
	assert.Equal(t, want, r.levelsAtRisingEdges(), "bits must be shifted MSB first")
	assert.Equal(t, 16, r.count("clock"), "exactly 8 clock pulses per byte")

	require.NotEmpty(t, r.events)
	assert.Equal(t, event{"cs", gpio.Low}, r.events[0], "chip-select asserted first")
	assert.Equal(t, event{"dc", gpio.High}, r.events[len(r.events)-1], "DC restored to data level")
	assert.Equal(t, event{"cs", gpio.High}, r.events[len(r.events)-2], "chip-select released")
}

func TestSendByteCommandMode(t *testing.T) {
	b, r := testBus(t)

	require.NoError(t, b.SendByte(0xA6, true))

	// DC is the logical negation of "this is a command".
	assert.Equal(t, event{"dc", gpio.Low}, r.events[1])
	assert.Equal(t, event{"dc", gpio.High}, r.events[len(r.events)-1])
}

func TestSendCommandsSingleSelect(t *testing.T) {
	b, r := testBus(t)

	require.NoError(t, b.SendCommands(0xB0, 0x10, 0x04))

	assert.Equal(t, 2, r.count("cs"), "one select/deselect pair for the whole group")
	assert.Equal(t, 48, r.count("clock"), "8 clock pulses for each of 3 bytes")
	assert.Equal(t, event{"cs", gpio.Low}, r.events[0])
	assert.Equal(t, event{"dc", gpio.Low}, r.events[1])
}

func TestSendDataKeepsDCHigh(t *testing.T) {
	b, r := testBus(t)

	require.NoError(t, b.SendData(0x01, 0x02))

	for _, e := range r.events {
		if e.pin == "dc" {
			assert.Equal(t, gpio.High, e.level)
		}
	}
}

func TestSendDataEmpty(t *testing.T) {
	b, r := testBus(t)

	require.NoError(t, b.SendData())
	assert.Empty(t, r.events)
}

func TestWriteFaultAborts(t *testing.T) {
	r := new(recorder)
	pins := testPins(r)
	pins.Data = &testPin{r: r, name: "data", failAfter: 3}

	b, err := OpenBitBang(pins)
	require.NoError(t, err)

	err = b.SendData(0xFF, 0xFF)
	require.ErrorIs(t, err, ErrIO)
}

func TestReset(t *testing.T) {
	b, r := testBus(t)

	require.NoError(t, b.Reset(gpio.Low))
	assert.Equal(t, []event{{"reset", gpio.Low}}, r.events)
}

func TestCloseIdempotent(t *testing.T) {
	b, r := testBus(t)

	require.NoError(t, b.Close())
	assert.Len(t, r.halted, 6)

	require.NoError(t, b.Close())
	assert.Len(t, r.halted, 6, "second close must not release lines again")

	assert.ErrorIs(t, b.SendByte(0x00, false), ErrClosed)
	assert.ErrorIs(t, b.Reset(gpio.High), ErrClosed)
}
