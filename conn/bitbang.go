// Package conn implements the low-level bus backends used by the display drivers.
package conn

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// Bit-bang bus errors.
var (
	// ErrPinUnavailable is returned when a GPIO line cannot be claimed as an
	// output, for example because it is invalid or owned by another process.
	ErrPinUnavailable = errors.New("conn: GPIO line unavailable")

	// ErrIO is returned when driving a claimed line fails mid-transfer.
	ErrIO = errors.New("conn: GPIO write fault")

	// ErrClosed is returned when the bus is used after Close.
	ErrClosed = errors.New("conn: bit-bang bus closed")
)

// BitBangPins are the six output lines of the bit-banged serial bus.
//
// Data is sampled by the controller on the rising clock edge. DC selects
// between command bytes (low) and pixel data bytes (high). CS is active-low.
// Ctrl and Reset are panel power and reset lines that are held high while the
// bus is open.
type BitBangPins struct {
	Data  gpio.PinOut
	Clock gpio.PinOut
	DC    gpio.PinOut
	CS    gpio.PinOut
	Ctrl  gpio.PinOut
	Reset gpio.PinOut
}

func (p *BitBangPins) lines() []struct {
	name string
	pin  gpio.PinOut
} {
	return []struct {
		name string
		pin  gpio.PinOut
	}{
		{"data", p.Data},
		{"clock", p.Clock},
		{"dc", p.DC},
		{"cs", p.CS},
		{"ctrl", p.Ctrl},
		{"reset", p.Reset},
	}
}

// BitBang shifts bytes onto a display controller by toggling GPIO lines
// directly, with no hardware serial peripheral involved.
//
// All operations run to completion on the calling goroutine. BitBang is not
// safe for concurrent use; the owner must serialize access.
type BitBang struct {
	pins   BitBangPins
	closed bool
}

// OpenBitBang claims all six lines as outputs with an initial high level.
//
// Acquisition is atomic: if any line cannot be claimed, the lines claimed
// earlier in the same call are released before the error is returned.
func OpenBitBang(pins BitBangPins) (*BitBang, error) {
	claimed := make([]gpio.PinOut, 0, 6)
	for _, l := range pins.lines() {
		if l.pin == nil || l.pin == gpio.INVALID {
			releasePins(claimed)
			return nil, fmt.Errorf("%w: no %s line", ErrPinUnavailable, l.name)
		}
		if err := l.pin.Out(gpio.High); err != nil {
			releasePins(claimed)
			return nil, fmt.Errorf("%w: %s line %s: %w", ErrPinUnavailable, l.name, l.pin, err)
		}
		claimed = append(claimed, l.pin)
	}
	return &BitBang{pins: pins}, nil
}

func releasePins(pins []gpio.PinOut) {
	for _, p := range pins {
		_ = p.Halt()
	}
}

func (b *BitBang) String() string {
	return fmt.Sprintf("bit-bang bus on %s/%s", b.pins.Data, b.pins.Clock)
}

// Close releases all six lines. It is safe to call multiple times.
func (b *BitBang) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	for _, l := range b.pins.lines() {
		_ = l.pin.Halt()
	}
	return nil
}

// Reset drives the reset line to the given level.
func (b *BitBang) Reset(level gpio.Level) error {
	if b.closed {
		return ErrClosed
	}
	return b.set(b.pins.Reset, level)
}

// SendByte shifts one byte onto the bus, most-significant bit first, framed
// by its own chip-select assertion. The DC line level is the negation of cmd,
// and is restored to its data-mode resting level afterwards.
func (b *BitBang) SendByte(v byte, cmd bool) error {
	if b.closed {
		return ErrClosed
	}
	if err := b.assert(gpio.Level(!cmd)); err != nil {
		return err
	}
	if err := b.shiftByte(v); err != nil {
		return err
	}
	return b.release()
}

// SendCommands shifts a group of command bytes under a single chip-select
// assertion. The controller expects multi-byte addressing sequences, such as
// the page/column triad, to arrive as one transaction.
func (b *BitBang) SendCommands(cmds ...byte) error {
	return b.send(cmds, true)
}

// SendData shifts a group of pixel data bytes under a single chip-select
// assertion.
func (b *BitBang) SendData(data ...byte) error {
	return b.send(data, false)
}

func (b *BitBang) send(buf []byte, cmd bool) error {
	if b.closed {
		return ErrClosed
	}
	if len(buf) == 0 {
		return nil
	}
	if err := b.assert(gpio.Level(!cmd)); err != nil {
		return err
	}
	for _, v := range buf {
		if err := b.shiftByte(v); err != nil {
			return err
		}
	}
	return b.release()
}

// assert asserts chip-select and sets the DC line. dcLevel is true for data
// bytes and false for command bytes.
func (b *BitBang) assert(dcLevel gpio.Level) error {
	if err := b.set(b.pins.CS, gpio.Low); err != nil {
		return err
	}
	return b.set(b.pins.DC, dcLevel)
}

// release releases chip-select and restores DC to its data-mode resting
// level.
func (b *BitBang) release() error {
	if err := b.set(b.pins.CS, gpio.High); err != nil {
		return err
	}
	return b.set(b.pins.DC, gpio.High)
}

// shiftByte clocks out the 8 bits of v, MSB first. For each bit the clock is
// driven low, the data line is set, and the clock is driven high so the
// controller samples on the rising edge. Timing depends only on ordering;
// there are no wait states.
func (b *BitBang) shiftByte(v byte) error {
	for mask := byte(0x80); mask != 0; mask >>= 1 {
		if err := b.set(b.pins.Clock, gpio.Low); err != nil {
			return err
		}
		if err := b.set(b.pins.Data, gpio.Level(v&mask != 0)); err != nil {
			return err
		}
		if err := b.set(b.pins.Clock, gpio.High); err != nil {
			return err
		}
	}
	return nil
}

func (b *BitBang) set(p gpio.PinOut, level gpio.Level) error {
	if err := p.Out(level); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrIO, p, err)
	}
	return nil
}
