package glcd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/lcdwire/glcd/conn"
)

// Conn is the connection interface for communicating with hardware.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Reset sets the reset pin to the provided level.
	Reset(gpio.Level) error

	// Command sends one or more command bytes as a single transaction.
	Command(byte, ...byte) error

	// Data sends data bytes as a single transaction.
	Data(...byte) error
}

// GPIOConfig describes the bit-banged GPIO bus configuration.
type GPIOConfig struct {
	Data  gpio.PinOut
	Clock gpio.PinOut
	DC    gpio.PinOut
	CS    gpio.PinOut
	Ctrl  gpio.PinOut
	Reset gpio.PinOut
}

// DefaultGPIOConfig matches the reference wiring on gpiochip0.
var DefaultGPIOConfig = GPIOConfig{
	Data:  gpioreg.ByName("GPIO54"),
	Clock: gpioreg.ByName("GPIO52"),
	DC:    gpioreg.ByName("GPIO32"),
	CS:    gpioreg.ByName("GPIO50"),
	Ctrl:  gpioreg.ByName("GPIO6"),
	Reset: gpioreg.ByName("GPIO7"),
}

type gpioConn struct {
	bus *conn.BitBang
}

// OpenGPIO claims the configured GPIO lines and returns a connection that
// bit-bangs the display serial protocol over them. A nil config uses
// DefaultGPIOConfig.
func OpenGPIO(config *GPIOConfig) (Conn, error) {
	if config == nil {
		config = new(GPIOConfig)
		*config = DefaultGPIOConfig
	}

	bus, err := conn.OpenBitBang(conn.BitBangPins{
		Data:  config.Data,
		Clock: config.Clock,
		DC:    config.DC,
		CS:    config.CS,
		Ctrl:  config.Ctrl,
		Reset: config.Reset,
	})
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("data", pinName(config.Data)).
		Str("clock", pinName(config.Clock)).
		Str("dc", pinName(config.DC)).
		Str("cs", pinName(config.CS)).
		Str("ctrl", pinName(config.Ctrl)).
		Str("reset", pinName(config.Reset)).
		Msg("claimed GPIO lines")

	return &gpioConn{bus: bus}, nil
}

func pinName(p gpio.PinOut) string {
	if p == nil {
		return "<none>"
	}
	return p.Name()
}

func (c *gpioConn) String() string {
	return fmt.Sprintf("GPIO %s", c.bus)
}

func (c *gpioConn) Close() error {
	return c.bus.Close()
}

func (c *gpioConn) Reset(level gpio.Level) error {
	return c.bus.Reset(level)
}

func (c *gpioConn) Command(cmnd byte, more ...byte) error {
	if len(more) == 0 {
		return c.bus.SendByte(cmnd, true)
	}
	return c.bus.SendCommands(append([]byte{cmnd}, more...)...)
}

func (c *gpioConn) Data(data ...byte) error {
	return c.bus.SendData(data...)
}
