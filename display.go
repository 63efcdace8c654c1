// Package glcd contains drivers for monochrome graphic display controllers
// driven over bit-banged GPIO.
package glcd

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/lcdwire/glcd/pixel"
)

// Errors
var (
	// ErrInit is returned when a display session cannot be established.
	ErrInit = errors.New("glcd: display initialization failed")

	// ErrGeometry is returned when a framebuffer does not match the page
	// layout fixed at initialization.
	ErrGeometry = errors.New("glcd: framebuffer size does not match display geometry")

	// ErrClosed is returned when a closed display is used.
	ErrClosed = errors.New("glcd: display closed")
)

// Display is a monochrome graphic display.
type Display interface {
	// Close the display driver.
	Close() error

	// Clear the display buffer.
	Clear()

	// At returns the color of the pixel at (x, y).
	At(x, y int) color.Color

	// Set the pixel color at (x, y).
	Set(x, y int, c color.Color)

	// Bounds is the display bounding box (dimensions).
	Bounds() image.Rectangle

	// ColorModel used by the display.
	ColorModel() color.Model

	// Show toggles the display on or off.
	Show(bool) error

	// SetContrast adjusts the contrast level.
	SetContrast(level uint8) error

	// Invert toggles inverted rendering.
	Invert(bool) error

	// Blit transmits an externally owned framebuffer to the display.
	Blit(pix []byte) error

	// Refresh redraws the display from its own buffer.
	Refresh() error
}

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels.
	Width int

	// Height of the display in pixels.
	Height int

	// Retransmit decides whether a page is transmitted during a blit. It is
	// handed the page index, the page's bytes in the incoming frame and the
	// same page in the previously transmitted frame. A nil value transmits
	// every page on every blit.
	Retransmit func(page int, next, prev []byte) bool
}

type baseDisplay struct {
	draw.Image
	c      Conn
	width  int
	height int
}

func (d *baseDisplay) Clear() {
	switch i := d.Image.(type) {
	case *pixel.MonoVerticalMSBImage:
		for j := range i.Pix {
			i.Pix[j] = 0
		}
	}
}

func (d *baseDisplay) data(data ...byte) error {
	return d.c.Data(data...)
}

func (d *baseDisplay) command(command byte, more ...byte) error {
	return d.c.Command(command, more...)
}
