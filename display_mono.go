package glcd

import (
	"github.com/rs/zerolog/log"

	"github.com/lcdwire/glcd/pixel"
)

type monoDisplay struct {
	baseDisplay
	halted bool
}

func (d *monoDisplay) init(config *Config) error {
	d.Image = pixel.NewMonoVerticalMSBImage(config.Width, config.Height)
	d.width = config.Width
	d.height = config.Height
	return nil
}

func (d *monoDisplay) Show(show bool) error {
	if show {
		return d.command(setDisplayOn)
	}
	return d.command(setDisplayOff)
}

func (d *monoDisplay) Invert(invert bool) error {
	if invert {
		return d.command(setInvertDisplay)
	}
	return d.command(setNormalDisplay)
}

// SetContrast is accepted but not wired up; the reference panel has no
// usable contrast control.
func (d *monoDisplay) SetContrast(level uint8) error {
	log.Debug().Uint8("level", level).Msg("contrast control not supported")
	return nil
}
