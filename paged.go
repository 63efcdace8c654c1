package glcd

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lcdwire/glcd/pixel"
)

// Profile describes the paged memory layout and fixed setup commands of a
// supported controller dialect. Page count is derived from the height; each
// page is 8 rows tall and spans the full pixel width.
type Profile struct {
	// Width and Height of the panel in pixels. Height must be a multiple
	// of 8.
	Width  int
	Height int

	// StartColumn is the first controller RAM column of the visible area.
	StartColumn byte

	// Setup commands emitted before every blit.
	Setup []byte
}

// PageCount returns the number of controller pages covered by the profile.
func (p Profile) PageCount() int {
	return p.Height >> 3
}

func (p Profile) validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: invalid size %dx%d", ErrInit, p.Width, p.Height)
	}
	if p.Height&7 != 0 {
		return fmt.Errorf("%w: height %d is not a multiple of 8", ErrInit, p.Height)
	}
	return nil
}

// pagedDisplay drives any controller that exposes its RAM as vertically
// paged bytes addressed by a page-select/column-high/column-low triad.
type pagedDisplay struct {
	monoDisplay
	profile    Profile
	pageCount  int
	backing    []byte
	retransmit func(page int, next, prev []byte) bool
	closed     bool
}

var _ Display = (*pagedDisplay)(nil)

// NewPaged opens a display session for the given controller profile. The
// page layout is computed once here and reused by every blit.
func NewPaged(c Conn, profile Profile, config *Config) (Display, error) {
	if config == nil {
		config = &Config{}
	}
	if config.Width == 0 {
		config.Width = profile.Width
	}
	if config.Height == 0 {
		config.Height = profile.Height
	}
	profile.Width = config.Width
	profile.Height = config.Height
	if err := profile.validate(); err != nil {
		return nil, err
	}

	d := &pagedDisplay{
		monoDisplay: monoDisplay{
			baseDisplay: baseDisplay{
				c: c,
			},
		},
		profile:    profile,
		pageCount:  profile.PageCount(),
		retransmit: config.Retransmit,
	}
	if err := d.monoDisplay.init(config); err != nil {
		return nil, err
	}

	// The session image starts all-zero, so an all-ones backing store
	// guarantees the first blit is a full redraw regardless of the
	// retransmit predicate.
	d.backing = make([]byte, d.pageCount*profile.Width)
	for i := range d.backing {
		d.backing[i] = 0xFF
	}

	log.Debug().
		Int("width", profile.Width).
		Int("height", profile.Height).
		Int("pages", d.pageCount).
		Msg("display session opened")

	return d, nil
}

func (d *pagedDisplay) String() string {
	return fmt.Sprintf("paged GLCD %dx%d", d.width, d.height)
}

// Blit transmits pix, a vertically paged framebuffer of exactly
// pageCount*width bytes, to the display. The setup commands are emitted on
// every call, then each page is addressed with its command triad and
// streamed in increasing column order. On success the backing store holds a
// full copy of the transmitted frame.
func (d *pagedDisplay) Blit(pix []byte) error {
	if d.closed {
		return ErrClosed
	}
	if len(pix) != len(d.backing) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrGeometry, len(pix), len(d.backing))
	}

	log.Trace().Int("pages", d.pageCount).Msg("blit")

	for _, cmd := range d.profile.Setup {
		if err := d.command(cmd); err != nil {
			return err
		}
	}

	for page := 0; page < d.pageCount; page++ {
		var (
			off  = page * d.profile.Width
			next = pix[off : off+d.profile.Width]
		)
		if d.retransmit != nil && !d.retransmit(page, next, d.backing[off:off+d.profile.Width]) {
			continue
		}
		if err := d.command(
			setPageAddr|byte(page),
			setHighColumn|(d.profile.StartColumn>>4),
			setLowColumn|(d.profile.StartColumn&0x0F),
		); err != nil {
			return err
		}
		if err := d.data(next...); err != nil {
			return err
		}
	}

	// Full-frame copy, even when pages were skipped.
	copy(d.backing, pix)
	return nil
}

func (d *pagedDisplay) Refresh() error {
	return d.Blit(d.Image.(*pixel.MonoVerticalMSBImage).Pix)
}

func (d *pagedDisplay) Show(show bool) error {
	if d.closed {
		return ErrClosed
	}
	return d.monoDisplay.Show(show)
}

func (d *pagedDisplay) Invert(invert bool) error {
	if d.closed {
		return ErrClosed
	}
	return d.monoDisplay.Invert(invert)
}

func (d *pagedDisplay) SetContrast(level uint8) error {
	if d.closed {
		return ErrClosed
	}
	return d.monoDisplay.SetContrast(level)
}

func (d *pagedDisplay) Close() error {
	if d.closed {
		return nil
	}
	if !d.halted {
		if err := d.monoDisplay.Show(false); err != nil {
			d.closed = true
			_ = d.c.Close()
			return err
		}
		d.halted = true
	}
	d.closed = true
	return d.c.Close()
}
