package pixel

import (
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestMonoVerticalMSBImage(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewMonoVerticalMSBImage(size.X, size.Y)
	}, MonoModel)
}

// The topmost pixel of every 8-pixel column group lives in the most
// significant bit of its byte.
func TestMonoVerticalMSBLayout(t *testing.T) {
	i := NewMonoVerticalMSBImage(128, 64)

	if v := len(i.Pix); v != 128*64/8 {
		t.Fatalf("expected %d bytes, got %d", 128*64/8, v)
	}

	i.Set(0, 0, On)
	if v := i.Pix[0]; v != 0x80 {
		t.Errorf("expected pixel (0,0) in bit 7, got %#02x", v)
	}

	i.Set(0, 7, On)
	if v := i.Pix[0]; v != 0x81 {
		t.Errorf("expected pixel (0,7) in bit 0, got %#02x", v)
	}

	i.Set(3, 9, On)
	if v := i.Pix[128+3]; v != 0x40 {
		t.Errorf("expected pixel (3,9) in bit 6 of the second page, got %#02x", v)
	}

	i.Set(0, 0, Off)
	if v := i.Pix[0]; v != 0x01 {
		t.Errorf("expected pixel (0,0) cleared, got %#02x", v)
	}
}

func testImage(t *testing.T, f func(image.Point) Image, model color.Model) {
	t.Helper()
	testCases := []image.Point{
		image.Point{},
		image.Pt(1, 1),
		image.Pt(2, 2),
		image.Pt(128, 16),
		image.Pt(128, 64),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			i := f(test)

			if v := i.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected image size %s, got %s", test, v)
			}

			if v := i.ColorModel(); v != model {
				it.Errorf("expected color model %T, got %T", model, v)
			}

			it.Run("in-bounds", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := testRandomColor()
						i.Set(x, y, c)
						if v := i.ColorModel().Convert(c); i.At(x, y) != v {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
							return
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				for y := -test.Y; y < test.Y*2; y++ {
					for x := -test.X; x < test.X*2; x++ {
						i.Set(x, y, testRandomColor())
						if x < 0 || y < 0 {
							if v := i.At(x, y); v != color.Transparent {
								itt.Fatalf("pixel (%d,%d) is %#+v, expected transparent", x, y, v)
								return
							}
						}
					}
				}
			})

			it.Run("fill", func(itt *testing.T) {
				c := testRandomColor()
				i.Fill(c)
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := i.ColorModel().Convert(c); i.At(x, y) != v {
						itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
						return
					}
				}
			})

			it.Run("clear", func(itt *testing.T) {
				i.Clear()
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := monoModel(i.At(x, y)); v != Off {
						itt.Fatalf("pixel (%d,%d) is not black", x, y)
					}
				}
			})
		})
	}
}

func testRandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(255)),
		G: uint8(rand.Intn(255)),
		B: uint8(rand.Intn(255)),
		A: 0xFF,
	}
}

func rgb(r, g, b uint8) color.Color {
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}
