// Package draw implements primitive shape drawing over [image/draw.Image]
// destinations such as the packed display images in package pixel.
package draw

import (
	"image/draw"
)

// Image is an alias for [image/draw.Image].
type Image = draw.Image
