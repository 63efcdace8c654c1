// Package pixel implements the packed monochrome color and image types used
// by paged graphic display controllers.
//
// The types are compatible with Go's native [color.Color] and [image.Image] /
// [draw.Image] interfaces.
package pixel
