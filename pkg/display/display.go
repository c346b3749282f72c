package display

import (
	"errors"
	"image"
	"image/color"
)

// ErrDisplayFault wraps errors reported by the display hardware.
var ErrDisplayFault = errors.New("display fault")

// Display is a drawable surface.
type Display interface {
	// Bounds returns the drawable area.
	Bounds() image.Rectangle

	// Clear fills the whole surface with c.
	Clear(c color.Color) error

	// Draw composites img with its top-left corner at origin. Parts that
	// fall outside Bounds are clipped.
	Draw(img image.Image, origin image.Point) error
}

// CenterX returns the x offset that centers an image of width
// imageWidth on a display of width displayWidth. The result is negative
// when the image is wider than the display.
func CenterX(displayWidth, imageWidth int) int {
	return displayWidth/2 - imageWidth/2
}

// Placement returns the origin for drawing an image with bounds img,
// horizontally centered at the top of a display with bounds disp.
func Placement(disp, img image.Rectangle) image.Point {
	return image.Pt(disp.Min.X+CenterX(disp.Dx(), img.Dx()), disp.Min.Y)
}
