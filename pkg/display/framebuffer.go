package display

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
)

// Default logical panel size: 135x240 rotated 90 degrees.
const (
	DefaultWidth  = 240
	DefaultHeight = 135
)

// Framebuffer is an in-memory Display. It is safe for concurrent use.
type Framebuffer struct {
	mu     sync.Mutex
	img    *image.RGBA
	draws  int
	clears int
	fault  error
}

// NewFramebuffer creates a black framebuffer of the given size.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Bounds implements Display.
func (f *Framebuffer) Bounds() image.Rectangle {
	return f.img.Bounds()
}

// Clear implements Display.
func (f *Framebuffer) Clear(c color.Color) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fault != nil {
		return f.fault
	}
	draw.Draw(f.img, f.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	f.clears++
	return nil
}

// Draw implements Display.
func (f *Framebuffer) Draw(img image.Image, origin image.Point) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fault != nil {
		return f.fault
	}
	src := img.Bounds()
	dst := image.Rectangle{Min: origin, Max: origin.Add(src.Size())}
	draw.Draw(f.img, dst, img, src.Min, draw.Src)
	f.draws++
	return nil
}

// Fail makes every later Clear and Draw return err.
func (f *Framebuffer) Fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fault = err
}

// Draws returns the number of successful draws.
func (f *Framebuffer) Draws() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draws
}

// Clears returns the number of successful clears.
func (f *Framebuffer) Clears() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clears
}

// Snapshot returns a copy of the current contents.
func (f *Framebuffer) Snapshot() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := image.NewRGBA(f.img.Bounds())
	copy(out.Pix, f.img.Pix)
	return out
}

var _ Display = (*Framebuffer)(nil)
