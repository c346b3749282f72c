package display

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultRenderPeriod is the redraw period.
const DefaultRenderPeriod = 3000 * time.Millisecond

// RendererConfig configures a Renderer.
type RendererConfig struct {
	// Period between draws. Zero means DefaultRenderPeriod.
	Period time.Duration

	// Background is the color the display is cleared to at start.
	// Nil means black.
	Background color.Color

	// Clock provides the period delay. Nil means the real clock.
	Clock clockwork.Clock

	// Logger is the optional operational logger.
	Logger *slog.Logger
}

// Renderer periodically draws one image on a Display.
type Renderer struct {
	display Display
	image   image.Image
	config  RendererConfig

	mu      sync.Mutex
	renders int
	last    image.Point
}

// NewRenderer creates a renderer for img on d.
func NewRenderer(d Display, img image.Image, config RendererConfig) *Renderer {
	if config.Period <= 0 {
		config.Period = DefaultRenderPeriod
	}
	if config.Background == nil {
		config.Background = color.Black
	}
	if config.Clock == nil {
		config.Clock = clockwork.NewRealClock()
	}
	return &Renderer{
		display: d,
		image:   img,
		config:  config,
	}
}

// Run clears the display, then draws every period until ctx is cancelled
// or the display fails.
func (r *Renderer) Run(ctx context.Context) error {
	if err := r.display.Clear(r.config.Background); err != nil {
		return fmt.Errorf("%w: clear: %w", ErrDisplayFault, err)
	}
	if r.config.Logger != nil {
		r.config.Logger.Info("render task started",
			"period", r.config.Period,
			"display", r.display.Bounds().String(),
			"image", r.image.Bounds().String())
	}

	for {
		if _, err := r.RenderOnce(); err != nil {
			return err
		}
		select {
		case <-r.config.Clock.After(r.config.Period):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RenderOnce draws the image once and returns where it was drawn.
func (r *Renderer) RenderOnce() (image.Point, error) {
	at := Placement(r.display.Bounds(), r.image.Bounds())
	if err := r.display.Draw(r.image, at); err != nil {
		return at, fmt.Errorf("%w: draw at %v: %w", ErrDisplayFault, at, err)
	}

	r.mu.Lock()
	r.renders++
	r.last = at
	r.mu.Unlock()

	if r.config.Logger != nil {
		r.config.Logger.Debug("frame drawn", "x", at.X, "y", at.Y)
	}
	return at, nil
}

// Renders returns how many draws succeeded and where the last one landed.
func (r *Renderer) Renders() (int, image.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renders, r.last
}
