// Package display redraws a fixed bitmap on a display at a fixed period.
//
// The Renderer clears the display once when it starts, then draws the image
// horizontally centered at the top edge every period. The placement is
// recomputed each time from the display and image bounds, so repeated
// renders land on the same point.
//
// Framebuffer is the in-memory Display used on hosts without a panel. It
// uses the logical size of the board's 135x240 panel rotated 90 degrees:
// 240 wide and 135 high.
package display
