// Package termview renders a 16x16 display primitive's front buffer to
// the terminal using ANSI 256-color blocks, redrawing in place each
// frame. It reads raw packed nibble/byte words directly rather than
// driving the primitive's addr/clock pins, the same shortcut a debugger
// takes when it peeks a chip's memory instead of simulating reads.
package termview

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

const (
	side = 16 // every display primitive's front buffer is a 256 word grid.
)

// Dev is a terminal-backed 16x16 grid renderer. Zero value is not usable;
// construct with New.
type Dev struct {
	w   io.Writer
	buf bytes.Buffer
	// rowsDrawn tracks how many lines the previous frame printed, so the
	// next frame can rewind the cursor and overwrite in place.
	rowsDrawn int
}

// New returns a Dev that writes to the console.
func New() *Dev {
	return &Dev{w: colorable.NewColorableStdout()}
}

// DrawRGB renders a 256-word front buffer packed as r|g<<4|b<<8 nibbles,
// the layout evalDisplayRGB's memory uses.
func (d *Dev) DrawRGB(words []uint32) error {
	return d.draw(words, func(word uint32) color.NRGBA {
		return color.NRGBA{
			R: scaleNibble(word & 0xF),
			G: scaleNibble((word >> 4) & 0xF),
			B: scaleNibble((word >> 8) & 0xF),
			A: 255,
		}
	})
}

// DrawDot renders a 256-word front buffer of single-channel grayscale
// bytes, the layout evalDisplayDot's memory uses.
func (d *Dev) DrawDot(words []uint32) error {
	return d.draw(words, func(word uint32) color.NRGBA {
		v := byte(word)
		return color.NRGBA{R: v, G: v, B: v, A: 255}
	})
}

func (d *Dev) draw(words []uint32, toColor func(uint32) color.NRGBA) error {
	if len(words) != side*side {
		return fmt.Errorf("termview: want %d words, got %d", side*side, len(words))
	}
	d.buf.Reset()
	if d.rowsDrawn > 0 {
		fmt.Fprintf(&d.buf, "\033[%dA", d.rowsDrawn)
	}
	for row := 0; row < side; row++ {
		d.buf.WriteString("\r\033[0m")
		for col := 0; col < side; col++ {
			io.WriteString(&d.buf, ansi256.Default.Block(toColor(words[row*side+col])))
		}
		d.buf.WriteString("\033[0m\n")
	}
	d.rowsDrawn = side
	_, err := d.buf.WriteTo(d.w)
	return err
}

// Halt resets ANSI attributes and writes a newline, leaving the last drawn
// grid on screen with the cursor below it.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	d.rowsDrawn = 0
	return err
}

// scaleNibble stretches a 4-bit channel value (0-15) to the full 0-255
// byte range a color.NRGBA expects.
func scaleNibble(n uint32) byte {
	return byte(n * 17)
}
