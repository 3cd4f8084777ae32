// Command logicsimview is a windowed viewer for circuits built around the
// display and buzzer primitives: an SDL2 window showing the upscaled
// front buffer, an SDL2 audio queue fed by drained Buzzer notes, and
// keyboard capture feeding the Key primitive's held-key collaborator.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gatesim/core/audio"
	"github.com/gatesim/core/chip"
	"github.com/gatesim/core/chiplib"
	"github.com/gatesim/core/keyboard"
	"github.com/gatesim/core/scheduler"
	"github.com/gatesim/core/sim"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/draw"
)

var (
	circuitFile = flag.String("circuit_file", "", "Path to a JSON-encoded chip.Description (takes precedence over -type)")
	typeName    = flag.String("type", "SR_LATCH", "Built-in library type name to build when -circuit_file is unset")
	strategy    = flag.String("strategy", "reorder", "Scheduling strategy: reorder or topological")
	scale       = flag.Int("scale", 16, "Scale factor applied to the 16x16 display grid")
	fps         = flag.Int("fps", 30, "Target render rate")
	displayPath = flag.String("display", "", "Dot-separated sub-chip path to the DISPLAY_RGB/DISPLAY_DOT instance to render")
)

func main() {
	flag.Parse()

	def, err := buildDef()
	if err != nil {
		log.Fatalf("building circuit: %v", err)
	}
	s, err := sim.Init(def)
	if err != nil {
		log.Fatalf("initializing simulator: %v", err)
	}

	if *displayPath == "" {
		log.Fatal("-display is required: a dot-separated sub-chip path to a DISPLAY_RGB/DISPLAY_DOT instance")
	}
	disp, ok := findChip(s.Root, splitPath(*displayPath))
	if !ok {
		log.Fatalf("no sub-chip at path %q", *displayPath)
	}
	if disp.Type != chip.DisplayRGB && disp.Type != chip.DisplayDot {
		log.Fatalf("sub-chip %q is a %s, not a display", *displayPath, disp.Type)
	}

	side := 16
	w, h := side**scale, side**scale

	sdl.Main(func() {
		var window *sdl.Window
		var wg sync.WaitGroup
		wg.Add(1)
		sdl.Do(func() {
			if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
				log.Fatalf("can't init SDL: %v", err)
			}
			window, err = sdl.CreateWindow("logicsimview", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, int32(w), int32(h), sdl.WINDOW_SHOWN)
			if err != nil {
				log.Fatalf("can't create window: %v", err)
			}
			wg.Done()
		})
		wg.Wait()
		defer func() {
			window.Destroy()
			sdl.Quit()
		}()

		dev, err := openAudio()
		if err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer sdl.CloseAudioDevice(dev)
		}

		period := time.Second / time.Duration(*fps)
		running := true
		for running {
			sdl.Do(func() {
				for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
					switch e := event.(type) {
					case *sdl.QuitEvent:
						running = false
					case *sdl.KeyboardEvent:
						handleKey(def.Keys, e)
					}
				}
			})
			if !running {
				break
			}

			s.Frame()
			drainNotes(s.Audio, dev)

			sdl.Do(func() {
				surface, err := window.GetSurface()
				if err != nil {
					log.Printf("get surface: %v", err)
					return
				}
				draw.NearestNeighbor.Scale(surface, surface.Bounds(), frontBuffer{disp}, image.Rect(0, 0, side, side), draw.Over, nil)
				window.UpdateSurface()
			})
			time.Sleep(period)
		}
	})
}

func buildDef() (*sim.Def, error) {
	var desc chip.Description
	if *circuitFile != "" {
		data, err := os.ReadFile(*circuitFile)
		if err != nil {
			return nil, fmt.Errorf("reading circuit file: %w", err)
		}
		if err := json.Unmarshal(data, &desc); err != nil {
			return nil, fmt.Errorf("parsing circuit file: %w", err)
		}
	} else {
		d, ok := chiplib.Standard().Lookup(*typeName)
		if !ok {
			return nil, fmt.Errorf("unknown built-in type %q", *typeName)
		}
		desc = d
	}

	def := &sim.Def{
		Description: desc,
		Keys:        keyboard.NewSet(),
		Audio:       audio.NewRing(256),
	}
	switch *strategy {
	case "reorder", "":
	case "topological", "topo":
		def.Strategy = scheduler.Topological
	default:
		return nil, fmt.Errorf("unknown strategy %q", *strategy)
	}
	return def, nil
}

// findChip walks path down from root, since Chip only exposes one-level
// sub-chip lookup.
func findChip(root *chip.Chip, path []string) (*chip.Chip, bool) {
	c := root
	for _, id := range path {
		if id == "" {
			continue
		}
		next, ok := c.SubChip(id)
		if !ok {
			return nil, false
		}
		c = next
	}
	return c, true
}

func splitPath(p string) []string {
	if p == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(p); i++ {
		if i == len(p) || p[i] == '.' {
			out = append(out, p[start:i])
			start = i + 1
		}
	}
	return out
}

// frontBuffer adapts a DISPLAY_RGB/DISPLAY_DOT chip's 16x16 front buffer
// into an image.Image for draw.Scale to read from directly, mirroring the
// fastImage shortcut of reading a surface's backing memory instead of
// going through per-pixel draw calls.
type frontBuffer struct {
	c *chip.Chip
}

func (f frontBuffer) ColorModel() color.Model { return color.NRGBAModel }
func (f frontBuffer) Bounds() image.Rectangle { return image.Rect(0, 0, 16, 16) }

func (f frontBuffer) At(x, y int) color.Color {
	word := f.c.Memory[y*16+x]
	switch f.c.Type {
	case chip.DisplayRGB:
		return color.NRGBA{
			R: byte((word & 0xF) * 17),
			G: byte(((word >> 4) & 0xF) * 17),
			B: byte(((word >> 8) & 0xF) * 17),
			A: 255,
		}
	case chip.DisplayDot:
		v := byte(word)
		return color.NRGBA{R: v, G: v, B: v, A: 255}
	default:
		return color.NRGBA{A: 255}
	}
}

func handleKey(keys *keyboard.Set, e *sdl.KeyboardEvent) {
	name := sdl.GetKeyName(e.Keysym.Sym)
	if len(name) != 1 {
		return
	}
	r := rune(name[0])
	if e.Type == sdl.KEYDOWN {
		keys.Press(r)
	} else if e.Type == sdl.KEYUP {
		keys.Release(r)
	}
}

const audioSampleRate = 44100

func openAudio() (sdl.AudioDeviceID, error) {
	spec := &sdl.AudioSpec{
		Freq:     audioSampleRate,
		Format:   sdl.AUDIO_S16SYS,
		Channels: 1,
		Samples:  2048,
	}
	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return 0, err
	}
	sdl.PauseAudioDevice(dev, false)
	return dev, nil
}

// drainNotes pops every note the Buzzer primitive registered this frame
// and queues a short square wave tone for each. freqIndex/volumeIndex are
// the Buzzer's raw 0-255 input values; freq maps linearly onto an audible
// range and volume scales the wave's amplitude.
func drainNotes(recorder audio.Recorder, dev sdl.AudioDeviceID) {
	if dev == 0 {
		return
	}
	ring, ok := recorder.(*audio.Ring)
	if !ok {
		return
	}
	for _, note := range ring.Drain() {
		sdl.QueueAudio(dev, squareWave(note))
	}
}

func squareWave(note audio.Note) []byte {
	const durationMS = 60
	freq := 110.0 + float64(note.FreqIndex)*4.0
	amp := int16(float64(note.VolumeIndex) / 255.0 * math.MaxInt16 / 2)

	samples := audioSampleRate * durationMS / 1000
	buf := make([]byte, samples*2)
	period := audioSampleRate / freq
	for i := 0; i < samples; i++ {
		v := int16(0)
		if math.Mod(float64(i), period) < period/2 {
			v = amp
		} else {
			v = -amp
		}
		buf[2*i] = byte(v)
		buf[2*i+1] = byte(v >> 8)
	}
	return buf
}
