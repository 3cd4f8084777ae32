// Command logicsimctl builds and drives circuits headlessly: bench a
// strategy's throughput, run a fixed number of frames and print pin
// values, or watch a display primitive update live in the terminal.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gatesim/core/chip"
	"github.com/gatesim/core/chiplib"
	"github.com/gatesim/core/cmd/logicsimctl/internal/termview"
	"github.com/gatesim/core/pinstate"
	"github.com/gatesim/core/scheduler"
	"github.com/gatesim/core/sim"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "logicsimctl",
		Short: "Build and drive logic circuits from the command line",
	}

	rootCmd.AddCommand(newBenchCmd(), newRunCmd(), newWatchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// circuitFlags are the construction flags shared by every subcommand.
type circuitFlags struct {
	circuitFile string
	typeName    string
	strategy    string
	seed        int64
	haveSeed    bool
	metrics     bool
}

func (f *circuitFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.circuitFile, "circuit-file", "", "Path to a JSON-encoded chip.Description (takes precedence over --type)")
	cmd.Flags().StringVar(&f.typeName, "type", "SR_LATCH", "Built-in library type name to build when --circuit-file is unset")
	cmd.Flags().StringVar(&f.strategy, "strategy", "reorder", "Scheduling strategy: reorder or topological")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "Deterministic PRNG seed (omit for a system-random seed)")
	cmd.Flags().BoolVar(&f.metrics, "metrics", false, "Enable per-frame evaluation metrics")
	original := cmd.PreRunE
	cmd.PreRunE = func(c *cobra.Command, args []string) error {
		f.haveSeed = c.Flags().Changed("seed")
		if original != nil {
			return original(c, args)
		}
		return nil
	}
}

func (f *circuitFlags) strategyKind() (scheduler.StrategyKind, error) {
	switch strings.ToLower(f.strategy) {
	case "reorder", "":
		return scheduler.Reorder, nil
	case "topological", "topo":
		return scheduler.Topological, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q (want reorder or topological)", f.strategy)
	}
}

func (f *circuitFlags) description() (chip.Description, error) {
	if f.circuitFile != "" {
		data, err := os.ReadFile(f.circuitFile)
		if err != nil {
			return chip.Description{}, fmt.Errorf("reading circuit file: %w", err)
		}
		var desc chip.Description
		if err := json.Unmarshal(data, &desc); err != nil {
			return chip.Description{}, fmt.Errorf("parsing circuit file: %w", err)
		}
		return desc, nil
	}
	desc, ok := chiplib.Standard().Lookup(f.typeName)
	if !ok {
		return chip.Description{}, fmt.Errorf("unknown built-in type %q", f.typeName)
	}
	return desc, nil
}

func (f *circuitFlags) build() (*sim.Simulator, error) {
	strat, err := f.strategyKind()
	if err != nil {
		return nil, err
	}
	desc, err := f.description()
	if err != nil {
		return nil, err
	}
	def := &sim.Def{
		Description:    desc,
		Strategy:       strat,
		MetricsEnabled: f.metrics,
	}
	if f.haveSeed {
		seed := uint32(f.seed)
		def.DeterministicSeed = &seed
	}
	return sim.Init(def)
}

// inputFlags collects repeated --input owner.pin=value assignments into
// ready-to-drive input handles.
type inputFlags struct {
	raw []string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.raw, "input", nil, "Drive an input pin: owner.pin=value or pin=value for the root's own pins (repeatable)")
}

func (f *inputFlags) handles() ([]*sim.InputHandle, error) {
	handles := make([]*sim.InputHandle, 0, len(f.raw))
	for _, spec := range f.raw {
		eq := strings.IndexByte(spec, '=')
		if eq < 0 {
			return nil, fmt.Errorf("invalid --input %q (want owner.pin=value)", spec)
		}
		addrPart, valPart := spec[:eq], spec[eq+1:]
		addr := chip.PinAddress{PinID: addrPart}
		if dot := strings.IndexByte(addrPart, '.'); dot >= 0 {
			addr = chip.PinAddress{OwnerChipID: addrPart[:dot], PinID: addrPart[dot+1:]}
		}
		value, err := strconv.ParseUint(valPart, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid --input value %q: %w", spec, err)
		}
		h := sim.NewInputHandle(addr)
		h.Set(pinstate.State(value))
		handles = append(handles, h)
	}
	return handles, nil
}

func newBenchCmd() *cobra.Command {
	var cf circuitFlags
	var frames int
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure frame throughput for a circuit and strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cf.metrics = true
			s, err := cf.build()
			if err != nil {
				return err
			}
			start := time.Now()
			for i := 0; i < frames; i++ {
				s.Frame()
			}
			elapsed := time.Since(start)
			fmt.Printf("%d frames in %s (%.0f frames/sec)\n", frames, elapsed, float64(frames)/elapsed.Seconds())
			fmt.Printf("primitive evals: %d\n", s.Scheduler.Metrics.PrimitiveEvals)
			return nil
		},
	}
	cf.register(cmd)
	cmd.Flags().IntVar(&frames, "frames", 10000, "Number of frames to drive")
	return cmd
}

func newRunCmd() *cobra.Command {
	var cf circuitFlags
	var inf inputFlags
	var frames int
	var printPins []string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive a circuit for a fixed number of frames and print pin values",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cf.build()
			if err != nil {
				return err
			}
			handles, err := inf.handles()
			if err != nil {
				return err
			}
			for i := 0; i < frames; i++ {
				s.Frame(handles...)
			}
			for _, id := range printPins {
				p, ok := s.Pin(id)
				if !ok {
					fmt.Printf("%s: <no such pin>\n", id)
					continue
				}
				st := p.State()
				fmt.Printf("%s: 0x%x (high=%v)\n", id, pinstate.Value(st, 8), pinstate.FirstBitHigh(st))
			}
			return nil
		},
	}
	cf.register(cmd)
	inf.register(cmd)
	cmd.Flags().IntVar(&frames, "frames", 10, "Number of frames to drive")
	cmd.Flags().StringArrayVar(&printPins, "print", nil, "Root pin id to print after the run (repeatable)")
	return cmd
}

func newWatchCmd() *cobra.Command {
	var cf circuitFlags
	var inf inputFlags
	var displayPath string
	var fps int
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Drive a circuit continuously, rendering a display sub-chip to the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cf.build()
			if err != nil {
				return err
			}
			handles, err := inf.handles()
			if err != nil {
				return err
			}
			disp, ok := findChip(s.Root, strings.Split(displayPath, "."))
			if !ok {
				return fmt.Errorf("no sub-chip at path %q", displayPath)
			}
			dev := termview.New()
			defer dev.Halt()
			period := time.Second / time.Duration(fps)
			for {
				s.Frame(handles...)
				var err error
				switch disp.Type {
				case chip.DisplayRGB:
					err = dev.DrawRGB(disp.Memory[:256])
				case chip.DisplayDot:
					err = dev.DrawDot(disp.Memory[:256])
				default:
					return fmt.Errorf("sub-chip %q is a %s, not a display", displayPath, disp.Type)
				}
				if err != nil {
					return err
				}
				time.Sleep(period)
			}
		},
	}
	cf.register(cmd)
	inf.register(cmd)
	cmd.Flags().StringVar(&displayPath, "display", "", "Dot-separated sub-chip path to a DISPLAY_RGB/DISPLAY_DOT instance to render")
	cmd.Flags().IntVar(&fps, "fps", 30, "Render rate")
	cmd.MarkFlagRequired("display")
	return cmd
}

// findChip walks path (a dotted sub-chip id sequence) down from root,
// since Chip only exposes one-level-at-a-time lookup.
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
