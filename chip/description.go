// Package chip implements the Chip entity: typed
// metadata, owned input/output pin arrays, an owned sub-chip array, and
// optional internal memory, plus the ChipDescription/PinAddress data
// consumed at boot.
package chip

// Type enumerates every chip kind. Custom is the only type without a
// native evaluator: it is always a transparent container.
type Type int

const (
	Unknown Type = iota
	NAND
	TriStateBuffer
	Clock
	Pulse
	Key
	BusOrigin1
	BusOrigin4
	BusOrigin8
	BusTerminus1
	BusTerminus4
	BusTerminus8
	Split4to1
	Split8to4
	Split8to1
	Merge1to4
	Merge1to8
	Merge4to8
	ROM256x16
	DevRAM8
	DisplayRGB
	DisplayDot
	Display7Segment
	LED
	Buzzer
	Custom
)

// names backs Type.String() and the case-insensitive name lookup the
// library/builder use to resolve a sub-chip's TypeName.
var names = map[Type]string{
	NAND:             "NAND",
	TriStateBuffer:   "TRISTATE_BUFFER",
	Clock:            "CLOCK",
	Pulse:            "PULSE",
	Key:              "KEY",
	BusOrigin1:       "BUS_ORIGIN_1",
	BusOrigin4:       "BUS_ORIGIN_4",
	BusOrigin8:       "BUS_ORIGIN_8",
	BusTerminus1:     "BUS_TERMINUS_1",
	BusTerminus4:     "BUS_TERMINUS_4",
	BusTerminus8:     "BUS_TERMINUS_8",
	Split4to1:        "SPLIT_4_1",
	Split8to4:        "SPLIT_8_4",
	Split8to1:        "SPLIT_8_1",
	Merge1to4:        "MERGE_1_4",
	Merge1to8:        "MERGE_1_8",
	Merge4to8:        "MERGE_4_8",
	ROM256x16:        "ROM_256X16",
	DevRAM8:          "DEV_RAM_8",
	DisplayRGB:       "DISPLAY_RGB",
	DisplayDot:       "DISPLAY_DOT",
	Display7Segment:  "DISPLAY_7SEG",
	LED:              "LED",
	Buzzer:           "BUZZER",
	Custom:           "CUSTOM",
}

func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return "UNKNOWN"
}

// IsBusOrigin reports whether t is one of the three bus-origin widths.
// Exercised by the scheduler's reorder-step fallback and dynamic-reorder
// swap heuristic, which both special-case bus-origin chips and nothing
// else (see DESIGN.md, Open Question 2).
func (t Type) IsBusOrigin() bool {
	switch t {
	case BusOrigin1, BusOrigin4, BusOrigin8:
		return true
	}
	return false
}

// PinDescription describes one input or output pin of a ChipDescription.
type PinDescription struct {
	ID       string
	Name     string
	BitWidth int // 1, 4, or 8.
}

// SubChipDescription describes one sub-chip instance inside a composite
// ChipDescription.
type SubChipDescription struct {
	TypeName     string // resolved case-insensitively against a Library.
	ID           string
	Label        string
	InternalData []uint32 // optional persistent data (e.g. ROM contents).
}

// HostChipID is the sentinel PinAddress.OwnerChipID meaning "the chip
// this address is being resolved against, not one of its sub-chips".
const HostChipID = ""

// PinAddress identifies a pin anywhere in a chip's immediate scope: its
// own pins (OwnerChipID == HostChipID) or a named sub-chip's pins.
type PinAddress struct {
	OwnerChipID string
	PinID       string
}

// WireDescription connects one source pin to one target pin.
type WireDescription struct {
	Source PinAddress
	Target PinAddress
}

// Description is the ChipDescription consumed at boot: a
// named, typed node in the DAG the Builder expands. A description with
// no SubChips/Wires and a non-Custom Type is a primitive leaf template
// (e.g. the built-in "NAND" description always has Type == NAND); a
// description with Type == Custom is a composite whose behavior comes
// entirely from its SubChips/Wires.
type Description struct {
	Name     string
	Type     Type
	Inputs   []PinDescription
	Outputs  []PinDescription
	SubChips []SubChipDescription
	Wires    []WireDescription
	// PersistentData seeds internal memory verbatim for types that
	// support externally supplied contents (currently ROM256x16 only).
	// Length must exactly match the type's required memory size or
	// construction fails.
	PersistentData []uint32
}
