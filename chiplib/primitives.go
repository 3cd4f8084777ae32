package chiplib

import "github.com/gatesim/core/chip"

// primitiveDescriptions returns one leaf ChipDescription per built-in
// primitive type: its pin shape only, no sub-chips or wires. The
// builder constructs these directly from their pin shapes rather than
// recursing, since they have no sub-chips.
func primitiveDescriptions() []chip.Description {
	return []chip.Description{
		{Name: "NAND", Type: chip.NAND,
			Inputs:  []chip.PinDescription{pin("in0", 1), pin("in1", 1)},
			Outputs: []chip.PinDescription{pin("out0", 1)}},
		{Name: "TRISTATE_BUFFER", Type: chip.TriStateBuffer,
			Inputs:  []chip.PinDescription{pin("data", 1), pin("enable", 1)},
			Outputs: []chip.PinDescription{pin("out", 1)}},
		{Name: "CLOCK", Type: chip.Clock,
			Outputs: []chip.PinDescription{pin("out", 1)}},
		{Name: "PULSE", Type: chip.Pulse,
			Inputs:  []chip.PinDescription{pin("in", 1)},
			Outputs: []chip.PinDescription{pin("out", 1)}},
		{Name: "KEY", Type: chip.Key,
			Outputs: []chip.PinDescription{pin("out", 1)}},
		{Name: "BUS_ORIGIN_1", Type: chip.BusOrigin1,
			Inputs:  []chip.PinDescription{pin("in", 1)},
			Outputs: []chip.PinDescription{pin("out", 1)}},
		{Name: "BUS_ORIGIN_4", Type: chip.BusOrigin4,
			Inputs:  []chip.PinDescription{pin("in", 4)},
			Outputs: []chip.PinDescription{pin("out", 4)}},
		{Name: "BUS_ORIGIN_8", Type: chip.BusOrigin8,
			Inputs:  []chip.PinDescription{pin("in", 8)},
			Outputs: []chip.PinDescription{pin("out", 8)}},
		{Name: "BUS_TERMINUS_1", Type: chip.BusTerminus1,
			Inputs:  []chip.PinDescription{pin("in", 1)},
			Outputs: []chip.PinDescription{pin("out", 1)}},
		{Name: "BUS_TERMINUS_4", Type: chip.BusTerminus4,
			Inputs:  []chip.PinDescription{pin("in", 4)},
			Outputs: []chip.PinDescription{pin("out", 4)}},
		{Name: "BUS_TERMINUS_8", Type: chip.BusTerminus8,
			Inputs:  []chip.PinDescription{pin("in", 8)},
			Outputs: []chip.PinDescription{pin("out", 8)}},
		{Name: "SPLIT_4_1", Type: chip.Split4to1,
			Inputs: []chip.PinDescription{pin("in", 4)},
			Outputs: []chip.PinDescription{
				pin("out0", 1), pin("out1", 1), pin("out2", 1), pin("out3", 1)}},
		{Name: "SPLIT_8_4", Type: chip.Split8to4,
			Inputs:  []chip.PinDescription{pin("in", 8)},
			Outputs: []chip.PinDescription{pin("hi4", 4), pin("lo4", 4)}},
		{Name: "SPLIT_8_1", Type: chip.Split8to1,
			Inputs: []chip.PinDescription{pin("in", 8)},
			Outputs: []chip.PinDescription{
				pin("out0", 1), pin("out1", 1), pin("out2", 1), pin("out3", 1),
				pin("out4", 1), pin("out5", 1), pin("out6", 1), pin("out7", 1)}},
		{Name: "MERGE_1_4", Type: chip.Merge1to4,
			Inputs: []chip.PinDescription{
				pin("in0", 1), pin("in1", 1), pin("in2", 1), pin("in3", 1)},
			Outputs: []chip.PinDescription{pin("out", 4)}},
		{Name: "MERGE_1_8", Type: chip.Merge1to8,
			Inputs: []chip.PinDescription{
				pin("in0", 1), pin("in1", 1), pin("in2", 1), pin("in3", 1),
				pin("in4", 1), pin("in5", 1), pin("in6", 1), pin("in7", 1)},
			Outputs: []chip.PinDescription{pin("out", 8)}},
		{Name: "MERGE_4_8", Type: chip.Merge4to8,
			Inputs:  []chip.PinDescription{pin("hi4", 4), pin("lo4", 4)},
			Outputs: []chip.PinDescription{pin("out", 8)}},
		{Name: "ROM_256X16", Type: chip.ROM256x16,
			Inputs:  []chip.PinDescription{pin("addr", 8)},
			Outputs: []chip.PinDescription{pin("hi8", 8), pin("lo8", 8)}},
		{Name: "DEV_RAM_8", Type: chip.DevRAM8,
			Inputs: []chip.PinDescription{
				pin("addr", 8), pin("data", 8), pin("we", 1), pin("reset", 1), pin("clock", 1)},
			Outputs: []chip.PinDescription{pin("out", 8)}},
		{Name: "DISPLAY_RGB", Type: chip.DisplayRGB,
			Inputs: []chip.PinDescription{
				pin("addr", 8), pin("r", 4), pin("g", 4), pin("b", 4),
				pin("reset", 1), pin("write", 1), pin("refresh", 1), pin("clock", 1)},
			Outputs: []chip.PinDescription{pin("r_out", 4), pin("g_out", 4), pin("b_out", 4)}},
		{Name: "DISPLAY_DOT", Type: chip.DisplayDot,
			Inputs: []chip.PinDescription{
				pin("addr", 8), pin("pixel", 8),
				pin("reset", 1), pin("write", 1), pin("refresh", 1), pin("clock", 1)},
			Outputs: []chip.PinDescription{pin("pixel_out", 8)}},
		{Name: "DISPLAY_7SEG", Type: chip.Display7Segment,
			Inputs: []chip.PinDescription{pin("value", 8)}},
		{Name: "LED", Type: chip.LED,
			Inputs: []chip.PinDescription{pin("in", 1)}},
		{Name: "BUZZER", Type: chip.Buzzer,
			Inputs: []chip.PinDescription{pin("freq", 8), pin("volume", 8)}},
	}
}
