package primitive

import (
	"github.com/gatesim/core/chip"
	"github.com/gatesim/core/pinstate"
)

// evalBuzzer has no outputs: it calls the audio collaborator's
// register-note(freq-index, volume-index) with the two input pins'
// driven values, every frame.
func evalBuzzer(c *chip.Chip, collab Collaborators) {
	if collab.RegisterNote == nil {
		return
	}
	freq := int(pinstate.Value(in(c, 0), 8))
	volume := int(pinstate.Value(in(c, 1), 8))
	collab.RegisterNote(freq, volume)
}
