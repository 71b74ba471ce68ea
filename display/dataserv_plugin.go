//go:build !nomidi

package cyclorama

import (
	Cp "github.com/maroda/cyclorama/plugin"
)

func (v *View) getMIDISystemInfo(systemInfo *SystemInfo) {
	// If the output type is MIDI, fill in the details
	if midiOut, ok := v.Output.(*Cp.MIDIOutput); ok {
		systemInfo.MIDIPort = midiOut.Port.String()
		systemInfo.MIDIRoot = int(midiOut.Root)
	}
}
