//go:build nomidi

package plugin

import (
	"fmt"
	"time"

	Ct "github.com/maroda/cyclorama/types"
)

type MIDIOutput struct{}

func NewMIDIOutput(port int, root uint8) (*MIDIOutput, error) {
	return nil, fmt.Errorf("MIDI support not compiled in this build")
}

func (m *MIDIOutput) WriteCommand(cmd *Ct.TweenCommand) error {
	return fmt.Errorf("MIDI support not compiled in this build")
}

func (m *MIDIOutput) WriteBatch(cmds []*Ct.TweenCommand) error {
	return fmt.Errorf("MIDI support not compiled in this build")
}

func (m *MIDIOutput) QueryRange(start, end time.Time) ([]*Ct.TweenCommand, error) {
	return nil, fmt.Errorf("MIDI support not compiled in this build")
}

func (m *MIDIOutput) Flush() error { return nil }
func (m *MIDIOutput) Close() error { return nil }
func (m *MIDIOutput) Type() string { return "midi-disabled" }
