//go:build !nomidi

package plugin

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	Ct "github.com/maroda/cyclorama/types"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

const (
	ringHandle   = "ring"
	ringStepDeg  = 60
	noteVelocity = 100
)

// MIDIOutput plays one note for every ring rotation,
// pitched by the period the ring is turning towards
type MIDIOutput struct {
	Port drivers.Out
	Send func(msg midi.Message) error
	Root uint8
	WG   sync.WaitGroup
}

func NewMIDIOutput(port int, root uint8) (*MIDIOutput, error) {
	out, err := midi.OutPort(port)
	if err != nil {
		slog.Error("Error opening MIDI port", slog.Int("port", port))
		return nil, fmt.Errorf("error opening MIDI port: %q", err)
	}

	send, err := midi.SendTo(out)
	if err != nil {
		slog.Error("Error sending to MIDI port", slog.Int("port", port))
		return nil, fmt.Errorf("error sending to MIDI port: %q", err)
	}

	return &MIDIOutput{
		Port: out,
		Send: send,
		Root: root,
	}, nil
}

func (mo *MIDIOutput) SendNoteOnMIDI(midic, midin, midiv uint8) error {
	return mo.Send(midi.NoteOn(midic, midin, midiv))
}

func (mo *MIDIOutput) SendNoteOffMIDI(midic, midin uint8) error {
	return mo.Send(midi.NoteOff(midic, midin))
}

// RotationNote maps a ring rotation command to a note,
// ok is false for any other command
func RotationNote(cmd *Ct.TweenCommand, root uint8) (uint8, bool) {
	if cmd.Handle != ringHandle || cmd.Property != Ct.PropRotation {
		return 0, false
	}
	index := int(math.Round(-cmd.To / ringStepDeg))
	if index < 0 || int(root)+index > 127 {
		return 0, false
	}
	return root + uint8(index), true
}

func (mo *MIDIOutput) WriteCommand(cmd *Ct.TweenCommand) error {
	note, ok := RotationNote(cmd, mo.Root)
	if !ok {
		return nil
	}

	var channel uint8
	mo.WG.Add(1)
	go func() {
		defer mo.WG.Done()
		if err := mo.SendNoteOnMIDI(channel, note, noteVelocity); err != nil {
			slog.Error("NoteOn event failed")
		}
		time.Sleep(cmd.Duration)
		if err := mo.SendNoteOffMIDI(channel, note); err != nil {
			slog.Error("NoteOff event failed, attempting Flush")
			mo.Flush()
		}
	}()

	return nil
}

func (mo *MIDIOutput) WriteBatch(cmds []*Ct.TweenCommand) error {
	for _, c := range cmds {
		if err := mo.WriteCommand(c); err != nil {
			return err
		}
	}
	return nil
}

// QueryRange is not supported, MIDI is a live output
func (mo *MIDIOutput) QueryRange(start, end time.Time) ([]*Ct.TweenCommand, error) {
	return nil, fmt.Errorf("MIDI output cannot be queried")
}

func (mo *MIDIOutput) Flush() error {
	return mo.Send(midi.ControlChange(0, midi.AllNotesOff, midi.Off))
}

func (mo *MIDIOutput) Close() error {
	mo.WG.Wait()

	if mo.Port != nil {
		mo.Port.Close()
		midi.CloseDriver()
	}
	return nil
}

func (mo *MIDIOutput) Type() string { return "MIDI" }
