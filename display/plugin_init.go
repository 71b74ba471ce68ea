//go:build !nomidi

package cyclorama

import (
	"log/slog"

	Cp "github.com/maroda/cyclorama/plugin"
	Cs "github.com/maroda/cyclorama/server"
)

func InitMIDIOutput(view *View, outputLocation string) error {
	midiPort := Cs.FillEnvVarInt("CYCLORAMA_PLUGIN_MIDI_PORT", 0)
	midiRoot := uint8(Cs.FillEnvVarInt("CYCLORAMA_PLUGIN_MIDI_ROOT", 60))

	slog.Info("Configuration found:",
		slog.Int("Port", midiPort),
		slog.Any("Root", midiRoot),
	)

	output, err := Cp.NewMIDIOutput(midiPort, midiRoot)
	if err != nil {
		slog.Error("Failed to create adapter",
			slog.String("output", outputLocation),
			slog.Any("error", err))
		return err
	}
	view.Output = output
	slog.Info("MIDI Adapter Enabled", slog.String("output", outputLocation))
	return nil
}
