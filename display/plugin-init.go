package cyclorama

import (
	"fmt"
	"log/slog"
	"strings"

	Cp "github.com/maroda/cyclorama/plugin"
	Cs "github.com/maroda/cyclorama/server"
)

const badgerBatchSize = 64

// InitOutput enables the journal named by the output setting:
// "badger:<path>", "midi", or empty for none
func InitOutput(view *View, outputLocation string) error {
	var err error
	switch {
	case outputLocation == "" || outputLocation == "ENOENT":
		return nil
	case strings.HasPrefix(outputLocation, "badger:"):
		err = InitBadgerOutput(view, strings.TrimPrefix(outputLocation, "badger:"))
	case outputLocation == "midi":
		err = InitMIDIOutput(view, outputLocation)
	default:
		return fmt.Errorf("unknown output: %s", outputLocation)
	}
	if err != nil {
		return err
	}
	view.StartJournal()
	return nil
}

func InitBadgerOutput(view *View, path string) error {
	if path == "" {
		return fmt.Errorf("badger output needs a path")
	}
	batch := Cs.FillEnvVarInt("CYCLORAMA_PLUGIN_BADGER_BATCH", badgerBatchSize)
	output, err := Cp.NewBadgerOutput(path, batch)
	if err != nil {
		slog.Error("Failed to create adapter",
			slog.String("output", path),
			slog.Any("error", err))
		return err
	}
	view.Output = output
	slog.Info("BadgerDB Adapter Enabled", slog.String("output", path))
	return nil
}
