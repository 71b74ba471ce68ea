package plugin

/*

	The Adapter sits aside /cyclorama/
	Contains core interfaces for Plugin

*/

import (
	"time"

	Ct "github.com/maroda/cyclorama/types"
)

// PeriodDecoder turns a fetched or read document into the Period list.
// Decoders only shape the data, validation is left to the caller.
type PeriodDecoder interface {
	Decode(body []byte) ([]Ct.Period, error)
	Type() string // Unique ID for the decoder
}

// OutputAdapter can be used to define a place for issued tween commands
// to go, command-by-command or in batches if supported by the output type.
type OutputAdapter interface {
	WriteCommand(cmd *Ct.TweenCommand) error                     // Write singleton command
	WriteBatch(cmds []*Ct.TweenCommand) error                    // Write batches of commands
	QueryRange(start, end time.Time) ([]*Ct.TweenCommand, error) // Time range query tool
	Flush() error                                                // Flush any buffered data
	Close() error                                                // Close the adapter and release resources
	Type() string                                                // ID for output
}
