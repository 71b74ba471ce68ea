package cyclorama

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	Cp "github.com/maroda/cyclorama/plugin"
	Ct "github.com/maroda/cyclorama/types"
)

const ringSlots = 6

var (
	ErrNoPeriods   = errors.New("no periods")
	ErrEmptyPeriod = errors.New("period has no events")
)

// ValidatePeriods checks the loader's output before a Timeline is built.
// Ordinals outside the ring's table are allowed, they fall back to the
// center anchor, but they are worth a warning.
func ValidatePeriods(periods []Ct.Period) error {
	if len(periods) == 0 {
		return ErrNoPeriods
	}
	for i, p := range periods {
		if len(p.Events) == 0 {
			return fmt.Errorf("%w: index %d (%q)", ErrEmptyPeriod, i, p.Title)
		}
		if p.Count < 1 || p.Count > ringSlots {
			slog.Warn("Period ordinal has no ring anchor, using center",
				slog.Int("index", i),
				slog.Int("count", p.Count))
		}
	}
	if len(periods) > ringSlots {
		slog.Warn("More periods than ring positions",
			slog.Int("periods", len(periods)),
			slog.Int("positions", ringSlots))
	}
	return nil
}

// LoadPeriods reads the period document from a URL or a file,
// decodes it with the named decoder and validates the result
func LoadPeriods(source, format, key string) ([]Ct.Period, error) {
	decoder, err := Cp.DecoderLookup(format, key)
	if err != nil {
		return nil, err
	}

	body, err := readSource(source)
	if err != nil {
		return nil, err
	}

	periods, err := decoder.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("decoding %s with %s: %w", source, decoder.Type(), err)
	}
	AssignIDs(periods)

	if err := ValidatePeriods(periods); err != nil {
		return nil, err
	}

	slog.Info("Periods loaded",
		slog.String("source", source),
		slog.String("format", decoder.Type()),
		slog.Int("periods", len(periods)))
	return periods, nil
}

func readSource(source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		code, body, err := SingleFetch(source)
		if err != nil {
			return nil, fmt.Errorf("fetching periods: %w", err)
		}
		if code != http.StatusOK {
			return nil, fmt.Errorf("fetching periods: status %d", code)
		}
		return body, nil
	}

	file, err := os.Open(source)
	if err != nil {
		slog.Error("Could not open periods file", slog.Any("Error", err))
		return nil, err
	}
	defer file.Close()

	if err := validateLoad(file); err != nil {
		return nil, err
	}
	return io.ReadAll(file)
}

// AssignIDs fills in any missing period or event IDs
func AssignIDs(periods []Ct.Period) {
	for i := range periods {
		if periods[i].ID == "" {
			periods[i].ID = uuid.NewString()
		}
		for j := range periods[i].Events {
			if periods[i].Events[j].ID == "" {
				periods[i].Events[j].ID = uuid.NewString()
			}
		}
	}
}
