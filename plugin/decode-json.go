package plugin

/*
	JSON / JSONKey

	JSON decodes a document that is the period array itself.

	JSONKey finds the period array somewhere inside a larger
	document, addressed with a dotted key path ("data.timelines").
	Numeric path segments index into arrays ("pages.0.timelines").
*/

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	Ct "github.com/maroda/cyclorama/types"
)

type JSONPlugin struct{}

func (jp *JSONPlugin) Decode(body []byte) ([]Ct.Period, error) {
	var periods []Ct.Period
	if err := json.Unmarshal(body, &periods); err != nil {
		slog.Error("Error unmarshalling periods", slog.Any("error", err))
		return nil, fmt.Errorf("error unmarshalling periods: %w", err)
	}
	return periods, nil
}

func (jp *JSONPlugin) Type() string { return "json" }

type JSONKeyPlugin struct {
	Key string
}

// NewJSONKeyDecoder returns a decoder that looks under key
func NewJSONKeyDecoder(key string) *JSONKeyPlugin {
	return &JSONKeyPlugin{Key: key}
}

// Decode walks to Key and decodes the period array found there
func (jk *JSONKeyPlugin) Decode(body []byte) ([]Ct.Period, error) {
	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		slog.Error("Error unmarshalling json",
			slog.String("search", jk.Key),
			slog.Any("error", err))
		return nil, fmt.Errorf("error unmarshalling json: %w", err)
	}

	node, err := ExtractNode(data, jk.Key)
	if err != nil {
		return nil, fmt.Errorf("error extracting periods: %w", err)
	}

	// Round trip the subtree so the struct tags do the work
	raw, err := json.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("error re-encoding periods: %w", err)
	}
	var periods []Ct.Period
	if err := json.Unmarshal(raw, &periods); err != nil {
		return nil, fmt.Errorf("value at %q is not a period list: %w", jk.Key, err)
	}
	return periods, nil
}

// ExtractNode follows a dotted key path through decoded JSON
func ExtractNode(data interface{}, path string) (interface{}, error) {
	if path == "" {
		return data, nil
	}

	current := data
	for _, key := range strings.Split(path, ".") {
		switch v := current.(type) {
		case map[string]interface{}:
			next, ok := v[key]
			if !ok {
				return nil, fmt.Errorf("key %s not found", key)
			}
			current = next
		case []interface{}:
			i, err := strconv.Atoi(key)
			if err != nil {
				return nil, fmt.Errorf("key %s is not an array index", key)
			}
			if i < 0 || i >= len(v) {
				return nil, fmt.Errorf("index %d out of range (%d)", i, len(v))
			}
			current = v[i]
		default:
			return nil, fmt.Errorf("cannot traverse into type %T at key %s", v, key)
		}
	}
	return current, nil
}

func (jk *JSONKeyPlugin) Type() string { return "json_key" }
