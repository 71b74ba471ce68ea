package plugin

import (
	"fmt"
	"log/slog"

	Ct "github.com/maroda/cyclorama/types"
	"gopkg.in/yaml.v3"
)

// YAMLPlugin reads a period list written as YAML
type YAMLPlugin struct{}

func (yp *YAMLPlugin) Decode(body []byte) ([]Ct.Period, error) {
	var periods []Ct.Period
	if err := yaml.Unmarshal(body, &periods); err != nil {
		slog.Error("Error unmarshalling yaml", slog.Any("error", err))
		return nil, fmt.Errorf("error unmarshalling yaml: %w", err)
	}
	return periods, nil
}

func (yp *YAMLPlugin) Type() string { return "yaml" }
