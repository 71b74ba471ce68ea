package cyclorama

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"
)

const (
	defaultAddr   = ":8090"
	defaultFPS    = 60
	defaultFormat = "json"
)

// ThemeConfig overlays the default theme, zero values are left alone
type ThemeConfig struct {
	Colors         Colors  `json:"colors"`
	Duration       float64 `json:"duration"` // seconds
	DefaultRadius  float64 `json:"defaultRadius"`
	ExpandedRadius float64 `json:"expandedRadius"`
	HoverRadius    float64 `json:"hoverRadius"`
	LabelFontSize  float64 `json:"labelFontSize"`
	PointEase      string  `json:"pointEase"`
	RotationEase   string  `json:"rotationEase"`
	CounterEase    string  `json:"counterEase"`
}

type ConfigFile struct {
	Theme   *ThemeConfig `json:"theme"`
	Periods string       `json:"periods"` // file path or http(s) URL
	Format  string       `json:"format"`  // decoder name, see plugin.Decoders
	Key     string       `json:"key"`     // dotted key path for json_key
	Addr    string       `json:"addr"`
	FPS     int          `json:"fps"`
	Output  string       `json:"output"` // badger:<path> | midi
}

// LoadConfigFileName pulls a given filename config off local disk
// Validation is performed on the file before opening
func LoadConfigFileName(filename string) (*ConfigFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	err = validateLoad(file)
	if err != nil {
		slog.Error("Validation failed", slog.Any("Error", err))
		return nil, err
	}

	return LoadConfig(file)
}

func validateLoad(file *os.File) error {
	info, err := file.Stat()
	if err != nil {
		slog.Error("could not stat file")
		return err
	}

	if info.Size() == 0 {
		slog.Error("file is empty")
		return errors.New("file is empty")
	}

	return nil
}

// LoadConfig decodes a config and fills in defaults
func LoadConfig(r io.Reader) (*ConfigFile, error) {
	var config ConfigFile
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		slog.Error("could not decode config", slog.Any("Error", err))
		return nil, err
	}

	config.defaults()
	return &config, nil
}

// DefaultConfig is used when no config file is named
func DefaultConfig() *ConfigFile {
	c := &ConfigFile{}
	c.defaults()
	return c
}

func (c *ConfigFile) defaults() {
	if c.Addr == "" {
		c.Addr = defaultAddr
	}
	if c.FPS <= 0 {
		c.FPS = defaultFPS
	}
	if c.Format == "" {
		c.Format = defaultFormat
	}
}

// ApplyEnv lets runtime environment override the file
func (c *ConfigFile) ApplyEnv() {
	if v := FillEnvVar("CYCLORAMA_PERIODS"); v != "ENOENT" {
		c.Periods = v
	}
	if v := FillEnvVar("CYCLORAMA_FORMAT"); v != "ENOENT" {
		c.Format = v
	}
	if v := FillEnvVar("CYCLORAMA_ADDR"); v != "ENOENT" {
		c.Addr = v
	}
	if v := FillEnvVar("CYCLORAMA_OUTPUT"); v != "ENOENT" {
		c.Output = v
	}
	c.FPS = FillEnvVarInt("CYCLORAMA_FPS", c.FPS)
}

// BuildTheme overlays the configured theme onto the default and validates it
func (c *ConfigFile) BuildTheme() (Theme, error) {
	theme := DefaultTheme()
	tc := c.Theme
	if tc == nil {
		return theme, nil
	}

	overlay := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	overlay(&theme.Colors.Background, tc.Colors.Background)
	overlay(&theme.Colors.Primary, tc.Colors.Primary)
	overlay(&theme.Colors.Secondary, tc.Colors.Secondary)
	overlay(&theme.Colors.Blue, tc.Colors.Blue)
	overlay(&theme.Colors.Fuschia100, tc.Colors.Fuschia100)
	overlay(&theme.Colors.Iris100, tc.Colors.Iris100)
	overlay(&theme.Colors.White, tc.Colors.White)
	overlay(&theme.Colors.Line, tc.Colors.Line)
	overlay(&theme.PointEase, tc.PointEase)
	overlay(&theme.RotationEase, tc.RotationEase)
	overlay(&theme.CounterEase, tc.CounterEase)

	if tc.Duration > 0 {
		theme.Duration = time.Duration(tc.Duration * float64(time.Second))
	}
	if tc.DefaultRadius > 0 {
		theme.DefaultRadius = tc.DefaultRadius
	}
	if tc.ExpandedRadius > 0 {
		theme.ExpandedRadius = tc.ExpandedRadius
	}
	if tc.HoverRadius > 0 {
		theme.HoverRadius = tc.HoverRadius
	}
	if tc.LabelFontSize > 0 {
		theme.LabelFontSize = tc.LabelFontSize
	}

	return theme, theme.Validate()
}
