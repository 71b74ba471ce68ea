package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	Cd "github.com/maroda/cyclorama/display"
	Co "github.com/maroda/cyclorama/obvy"
	Cs "github.com/maroda/cyclorama/server"
)

const (
	defaultLogFile = "cyclorama.log"
	defaultPeriods = "data/periods.json"
)

// setupLogging sends slog to a file so the terminal stays clean
func setupLogging() (*os.File, error) {
	logFile := Cs.FillEnvVar("CYCLORAMA_LOG")
	if logFile == "ENOENT" {
		logFile = defaultLogFile
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(Cs.FillEnvVar("CYCLORAMA_LOG_LEVEL"))); err != nil {
		level = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return f, nil
}

// setupTracing picks Honeycomb when its key is present, otherwise plain OTLP
// when an endpoint is configured, otherwise nothing
func setupTracing() func() {
	tc := Co.TraceConfig{
		Service: "cyclorama",
		Version: Cd.Version,
		Ratio:   float64(Cs.FillEnvVarInt("CYCLORAMA_TRACE_PERCENT", 100)) / 100,
	}

	if Cs.FillEnvVar("HONEYCOMB_API_KEY") != "ENOENT" {
		shutdown, err := Co.InitOTelHNY(tc)
		if err != nil {
			slog.Error("Could not start Honeycomb tracing", slog.Any("Error", err))
			return func() {}
		}
		return shutdown
	}

	if Cs.FillEnvVar("OTEL_EXPORTER_OTLP_ENDPOINT") != "ENOENT" {
		tp, err := Co.InitOTelGRF(context.Background(), tc)
		if err != nil {
			slog.Error("Could not start OTLP tracing", slog.Any("Error", err))
			return func() {}
		}
		return func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				slog.Error("Tracer shutdown failed", slog.Any("Error", err))
			}
		}
	}

	return func() {}
}

func loadConfig() (*Cs.ConfigFile, error) {
	config := Cs.DefaultConfig()
	if name := Cs.FillEnvVar("CYCLORAMA_CONFIG"); name != "ENOENT" {
		c, err := Cs.LoadConfigFileName(name)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", name, err)
		}
		config = c
	}
	config.ApplyEnv()
	if config.Periods == "" {
		config.Periods = defaultPeriods
	}
	return config, nil
}

func main() {
	logf, err := setupLogging()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cyclorama: could not open log: %v\n", err)
		os.Exit(1)
	}
	defer logf.Close()

	shutdown := setupTracing()
	defer shutdown()

	config, err := loadConfig()
	if err != nil {
		slog.Error("Could not load config", slog.Any("Error", err))
		fmt.Fprintf(os.Stderr, "cyclorama: %v\n", err)
		os.Exit(1)
	}

	periods, err := Cs.LoadPeriods(config.Periods, config.Format, config.Key)
	if err != nil {
		slog.Error("Could not load periods", slog.Any("Error", err))
		fmt.Fprintf(os.Stderr, "cyclorama: %v\n", err)
		os.Exit(1)
	}

	if notui := Cs.FillEnvVar("CYCLORAMA_NOTUI"); notui != "ENOENT" && !strings.EqualFold(notui, "false") {
		err = Cd.StartWebNoTUI(config, periods)
	} else {
		err = Cd.StartTimelineView(config, periods)
	}
	if err != nil {
		slog.Error("Cyclorama exited with error", slog.Any("Error", err))
		fmt.Fprintf(os.Stderr, "cyclorama: %v\n", err)
		os.Exit(1)
	}
}
