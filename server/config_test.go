package cyclorama_test

import (
	"os"
	"strings"
	"testing"
	"time"

	Cs "github.com/maroda/cyclorama/server"
)

func createTempFile(t testing.TB, data string) (*os.File, func()) {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "cyclorama")
	if err != nil {
		t.Fatalf("could not create temp file %v", err)
	}

	tmpfile.Write([]byte(data))
	removeFile := func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name())
	}
	return tmpfile, removeFile
}

func TestLoadConfigFileName(t *testing.T) {
	configFile, delConfig := createTempFile(t, `{
		"periods": "https://example.com/periods.json",
		"format": "json_key",
		"key": "data.timelines",
		"addr": ":9090",
		"theme": {
			"duration": 0.4,
			"colors": {"blue": "#0000ff"}
		}
	}`)
	defer delConfig()

	t.Run("Loads a config file", func(t *testing.T) {
		c, err := Cs.LoadConfigFileName(configFile.Name())
		assertError(t, err, nil)
		assertString(t, c.Periods, "https://example.com/periods.json")
		assertString(t, c.Format, "json_key")
		assertString(t, c.Key, "data.timelines")
		assertString(t, c.Addr, ":9090")
		assertInt(t, c.FPS, 60)
	})

	t.Run("Missing file is an error", func(t *testing.T) {
		_, err := Cs.LoadConfigFileName("/no/such/cyclorama.json")
		assertGotError(t, err)
	})

	t.Run("Empty file is an error", func(t *testing.T) {
		emptyFile, delEmpty := createTempFile(t, "")
		defer delEmpty()

		_, err := Cs.LoadConfigFileName(emptyFile.Name())
		assertGotError(t, err)
		assertStringContains(t, err.Error(), "empty")
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("Unknown fields are refused", func(t *testing.T) {
		_, err := Cs.LoadConfig(strings.NewReader(`{"periodz": "x"}`))
		assertGotError(t, err)
	})

	t.Run("Defaults fill the gaps", func(t *testing.T) {
		c, err := Cs.LoadConfig(strings.NewReader(`{}`))
		assertError(t, err, nil)
		assertString(t, c.Addr, ":8090")
		assertString(t, c.Format, "json")
		assertInt(t, c.FPS, 60)

		d := Cs.DefaultConfig()
		assertString(t, d.Addr, c.Addr)
	})
}

func TestConfigFile_ApplyEnv(t *testing.T) {
	t.Setenv("CYCLORAMA_PERIODS", "/tmp/periods.yaml")
	t.Setenv("CYCLORAMA_FORMAT", "yaml")
	t.Setenv("CYCLORAMA_ADDR", ":7000")
	t.Setenv("CYCLORAMA_OUTPUT", "badger:/tmp/journal")
	t.Setenv("CYCLORAMA_FPS", "24")

	c := Cs.DefaultConfig()
	c.ApplyEnv()
	assertString(t, c.Periods, "/tmp/periods.yaml")
	assertString(t, c.Format, "yaml")
	assertString(t, c.Addr, ":7000")
	assertString(t, c.Output, "badger:/tmp/journal")
	assertInt(t, c.FPS, 24)
}

func TestConfigFile_BuildTheme(t *testing.T) {
	t.Run("No theme is the default", func(t *testing.T) {
		th, err := Cs.DefaultConfig().BuildTheme()
		assertError(t, err, nil)
		assertString(t, th.Colors.Primary, Cs.DefaultTheme().Colors.Primary)
		if th.Duration != 800*time.Millisecond {
			t.Errorf("got duration %s, want 800ms", th.Duration)
		}
	})

	t.Run("Overlay replaces only what is set", func(t *testing.T) {
		c := Cs.DefaultConfig()
		c.Theme = &Cs.ThemeConfig{
			Duration:  0.4,
			Colors:    Cs.Colors{Blue: "#0000ff"},
			PointEase: "sine.out",
		}
		th, err := c.BuildTheme()
		assertError(t, err, nil)
		assertString(t, th.Colors.Blue, "#0000ff")
		assertString(t, th.Colors.Iris100, "#5d5fef")
		assertString(t, th.PointEase, "sine.out")
		assertString(t, th.RotationEase, "power1.inOut")
		if th.Duration != 400*time.Millisecond {
			t.Errorf("got duration %s, want 400ms", th.Duration)
		}
	})

	t.Run("Bad color is refused", func(t *testing.T) {
		c := Cs.DefaultConfig()
		c.Theme = &Cs.ThemeConfig{Colors: Cs.Colors{Line: "#zzzzzz"}}
		_, err := c.BuildTheme()
		assertError(t, err, Cs.ErrBadColor)
	})

	t.Run("Bad ease is refused", func(t *testing.T) {
		c := Cs.DefaultConfig()
		c.Theme = &Cs.ThemeConfig{CounterEase: "elastic"}
		_, err := c.BuildTheme()
		assertError(t, err, Cs.ErrUnknownEase)
	})
}
