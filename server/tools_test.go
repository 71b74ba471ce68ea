package cyclorama

import (
	"testing"
)

func TestFillEnvVar(t *testing.T) {

	t.Run("returns a default value", func(t *testing.T) {
		ev := "CYCLORAMA_ANYTHING"
		want := "ENOENT"
		got := FillEnvVar(ev)

		assertEnvString(t, got, want)
	})

	t.Run("returns a set value", func(t *testing.T) {
		ev := "CYCLORAMA_PERIODS"
		want := "https://example.com/periods.json"
		t.Setenv(ev, want)

		got := FillEnvVar(ev)
		assertEnvString(t, got, want)
	})
}

func TestFillEnvVarInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		def   int
		want  int
	}{
		{name: "unset uses default", value: "", def: 60, want: 60},
		{name: "parses a number", value: "30", def: 60, want: 30},
		{name: "garbage uses default", value: "fast", def: 60, want: 60},
		{name: "negative is passed through", value: "-1", def: 60, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CYCLORAMA_FPS", tt.value)
			got := FillEnvVarInt("CYCLORAMA_FPS", tt.def)
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func assertEnvString(t *testing.T, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
