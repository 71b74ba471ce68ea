package plugin_test

import (
	"errors"
	"strings"
	"testing"

	Cp "github.com/maroda/cyclorama/plugin"
)

func TestDecoderLookup(t *testing.T) {
	for _, known := range []string{"json", "json_key", "yaml"} {
		t.Run("Returns known decoder "+known, func(t *testing.T) {
			got, err := Cp.DecoderLookup(known, "data")
			assertError(t, err, nil)
			assertStringContains(t, got.Type(), known)
		})
	}

	t.Run("Passes the key to json_key", func(t *testing.T) {
		got, err := Cp.DecoderLookup("json_key", "data.timelines")
		assertError(t, err, nil)
		jk, ok := got.(*Cp.JSONKeyPlugin)
		if !ok {
			t.Fatalf("expected *JSONKeyPlugin, got %T", got)
		}
		assertStringContains(t, jk.Key, "data.timelines")
	})

	t.Run("Returns error if decoder doesn't exist", func(t *testing.T) {
		unknown := "craquemattic"
		_, err := Cp.DecoderLookup(unknown, "")
		assertGotError(t, err)
	})
}

// Helpers //

func assertError(t testing.TB, got, want error) {
	t.Helper()
	if !errors.Is(got, want) {
		t.Errorf("got error %q want %q", got, want)
	}
}

func assertGotError(t testing.TB, got error) {
	t.Helper()
	if got == nil {
		t.Errorf("Expected an error but got %q", got)
	}
}

func assertInt(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("did not get correct value, got %d, want %d", got, want)
	}
}

func assertStringContains(t *testing.T, full, want string) {
	t.Helper()
	if !strings.Contains(full, want) {
		t.Errorf("Did not find %q, expected string contains %q", want, full)
	}
}
