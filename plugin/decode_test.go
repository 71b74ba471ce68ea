package plugin_test

import (
	"testing"

	Cp "github.com/maroda/cyclorama/plugin"
)

const periodsJSON = `[
  {"id":"p1","count":1,"title":"Science","events":[{"year":1900,"text":"Planck"},{"year":1920,"text":"Bohr"}]},
  {"id":"p2","count":2,"title":"Cinema","events":[{"year":1920,"text":"Nosferatu"},{"year":1945,"text":"Rome"}]}
]`

func TestJSONPlugin(t *testing.T) {
	t.Run("Type returns the correct value", func(t *testing.T) {
		plugin := Cp.JSONPlugin{}
		assertStringContains(t, plugin.Type(), "json")
	})

	t.Run("Decodes a period array", func(t *testing.T) {
		plugin := Cp.JSONPlugin{}
		got, err := plugin.Decode([]byte(periodsJSON))
		assertError(t, err, nil)
		assertInt(t, len(got), 2)
		assertStringContains(t, got[1].Title, "Cinema")
		assertInt(t, got[1].Events[1].Year, 1945)
	})

	t.Run("Rejects a document that is not an array", func(t *testing.T) {
		plugin := Cp.JSONPlugin{}
		_, err := plugin.Decode([]byte(`{"id":"p1"}`))
		assertGotError(t, err)
	})
}

func TestJSONKeyPlugin(t *testing.T) {
	t.Run("Type returns the correct value", func(t *testing.T) {
		plugin := Cp.JSONKeyPlugin{}
		assertStringContains(t, plugin.Type(), "json_key")
	})

	t.Run("Finds the periods under a dotted key", func(t *testing.T) {
		doc := `{"data":{"timelines":` + periodsJSON + `}}`
		plugin := Cp.NewJSONKeyDecoder("data.timelines")
		got, err := plugin.Decode([]byte(doc))
		assertError(t, err, nil)
		assertInt(t, len(got), 2)
		assertInt(t, got[0].Events[0].Year, 1900)
	})

	t.Run("Indexes into arrays", func(t *testing.T) {
		doc := `{"pages":[{"timelines":` + periodsJSON + `}]}`
		plugin := Cp.NewJSONKeyDecoder("pages.0.timelines")
		got, err := plugin.Decode([]byte(doc))
		assertError(t, err, nil)
		assertInt(t, len(got), 2)
	})

	t.Run("Errors on missing key", func(t *testing.T) {
		plugin := Cp.NewJSONKeyDecoder("data.missing")
		_, err := plugin.Decode([]byte(`{"data":{}}`))
		assertGotError(t, err)
	})

	t.Run("Errors on index out of range", func(t *testing.T) {
		plugin := Cp.NewJSONKeyDecoder("pages.3")
		_, err := plugin.Decode([]byte(`{"pages":[]}`))
		assertGotError(t, err)
	})

	t.Run("Errors when the value is not a period list", func(t *testing.T) {
		plugin := Cp.NewJSONKeyDecoder("data")
		_, err := plugin.Decode([]byte(`{"data":"nope"}`))
		assertGotError(t, err)
	})
}

func TestYAMLPlugin(t *testing.T) {
	t.Run("Decodes a period list", func(t *testing.T) {
		doc := `
- id: p1
  count: 1
  title: Science
  events:
    - year: 1900
      text: Planck
    - year: 1920
      text: Bohr
`
		plugin := Cp.YAMLPlugin{}
		got, err := plugin.Decode([]byte(doc))
		assertError(t, err, nil)
		assertInt(t, len(got), 1)
		assertInt(t, got[0].Count, 1)
		assertInt(t, got[0].Events[1].Year, 1920)
		assertStringContains(t, plugin.Type(), "yaml")
	})

	t.Run("Rejects malformed yaml", func(t *testing.T) {
		plugin := Cp.YAMLPlugin{}
		_, err := plugin.Decode([]byte("- id: [unterminated"))
		assertGotError(t, err)
	})
}
