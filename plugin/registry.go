package plugin

import "fmt"

// Decoders is a global map of PeriodDecoder plugins.
// The key argument is only read by decoders that search inside the document.
var Decoders = map[string]func(key string) PeriodDecoder{
	"json": func(string) PeriodDecoder {
		return &JSONPlugin{}
	},
	"json_key": func(key string) PeriodDecoder {
		return NewJSONKeyDecoder(key)
	},
	"yaml": func(string) PeriodDecoder {
		return &YAMLPlugin{}
	},
}

func DecoderLookup(name, key string) (PeriodDecoder, error) {
	factory, ok := Decoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown decoder: %s", name)
	}
	return factory(key), nil
}
