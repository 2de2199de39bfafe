package carddata

import (
	"encoding/json"
	"fmt"
	"io"
)

// Load decodes one of the embedded JSON files. Unknown keys are rejected so
// a misspelled field in the card data fails loudly instead of loading empty.
func Load[T any](filename string) (T, error) {
	f, err := dataFS.Open(filename)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("open embedded file %s: %w", filename, err)
	}
	defer f.Close()
	return decode[T](f, filename)
}

func decode[T any](r io.Reader, name string) (T, error) {
	var result T
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&result); err != nil {
		return result, fmt.Errorf("parse JSON from %s: %w", name, err)
	}
	if dec.More() {
		return result, fmt.Errorf("parse JSON from %s: trailing data", name)
	}
	return result, nil
}
