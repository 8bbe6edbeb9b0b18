package gamedata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
)

// decode reads name from fsys and unmarshals it into a T. Unknown fields are
// rejected so a typo in a kind table fails loudly instead of zeroing a field.
func decode[T any](fsys fs.FS, name string) (T, error) {
	var out T

	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return out, fmt.Errorf("read %s: %w", name, err)
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("parse %s: %w", name, err)
	}
	return out, nil
}

// validate checks a kind table for entries the registry cannot spawn.
func validate[T Def](name string, defs []T) error {
	seen := make(map[string]bool, len(defs))
	for i, d := range defs {
		switch {
		case d.key() == "":
			return fmt.Errorf("%s: entry %d has no id", name, i)
		case seen[d.key()]:
			return fmt.Errorf("%s: duplicate id %q", name, d.key())
		case d.weight() < 0:
			return fmt.Errorf("%s: %q has negative spawnWeight", name, d.key())
		}
		seen[d.key()] = true
	}
	return nil
}
