package registry

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/vortextricks/vortextricks/internal/messages"
)

type document struct {
	Games []GameSpec `toml:"games"`
}

// LoadFile reads and validates the game registry at path.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.RegistryMissingFileFmt, path, err)
	}
	return Load(data, path)
}

// Load parses and validates registry TOML data. data is the document
// content; source is used in error messages. Validation is total: any entry
// error rejects the whole catalog.
func Load(data []byte, source string) (*Registry, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf(messages.RegistryInvalidTOMLFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.RegistryUnrecognizedKeysFmt+" "+messages.RegistryValidationGuidance, ErrRegistryValidation, source, err)
	}
	if err := validate(doc.Games, source); err != nil {
		return nil, err
	}
	canonicalizeKeys(doc.Games)
	return newRegistry(doc.Games), nil
}

// decodeStrict re-decodes the TOML data with strict unknown-field rejection.
// This catches keys that toml.Unmarshal silently ignores, which in a game
// catalog are almost always typos of store identifier fields.
func decodeStrict(data []byte) error {
	var doc document
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&doc)
}
