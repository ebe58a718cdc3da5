package archive

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML document accepted by ReadSeed.
type SeedFile struct {
	Posts []Entry `yaml:"posts"`
}

// ReadSeed decodes a seed document. Unknown keys are rejected.
func ReadSeed(r io.Reader) ([]Entry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc SeedFile
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return doc.Posts, nil
}
