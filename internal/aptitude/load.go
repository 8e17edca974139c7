package aptitude

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// bankFile is the YAML layout of a custom question bank:
//
//	categories:
//	  - id: science
//	    title: Science Stream
//	    subjects: [Physics, Chemistry]
//	questions:
//	  - text: I enjoy experiments.
//	    category: science
type bankFile struct {
	Categories []Info     `yaml:"categories"`
	Questions  []Question `yaml:"questions"`
}

// LoadBank decodes a YAML question bank and validates it. Category order in
// the file is the canonical order used for tie-breaking.
func LoadBank(r io.Reader) (*Bank, error) {
	var f bankFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	return NewBank(f.Categories, f.Questions)
}

// LoadBankFile reads a YAML question bank from path.
func LoadBankFile(path string) (*Bank, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bank: %w", err)
	}
	defer fh.Close()

	b, err := LoadBank(fh)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return b, nil
}
