package sources

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is a YAML file declaring additional user-defined sources:
//
//	sources:
//	  - name: mycorpus
//	    candidates:
//	      - dataset: someone/mycorpus
//	        config: hi
//	    outputs:
//	      - file: hi_mono.jsonl
//	        kind: monolingual
//	        lang: hi
type Manifest struct {
	Sources []Spec `yaml:"sources"`
}

// LoadManifest reads and validates a source manifest file.
func LoadManifest(path string) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if len(m.Sources) == 0 {
		return nil, fmt.Errorf("manifest %s declares no sources", path)
	}
	for _, spec := range m.Sources {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("manifest %s: %w", path, err)
		}
	}
	return m.Sources, nil
}
