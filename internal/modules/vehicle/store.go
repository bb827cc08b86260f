// README: Loads vehicle classes from a YAML file.
package vehicle

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type catalogFile struct {
	Classes []Class `yaml:"classes"`
}

// LoadCatalog returns the built-in catalog when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCatalog, err)
	}
	return NewCatalog(f.Classes)
}
