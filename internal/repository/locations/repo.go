// Package locations loads the static office dataset used by the locator and
// the location search adapter.
package locations

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gentledental/siteapi/internal/domain/location"
)

// Repo holds the office records. The list is loaded once and read-only
// afterwards; callers must not mutate the returned slice.
type Repo struct {
	offices []location.Office
}

type dataset struct {
	Offices []location.Office `yaml:"offices"`
}

// Load reads the office dataset from a YAML file.
func Load(path string) (*Repo, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read locations dataset %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes an office dataset from YAML bytes.
func Parse(data []byte) (*Repo, error) {
	var ds dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse locations dataset: %w", err)
	}
	if len(ds.Offices) == 0 {
		return nil, fmt.Errorf("locations dataset contains no offices")
	}

	seen := make(map[string]struct{}, len(ds.Offices))
	for _, o := range ds.Offices {
		if o.ID == "" || o.Name == "" || o.Address == "" {
			return nil, fmt.Errorf("office %q: id, name and address are required", o.ID)
		}
		if _, dup := seen[o.ID]; dup {
			return nil, fmt.Errorf("duplicate office id %q", o.ID)
		}
		seen[o.ID] = struct{}{}
		if !o.Coordinates.Valid() {
			return nil, fmt.Errorf("office %q: invalid coordinates %v", o.ID, o.Coordinates)
		}
	}

	return &Repo{offices: ds.Offices}, nil
}

// All returns every office in dataset order.
func (r *Repo) All() []location.Office {
	return r.offices
}

// Count returns the number of offices.
func (r *Repo) Count() int {
	return len(r.offices)
}
