package campus

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlCampusFile is the top-level YAML structure of the campus file.
type yamlCampusFile struct {
	Campus yamlCampus `yaml:"campus"`
}

type yamlCampus struct {
	Start     string         `yaml:"start"`
	Locations []yamlLocation `yaml:"locations"`
}

type yamlLocation struct {
	ID          string            `yaml:"id"`
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Paths       []yamlPath        `yaml:"paths"`
	Properties  map[string]string `yaml:"properties"`
}

type yamlPath struct {
	To      string `yaml:"to"`
	Minutes int    `yaml:"minutes"`
}

// Load reads and validates the campus file at path.
//
// Postcondition: Returns a validated Campus or a non-nil error.
func Load(path string) (*Campus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading campus file %s: %w", path, err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses and validates a campus from YAML bytes.
func LoadFromBytes(data []byte) (*Campus, error) {
	var file yamlCampusFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing campus YAML: %w", err)
	}
	locs := make([]Location, 0, len(file.Campus.Locations))
	for _, yl := range file.Campus.Locations {
		l := Location{
			ID:          yl.ID,
			Title:       yl.Title,
			Description: strings.TrimSpace(yl.Description),
			Properties:  yl.Properties,
		}
		for _, yp := range yl.Paths {
			l.Paths = append(l.Paths, Path{To: yp.To, Minutes: yp.Minutes})
		}
		locs = append(locs, l)
	}
	c, err := New(file.Campus.Start, locs)
	if err != nil {
		return nil, fmt.Errorf("validating campus: %w", err)
	}
	return c, nil
}
