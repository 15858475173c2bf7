package navigation

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed navigation.yaml
var document []byte

// Navigation is the link set and the alerts shown in the navigation bar
// swagger:model
type Navigation struct {
	Links  []Link   `yaml:"links" json:"links"`
	Alerts []string `yaml:"alerts" json:"alerts"`
}

type Link struct {
	Name string `yaml:"name" json:"name"`
	Path string `yaml:"path" json:"path"`
	Icon string `yaml:"icon" json:"icon"`
}

// Load parses the embedded navigation document.
func Load() (Navigation, error) {
	return parse(document)
}

func parse(data []byte) (Navigation, error) {
	var navigation Navigation
	if err := yaml.Unmarshal(data, &navigation); err != nil {
		return Navigation{}, fmt.Errorf("failed to parse navigation: %v", err)
	}

	if len(navigation.Links) == 0 {
		return Navigation{}, errors.New("navigation has no links")
	}
	for i, link := range navigation.Links {
		if link.Name == "" || link.Path == "" {
			return Navigation{}, fmt.Errorf("link %d of navigation needs a name and a path", i)
		}
	}
	return navigation, nil
}
