package manifest

import "github.com/agentx-labs/addonctl/internal/addon"

// FileName is the manifest file every catalog add-on directory carries.
const FileName = "addon.yaml"

// Manifest describes one add-on.
type Manifest struct {
	Name        string         `yaml:"name" json:"name"`
	Type        addon.Category `yaml:"type" json:"type"`
	Version     string         `yaml:"version" json:"version"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Tags        []string       `yaml:"tags,omitempty" json:"tags,omitempty"`
	Author      string         `yaml:"author,omitempty" json:"author,omitempty"`
	Homepage    string         `yaml:"homepage,omitempty" json:"homepage,omitempty"`
}
