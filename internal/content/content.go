// Package content loads the editable text of the site from YAML.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/turmadocricas/cricas/internal/model"
)

//go:embed default.yaml
var defaultYAML []byte

// Default returns the built-in content.
func Default() (model.Content, error) {
	return Parse(defaultYAML)
}

// Load reads content from path. An empty path means the built-in content.
func Load(path string) (model.Content, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Content{}, fmt.Errorf("read content %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return model.Content{}, fmt.Errorf("content %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML content. Unknown keys are rejected so that typos in a
// content file surface at startup.
func Parse(data []byte) (model.Content, error) {
	var c model.Content
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return model.Content{}, fmt.Errorf("parse content: %w", err)
	}
	if c.Logo == "" {
		c.Logo = c.Title
	}
	if c.LogoCompact == "" {
		c.LogoCompact = c.Logo
	}
	return c, nil
}
