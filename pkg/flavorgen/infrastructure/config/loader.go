package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/bioflavor/tools/pkg/flavorgen/application/model"
)

type Flavor struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Components  []string `json:"components"`
}

type Upstream struct {
	Path           string `json:"path"`
	DescriptorsDir string `json:"descriptorsDir,omitempty"`
	SchemaFile     string `json:"schemaFile,omitempty"`
	FactoryFile    string `json:"factoryFile,omitempty"`
}

type Image struct {
	Registry      string `json:"registry"`
	Owner         string `json:"owner"`
	Name          string `json:"name"`
	Version       string `json:"version,omitempty"`
	DefaultBranch string `json:"defaultBranch,omitempty"`
}

type Config struct {
	Flavor   Flavor   `json:"flavor"`
	Upstream Upstream `json:"upstream"`
	Image    Image    `json:"image"`
}

func Load(filePath string) (model.Config, error) {
	configBody, err := os.ReadFile(filePath)
	if err != nil {
		return model.Config{}, errors.Wrapf(err, "failed to read config file: %v", filePath)
	}
	var config Config
	err = json.Unmarshal(configBody, &config)
	if err != nil {
		return model.Config{}, errors.Wrap(err, "failed to unmarshal config")
	}
	err = assertConfig(config)
	if err != nil {
		return model.Config{}, err
	}
	return mapToAppConfig(config), nil
}

func assertConfig(config Config) error {
	if config.Flavor.Name == "" {
		return errors.New("flavor name can not be empty")
	}
	if len(config.Flavor.Components) == 0 {
		return fmt.Errorf("flavor %v has no components", config.Flavor.Name)
	}
	seen := make(map[string]struct{}, len(config.Flavor.Components))
	for _, component := range config.Flavor.Components {
		if _, ok := seen[component]; ok {
			return fmt.Errorf("duplicate component %v", component)
		}
		seen[component] = struct{}{}
	}
	if config.Upstream.Path == "" {
		return errors.New("upstream path can not be empty")
	}
	if config.Image.Registry == "" || config.Image.Owner == "" || config.Image.Name == "" {
		return errors.New("image registry, owner and name can not be empty")
	}
	return nil
}

func mapToAppConfig(config Config) model.Config {
	// Defaults mirror the upstream megalinter repository layout.
	upstream := model.Upstream{
		Path:           config.Upstream.Path,
		DescriptorsDir: orDefault(config.Upstream.DescriptorsDir, "megalinter/descriptors"),
		SchemaFile:     orDefault(config.Upstream.SchemaFile, "megalinter/descriptors/schemas/megalinter-descriptor.jsonschema.json"),
		FactoryFile:    orDefault(config.Upstream.FactoryFile, "megalinter/flavor_factory.py"),
	}
	upstream.DescriptorsDir = filepath.Join(upstream.Path, upstream.DescriptorsDir)
	upstream.SchemaFile = filepath.Join(upstream.Path, upstream.SchemaFile)
	upstream.FactoryFile = filepath.Join(upstream.Path, upstream.FactoryFile)

	return model.Config{
		Flavor: model.Flavor{
			ID:          config.Flavor.Name,
			Description: config.Flavor.Description,
			Components:  config.Flavor.Components,
		},
		Upstream: upstream,
		Image: model.Image{
			Registry:      config.Image.Registry,
			Owner:         config.Image.Owner,
			Name:          config.Image.Name,
			Version:       orDefault(config.Image.Version, "latest"),
			DefaultBranch: orDefault(config.Image.DefaultBranch, "main"),
		},
	}
}

func orDefault(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
