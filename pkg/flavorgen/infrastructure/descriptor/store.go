package descriptor

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/bioflavor/tools/pkg/flavorgen/application/model"
	"github.com/bioflavor/tools/pkg/flavorgen/application/service"
)

// NewStore edits the megalinter descriptor files in dir. Edits are
// node-level so key order and quoting of untouched entries survive, and
// every write goes through an atomic rename.
func NewStore(dir string, logger applogger.Logger) service.DescriptorStore {
	return &store{
		dir:    dir,
		logger: logger,
	}
}

type store struct {
	dir    string
	logger applogger.Logger
}

func (s store) Components() (map[model.ComponentID]struct{}, error) {
	files, err := s.descriptorFiles()
	if err != nil {
		return nil, err
	}
	components := make(map[model.ComponentID]struct{})
	for _, file := range files {
		root, err := loadDocument(file)
		if err != nil {
			return nil, err
		}
		for _, linter := range sequenceItems(mappingValue(root, "linters")) {
			name := scalarValue(mappingValue(linter, "linter_name"))
			if name != "" {
				components[name] = struct{}{}
			}
		}
	}
	return components, nil
}

func (s store) ApplyFlavor(flavor model.Flavor) error {
	files, err := s.descriptorFiles()
	if err != nil {
		return err
	}
	components := make(map[model.ComponentID]struct{}, len(flavor.Components))
	for _, component := range flavor.Components {
		components[component] = struct{}{}
	}
	for _, file := range files {
		modified, err := s.applyToFile(file, components, flavor.ID)
		if err != nil {
			return errors.Wrapf(err, "failed to update descriptor %v", file)
		}
		if modified {
			s.logger.Info(fmt.Sprintf("updated descriptor %v", filepath.Base(file)))
		}
	}
	return nil
}

func (s store) descriptorFiles() ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.yml", "*.yaml"} {
		matches, err := filepath.Glob(filepath.Join(s.dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no descriptor files found in %v", s.dir)
	}
	sort.Strings(files)
	return files, nil
}

func (s store) applyToFile(file string, components map[model.ComponentID]struct{}, flavor model.FlavorID) (bool, error) {
	root, err := loadDocument(file)
	if err != nil {
		return false, err
	}
	linters := mappingValue(root, "linters")
	if linters == nil {
		return false, nil
	}
	modified := false
	flavorAdded := false
	for _, linter := range sequenceItems(linters) {
		name := scalarValue(mappingValue(linter, "linter_name"))
		if name == "" {
			continue
		}
		flavors := mappingValue(linter, "descriptor_flavors")
		if _, wanted := components[name]; wanted {
			if flavors == nil {
				flavors = appendMappingKey(linter, "descriptor_flavors", newSequence())
			}
			if appendScalar(flavors, flavor) {
				modified = true
				flavorAdded = true
			}
		} else if flavors != nil && removeScalar(flavors, flavor) {
			modified = true
		}
	}
	// Descriptors that carry an install section list their flavors at the
	// root as well, so the upstream build keeps the install steps.
	if flavorAdded && mappingValue(root, "install") != nil {
		rootFlavors := mappingValue(root, "descriptor_flavors")
		if rootFlavors == nil {
			rootFlavors = appendMappingKey(root, "descriptor_flavors", newSequence())
		}
		appendScalar(rootFlavors, flavor)
	}
	if !modified {
		return false, nil
	}
	return true, writeDocument(file, root)
}
