package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/google/renameio/v2"
	"github.com/pkg/errors"
	"github.com/tailscale/hujson"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/bioflavor/tools/pkg/flavorgen/application/model"
	"github.com/bioflavor/tools/pkg/flavorgen/application/service"
)

// NewUpdater maintains the enum_flavors list of the megalinter descriptor
// jsonschema. The file is patched in place so everything outside the enum
// keeps its formatting.
func NewUpdater(path string, logger applogger.Logger) service.SchemaUpdater {
	return &updater{
		path:   path,
		logger: logger,
	}
}

type updater struct {
	path   string
	logger applogger.Logger
}

func (u updater) AddFlavor(flavor model.FlavorID) error {
	data, err := os.ReadFile(u.path)
	if err != nil {
		return errors.Wrapf(err, "failed to read schema file: %v", u.path)
	}
	value, err := hujson.Parse(data)
	if err != nil {
		return errors.Wrapf(err, "failed to parse schema file: %v", u.path)
	}
	enum, err := enumFlavors(data)
	if err != nil {
		return errors.Wrapf(err, "failed to read enum_flavors from %v", u.path)
	}
	for _, existing := range enum {
		if existing == flavor {
			u.logger.Debug(fmt.Sprintf("flavor %v already present in schema", flavor))
			return nil
		}
	}
	index := sort.SearchStrings(enum, flavor)
	patch := fmt.Sprintf(`[{"op": "add", "path": "/definitions/enum_flavors/enum/%d", "value": %q}]`, index, flavor)
	err = value.Patch([]byte(patch))
	if err != nil {
		return errors.Wrapf(err, "failed to patch schema enum with flavor %v", flavor)
	}
	return renameio.WriteFile(u.path, value.Pack(), 0o644)
}

func enumFlavors(data []byte) ([]string, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, err
	}
	var schema struct {
		Definitions struct {
			EnumFlavors struct {
				Enum []string `json:"enum"`
			} `json:"enum_flavors"`
		} `json:"definitions"`
	}
	err = json.Unmarshal(standardized, &schema)
	if err != nil {
		return nil, err
	}
	if len(schema.Definitions.EnumFlavors.Enum) == 0 {
		return nil, errors.New("schema has no enum_flavors definition")
	}
	return schema.Definitions.EnumFlavors.Enum, nil
}
