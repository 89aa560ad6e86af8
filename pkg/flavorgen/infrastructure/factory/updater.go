package factory

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/pkg/errors"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/bioflavor/tools/pkg/flavorgen/application/model"
	"github.com/bioflavor/tools/pkg/flavorgen/application/service"
)

var (
	entryPattern  = regexp.MustCompile(`(?m)^[ \t]+"[^"]+": \{[^\n]*\},?$`)
	indentPattern = regexp.MustCompile(`^[ \t]+`)
)

// NewUpdater inserts the flavor into the flavors dict of the upstream
// flavor_factory source. The target is a Python file, so the edit is a
// line-level insertion next to the last existing entry.
func NewUpdater(path string, logger applogger.Logger) service.FactoryUpdater {
	return &updater{
		path:   path,
		logger: logger,
	}
}

type updater struct {
	path   string
	logger applogger.Logger
}

func (u updater) AddFlavor(flavor model.FlavorID, description string) error {
	data, err := os.ReadFile(u.path)
	if err != nil {
		return errors.Wrapf(err, "failed to read flavor factory: %v", u.path)
	}
	content := string(data)
	start := strings.Index(content, "def list_megalinter_flavors():")
	if start < 0 {
		return fmt.Errorf("list_megalinter_flavors not found in %v", u.path)
	}
	end := strings.Index(content[start:], "return flavors")
	if end < 0 {
		return fmt.Errorf("flavors dict is not terminated in %v", u.path)
	}
	window := content[start : start+end]
	if strings.Contains(window, fmt.Sprintf("%q:", flavor)) {
		u.logger.Debug(fmt.Sprintf("flavor %v already present in flavor factory", flavor))
		return nil
	}
	matches := entryPattern.FindAllStringIndex(window, -1)
	if len(matches) == 0 {
		return fmt.Errorf("no flavor entries found in %v", u.path)
	}
	last := matches[len(matches)-1]
	lastEntry := window[last[0]:last[1]]
	indent := indentPattern.FindString(lastEntry)
	entry := fmt.Sprintf(`%s%q: {"strict": True, "label": %q},`, indent, flavor, description)
	updatedEntry := strings.TrimRight(lastEntry, ",") + ",\n" + entry
	updated := content[:start+last[0]] + updatedEntry + content[start+last[1]:]
	return renameio.WriteFile(u.path, []byte(updated), 0o644)
}
