package factory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/tss-calculator/go-lib/pkg/infrastructure/logger"
)

const factorySource = `#!/usr/bin/env python3
def list_megalinter_flavors():
    flavors = {
        "all": {"label": "MegaLinter for any type of project"},
        "ci_light": {"strict": True, "label": "Optimized for CI items"},
        "cupcake": {"label": "MegaLinter for the most commonly used linters"},
    }
    return flavors
`

func writeFactory(c *qt.C, content string) string {
	path := filepath.Join(c.TempDir(), "flavor_factory.py")
	err := os.WriteFile(path, []byte(content), 0o644)
	c.Assert(err, qt.IsNil)
	return path
}

func TestAddFlavorInsertsEntry(t *testing.T) {
	c := qt.New(t)
	path := writeFactory(c, factorySource)
	updater := NewUpdater(path, logger.NewTextLogger())

	err := updater.AddFlavor("bioinformatics", "Optimized for bioinformatics pipelines workflows")
	c.Assert(err, qt.IsNil)

	data, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	content := string(data)
	entry := `        "bioinformatics": {"strict": True, "label": "Optimized for bioinformatics pipelines workflows"},`
	c.Assert(strings.Contains(content, entry), qt.IsTrue)
	c.Assert(strings.Index(content, `"cupcake"`) < strings.Index(content, `"bioinformatics"`), qt.IsTrue)
	c.Assert(strings.Index(content, `"bioinformatics"`) < strings.Index(content, "return flavors"), qt.IsTrue)
}

func TestAddFlavorIdempotent(t *testing.T) {
	c := qt.New(t)
	path := writeFactory(c, factorySource)
	updater := NewUpdater(path, logger.NewTextLogger())

	err := updater.AddFlavor("bioinformatics", "Optimized for bioinformatics pipelines workflows")
	c.Assert(err, qt.IsNil)
	first, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)

	err = updater.AddFlavor("bioinformatics", "Optimized for bioinformatics pipelines workflows")
	c.Assert(err, qt.IsNil)
	second, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)

	c.Assert(string(second), qt.Equals, string(first))
}

func TestAddFlavorFailsWithoutFactoryFunction(t *testing.T) {
	c := qt.New(t)
	path := writeFactory(c, "print('no flavors here')\n")
	updater := NewUpdater(path, logger.NewTextLogger())

	err := updater.AddFlavor("bioinformatics", "description")
	c.Assert(err, qt.ErrorMatches, `list_megalinter_flavors not found in .*`)
}
