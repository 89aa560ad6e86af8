package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/tss-calculator/go-lib/pkg/infrastructure/logger"
)

const schemaContent = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "MegaLinter descriptor",
  "definitions": {
    "enum_flavors": {
      "enum": [
        "all",
        "ci_light",
        "cupcake"
      ]
    }
  }
}
`

func writeSchema(c *qt.C, content string) string {
	path := filepath.Join(c.TempDir(), "megalinter-descriptor.jsonschema.json")
	err := os.WriteFile(path, []byte(content), 0o644)
	c.Assert(err, qt.IsNil)
	return path
}

func TestAddFlavorInsertsSorted(t *testing.T) {
	c := qt.New(t)
	path := writeSchema(c, schemaContent)
	updater := NewUpdater(path, logger.NewTextLogger())

	err := updater.AddFlavor("bioinformatics")
	c.Assert(err, qt.IsNil)

	data, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	enum, err := enumFlavors(data)
	c.Assert(err, qt.IsNil)
	c.Assert(enum, qt.DeepEquals, []string{"all", "bioinformatics", "ci_light", "cupcake"})

	// Everything outside the enum keeps its formatting.
	c.Assert(strings.Contains(string(data), `"$schema": "http://json-schema.org/draft-07/schema#"`), qt.IsTrue)
	c.Assert(strings.Contains(string(data), `"title": "MegaLinter descriptor"`), qt.IsTrue)
}

func TestAddFlavorIdempotent(t *testing.T) {
	c := qt.New(t)
	path := writeSchema(c, schemaContent)
	updater := NewUpdater(path, logger.NewTextLogger())

	err := updater.AddFlavor("bioinformatics")
	c.Assert(err, qt.IsNil)
	first, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)

	err = updater.AddFlavor("bioinformatics")
	c.Assert(err, qt.IsNil)
	second, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)

	c.Assert(string(second), qt.Equals, string(first))
}

func TestAddFlavorFailsWithoutEnum(t *testing.T) {
	c := qt.New(t)
	path := writeSchema(c, `{"definitions": {}}`)
	updater := NewUpdater(path, logger.NewTextLogger())

	err := updater.AddFlavor("bioinformatics")
	c.Assert(err, qt.ErrorMatches, `failed to read enum_flavors from .*: schema has no enum_flavors definition`)
}
