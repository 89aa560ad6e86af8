package model

// Upstream points into the vendored megalinter submodule.
type Upstream struct {
	Path           string
	DescriptorsDir string
	SchemaFile     string
	FactoryFile    string
}
