package model

// BuildMetadata is computed once per pipeline run from the repository state
// and consumed by a single image build invocation.
type BuildMetadata struct {
	ImageRef string
	Tags     []string
	Labels   map[string]string
	Branch   string
	Revision string
}
