package metadata

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bioflavor/tools/pkg/flavorgen/application/model"
	"github.com/bioflavor/tools/pkg/flavorgen/application/service"
)

const (
	createdLabel  = "org.opencontainers.image.created"
	revisionLabel = "org.opencontainers.image.revision"
	versionLabel  = "org.opencontainers.image.version"
	sourceLabel   = "org.opencontainers.image.source"
)

const maxTagLength = 64

func NewProvider(image model.Image) service.MetadataProvider {
	return &provider{image: image}
}

type provider struct {
	image model.Image
}

// Resolve derives the tag set and OCI labels for a single build. The
// default branch publishes the raw version tag plus a "dev" alias, any
// other branch publishes a branch-prefixed tag.
func (p provider) Resolve(branch string, revision string, now time.Time) model.BuildMetadata {
	imageRef := fmt.Sprintf("%s/%s/%s", p.image.Registry, strings.ToLower(p.image.Owner), p.image.Name)
	var tags []string
	if branch == p.image.DefaultBranch {
		tags = []string{p.image.Version, "dev"}
	} else {
		tags = []string{sanitizeTag(branch) + "-" + p.image.Version}
	}
	refs := make([]string, 0, len(tags))
	for _, tag := range tags {
		refs = append(refs, imageRef+":"+tag)
	}
	return model.BuildMetadata{
		ImageRef: imageRef,
		Tags:     refs,
		Branch:   branch,
		Revision: revision,
		Labels: map[string]string{
			createdLabel:  now.UTC().Format(time.RFC3339),
			revisionLabel: revision,
			versionLabel:  p.image.Version,
			sourceLabel:   fmt.Sprintf("https://github.com/%s/%s", p.image.Owner, p.image.Name),
		},
	}
}

var invalidTagChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func sanitizeTag(branch string) string {
	tag := invalidTagChars.ReplaceAllString(branch, "-")
	tag = strings.Trim(tag, "-.")
	if len(tag) > maxTagLength {
		tag = tag[:maxTagLength]
	}
	return tag
}
