package service

import (
	"context"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/tss-calculator/go-lib/pkg/infrastructure/logger"

	"github.com/bioflavor/tools/pkg/flavorgen/application/model"
)

type fakeFlavorService struct {
	generated int
}

func (s *fakeFlavorService) Generate(ctx context.Context, override model.Flavor) error {
	s.generated++
	return nil
}

type fakeRepositoryProvider struct {
	branch   string
	revision string
	ensured  int
}

func (p *fakeRepositoryProvider) EnsureUpstream(ctx context.Context) error {
	p.ensured++
	return nil
}

func (p *fakeRepositoryProvider) Hash(ctx context.Context) (string, error) {
	return p.revision, nil
}

func (p *fakeRepositoryProvider) BranchName(ctx context.Context) (string, error) {
	return p.branch, nil
}

type fakeMetadataProvider struct {
	branches []string
}

func (p *fakeMetadataProvider) Resolve(branch string, revision string, now time.Time) model.BuildMetadata {
	p.branches = append(p.branches, branch)
	return model.BuildMetadata{
		ImageRef: "ghcr.io/bioflavor/megalinter-bioinformatics",
		Tags:     []string{"ghcr.io/bioflavor/megalinter-bioinformatics:" + branch},
		Branch:   branch,
		Revision: revision,
	}
}

type fakeImageBuilder struct {
	built []model.BuildMetadata
	push  []bool
}

func (b *fakeImageBuilder) Build(ctx context.Context, metadata model.BuildMetadata, push bool) error {
	b.built = append(b.built, metadata)
	b.push = append(b.push, push)
	return nil
}

type passthroughRunner struct {
	refs []string
}

func (r *passthroughRunner) Run(ctx context.Context, ref string, run func(ctx context.Context) error) error {
	r.refs = append(r.refs, ref)
	return run(ctx)
}

func TestBuildRunsGeneratorBeforeImageBuild(t *testing.T) {
	c := qt.New(t)
	flavorService := &fakeFlavorService{}
	repositoryProvider := &fakeRepositoryProvider{branch: "main", revision: "abc123"}
	metadataProvider := &fakeMetadataProvider{}
	imageBuilder := &fakeImageBuilder{}
	runner := &passthroughRunner{}
	service := NewPipelineService(
		model.Config{}, logger.NewTextLogger(),
		flavorService, repositoryProvider, metadataProvider, imageBuilder, runner,
	)

	err := service.Build(context.Background(), "refs-main", true)
	c.Assert(err, qt.IsNil)
	c.Assert(runner.refs, qt.DeepEquals, []string{"refs-main"})
	c.Assert(repositoryProvider.ensured, qt.Equals, 1)
	c.Assert(flavorService.generated, qt.Equals, 1)
	c.Assert(metadataProvider.branches, qt.DeepEquals, []string{"refs-main"})
	c.Assert(imageBuilder.built, qt.HasLen, 1)
	c.Assert(imageBuilder.built[0].Revision, qt.Equals, "abc123")
	c.Assert(imageBuilder.push, qt.DeepEquals, []bool{true})
}

func TestBuildFallsBackToCurrentBranch(t *testing.T) {
	c := qt.New(t)
	flavorService := &fakeFlavorService{}
	repositoryProvider := &fakeRepositoryProvider{branch: "feature/one", revision: "abc123"}
	metadataProvider := &fakeMetadataProvider{}
	imageBuilder := &fakeImageBuilder{}
	runner := &passthroughRunner{}
	service := NewPipelineService(
		model.Config{}, logger.NewTextLogger(),
		flavorService, repositoryProvider, metadataProvider, imageBuilder, runner,
	)

	err := service.Build(context.Background(), "", false)
	c.Assert(err, qt.IsNil)
	c.Assert(runner.refs, qt.DeepEquals, []string{"feature/one"})
	c.Assert(imageBuilder.push, qt.DeepEquals, []bool{false})
}
