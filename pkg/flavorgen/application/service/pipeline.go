package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/bioflavor/tools/pkg/flavorgen/application/model"
)

type RepositoryProvider interface {
	EnsureUpstream(ctx context.Context) error
	Hash(ctx context.Context) (string, error)
	BranchName(ctx context.Context) (string, error)
}

type MetadataProvider interface {
	Resolve(branch string, revision string, now time.Time) model.BuildMetadata
}

type ImageBuilder interface {
	Build(ctx context.Context, metadata model.BuildMetadata, push bool) error
}

// PipelineRunner serializes runs per ref: starting a run for a ref that
// already has one in flight cancels the older run.
type PipelineRunner interface {
	Run(ctx context.Context, ref string, run func(ctx context.Context) error) error
}

type Pipeline interface {
	Build(ctx context.Context, ref string, push bool) error
}

func NewPipelineService(
	config model.Config,
	logger applogger.Logger,
	flavor Flavor,
	repositoryProvider RepositoryProvider,
	metadataProvider MetadataProvider,
	imageBuilder ImageBuilder,
	runner PipelineRunner,
) Pipeline {
	return &pipeline{
		config:             config,
		logger:             logger,
		flavor:             flavor,
		repositoryProvider: repositoryProvider,
		metadataProvider:   metadataProvider,
		imageBuilder:       imageBuilder,
		runner:             runner,
	}
}

type pipeline struct {
	config model.Config

	logger             applogger.Logger
	flavor             Flavor
	repositoryProvider RepositoryProvider
	metadataProvider   MetadataProvider
	imageBuilder       ImageBuilder
	runner             PipelineRunner
}

func (service pipeline) Build(ctx context.Context, ref string, push bool) error {
	branch := ref
	if branch == "" {
		var err error
		branch, err = service.repositoryProvider.BranchName(ctx)
		if err != nil {
			return err
		}
	}
	return service.runner.Run(ctx, branch, func(ctx context.Context) error {
		err := service.repositoryProvider.EnsureUpstream(ctx)
		if err != nil {
			return err
		}
		err = service.flavor.Generate(ctx, model.Flavor{})
		if err != nil {
			return err
		}
		revision, err := service.repositoryProvider.Hash(ctx)
		if err != nil {
			return err
		}
		metadata := service.metadataProvider.Resolve(branch, revision, time.Now())
		service.logger.Info(fmt.Sprintf("build image %v with tags %v", metadata.ImageRef, strings.Join(metadata.Tags, ", ")))
		return service.imageBuilder.Build(ctx, metadata, push)
	})
}
