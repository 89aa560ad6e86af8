package dependency

import (
	"context"
	"errors"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/bioflavor/tools/pkg/flavorgen/application/model"
	"github.com/bioflavor/tools/pkg/flavorgen/application/service"
	"github.com/bioflavor/tools/pkg/flavorgen/infrastructure/builder"
	"github.com/bioflavor/tools/pkg/flavorgen/infrastructure/command"
	"github.com/bioflavor/tools/pkg/flavorgen/infrastructure/descriptor"
	"github.com/bioflavor/tools/pkg/flavorgen/infrastructure/factory"
	"github.com/bioflavor/tools/pkg/flavorgen/infrastructure/metadata"
	"github.com/bioflavor/tools/pkg/flavorgen/infrastructure/pipeline"
	"github.com/bioflavor/tools/pkg/flavorgen/infrastructure/provider"
	"github.com/bioflavor/tools/pkg/flavorgen/infrastructure/schema"
)

var dependencyContainer = struct{}{}

type Container interface {
	Flavor() service.Flavor
	Pipeline() service.Pipeline
}

func NewDependencyContainer(
	logger applogger.Logger,
	config model.Config,
	silentMode bool,
) Container {
	runner := command.NewCommandRunner(logger, silentMode)
	descriptorStore := descriptor.NewStore(config.Upstream.DescriptorsDir, logger)
	schemaUpdater := schema.NewUpdater(config.Upstream.SchemaFile, logger)
	factoryUpdater := factory.NewUpdater(config.Upstream.FactoryFile, logger)
	flavorService := service.NewFlavorService(config, logger, descriptorStore, schemaUpdater, factoryUpdater)

	repositoryProvider := provider.NewRepositoryProvider(config.Upstream.Path, runner)
	metadataProvider := metadata.NewProvider(config.Image)
	imageBuilder := builder.NewImageBuilder(logger, config.Upstream.Path, runner)
	pipelineRunner := pipeline.NewRunner(logger)
	pipelineService := service.NewPipelineService(
		config, logger, flavorService, repositoryProvider, metadataProvider, imageBuilder, pipelineRunner,
	)

	return &container{
		flavor:   flavorService,
		pipeline: pipelineService,
	}
}

type container struct {
	flavor   service.Flavor
	pipeline service.Pipeline
}

func (c *container) Flavor() service.Flavor {
	return c.flavor
}

func (c *container) Pipeline() service.Pipeline {
	return c.pipeline
}

func ContainerFromContext(ctx context.Context) (Container, error) {
	v := ctx.Value(dependencyContainer)
	if c, ok := v.(Container); ok {
		return c, nil
	}
	return nil, errors.New("dependency container not found")
}

func ContainerToContext(ctx context.Context, c Container) context.Context {
	return context.WithValue(ctx, dependencyContainer, c)
}
