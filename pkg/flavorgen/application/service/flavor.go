package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/bioflavor/tools/pkg/flavorgen/application/model"
)

type DescriptorStore interface {
	Components() (map[model.ComponentID]struct{}, error)
	ApplyFlavor(flavor model.Flavor) error
}

type SchemaUpdater interface {
	AddFlavor(flavor model.FlavorID) error
}

type FactoryUpdater interface {
	AddFlavor(flavor model.FlavorID, description string) error
}

type Flavor interface {
	Generate(ctx context.Context, override model.Flavor) error
}

func NewFlavorService(
	config model.Config,
	logger applogger.Logger,
	descriptors DescriptorStore,
	schema SchemaUpdater,
	factory FactoryUpdater,
) Flavor {
	return &flavor{
		config:      config,
		logger:      logger,
		descriptors: descriptors,
		schema:      schema,
		factory:     factory,
	}
}

type flavor struct {
	config model.Config

	logger      applogger.Logger
	descriptors DescriptorStore
	schema      SchemaUpdater
	factory     FactoryUpdater
}

func (service flavor) Generate(ctx context.Context, override model.Flavor) error {
	f := mergeFlavor(service.config.Flavor, override)
	if f.ID == "" {
		return errors.New("flavor name can not be empty")
	}
	if len(f.Components) == 0 {
		return fmt.Errorf("flavor %v has no components", f.ID)
	}

	service.logger.Info(fmt.Sprintf("generate flavor \"%v\" with %v components...", f.ID, len(f.Components)))
	start := time.Now()
	defer func() {
		service.logger.Info(fmt.Sprintf("done in %v", time.Since(start).String()))
	}()

	err := service.assertComponents(f.Components)
	if err != nil {
		return err
	}
	err = service.schema.AddFlavor(f.ID)
	if err != nil {
		return err
	}
	err = service.factory.AddFlavor(f.ID, f.Description)
	if err != nil {
		return err
	}
	return service.descriptors.ApplyFlavor(f)
}

// assertComponents runs before the first write so a failing generation
// leaves every upstream file untouched.
func (service flavor) assertComponents(components []model.ComponentID) error {
	known, err := service.descriptors.Components()
	if err != nil {
		return err
	}
	var unknown *multierror.Error
	for _, component := range components {
		if _, ok := known[component]; !ok {
			unknown = multierror.Append(unknown, fmt.Errorf("unknown component %q", component))
		}
	}
	return unknown.ErrorOrNil()
}

func mergeFlavor(base model.Flavor, override model.Flavor) model.Flavor {
	if override.ID != "" {
		base.ID = override.ID
	}
	if override.Description != "" {
		base.Description = override.Description
	}
	if len(override.Components) > 0 {
		base.Components = override.Components
	}
	return base
}
