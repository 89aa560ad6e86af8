package main

import (
	stdcontext "context"

	"github.com/bioflavor/tools/pkg/flavorgen/application/model"
	"github.com/bioflavor/tools/pkg/flavorgen/infrastructure/dependency"
)

func generate(ctx stdcontext.Context, flavor string, description string, components []string) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	return dependencyContainer.Flavor().Generate(ctx, model.Flavor{
		ID:          flavor,
		Description: description,
		Components:  components,
	})
}
