package main

import (
	stdcontext "context"

	"github.com/bioflavor/tools/pkg/flavorgen/infrastructure/dependency"
)

func build(ctx stdcontext.Context, ref string, push bool) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	return dependencyContainer.Pipeline().Build(ctx, ref, push)
}
