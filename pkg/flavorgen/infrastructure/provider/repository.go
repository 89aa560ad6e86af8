package provider

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/bioflavor/tools/pkg/flavorgen/application/service"
	"github.com/bioflavor/tools/pkg/flavorgen/infrastructure/command"
)

func NewRepositoryProvider(
	upstreamPath string,
	runner command.Runner,
) service.RepositoryProvider {
	return &repositoryProvider{
		upstreamPath: upstreamPath,
		runner:       runner,
	}
}

type repositoryProvider struct {
	upstreamPath string
	runner       command.Runner
}

func (provider repositoryProvider) EnsureUpstream(ctx context.Context) error {
	initialized, err := provider.initialized()
	if err != nil {
		return err
	}
	if initialized {
		return nil
	}
	_, err = provider.runner.Execute(ctx, command.Command{
		Executable: "git",
		Args:       []string{"submodule", "update", "--init", "--recursive", provider.upstreamPath},
	})
	return errors.Wrapf(err, "failed to initialize upstream submodule %v", provider.upstreamPath)
}

func (provider repositoryProvider) Hash(ctx context.Context) (string, error) {
	hash, err := provider.runner.Execute(ctx, command.Command{
		Executable: "git",
		Args:       []string{"rev-parse", "HEAD"},
	})
	return hash, errors.Wrap(err, "failed to resolve head revision")
}

func (provider repositoryProvider) BranchName(ctx context.Context) (string, error) {
	branch, err := provider.runner.Execute(ctx, command.Command{
		Executable: "git",
		Args:       []string{"rev-parse", "--abbrev-ref", "HEAD"},
	})
	return branch, errors.Wrap(err, "failed to resolve branch name")
}

func (provider repositoryProvider) initialized() (bool, error) {
	// A checked out submodule carries a .git entry (a file, not a dir).
	_, err := os.Stat(filepath.Join(provider.upstreamPath, ".git"))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
