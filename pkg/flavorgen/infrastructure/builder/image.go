package builder

import (
	stdcontext "context"
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/bioflavor/tools/pkg/flavorgen/application/model"
	"github.com/bioflavor/tools/pkg/flavorgen/application/service"
	"github.com/bioflavor/tools/pkg/flavorgen/infrastructure/command"
)

func NewImageBuilder(
	logger applogger.Logger,
	contextDir string,
	runner command.Runner,
) service.ImageBuilder {
	return &imageBuilder{
		logger:     logger,
		contextDir: contextDir,
		runner:     runner,
	}
}

type imageBuilder struct {
	logger     applogger.Logger
	contextDir string
	runner     command.Runner
}

// Build runs a single buildx invocation. With push enabled build and push
// are one atomic step, so a failed build never publishes a tag.
func (builder imageBuilder) Build(ctx stdcontext.Context, metadata model.BuildMetadata, push bool) error {
	builder.logger.Info(fmt.Sprintf("start build image %v...", metadata.ImageRef))
	start := time.Now()
	defer func() {
		builder.logger.Info(fmt.Sprintf("done in %v", time.Since(start).String()))
	}()

	args := []string{"buildx", "build", builder.contextDir}
	for _, tag := range metadata.Tags {
		args = append(args, "--tag", tag)
	}
	labels := make([]string, 0, len(metadata.Labels))
	for label := range metadata.Labels {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		args = append(args, "--label", label+"="+metadata.Labels[label])
	}
	if push {
		args = append(args, "--push")
	}
	output, err := builder.runner.Execute(ctx, command.Command{
		Executable: "docker",
		Args:       args,
	})
	builder.logger.Debug(output)
	return errors.Wrapf(err, "failed to build image %v", metadata.ImageRef)
}
