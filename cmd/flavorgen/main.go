package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tss-calculator/go-lib/pkg/infrastructure/logger"
	"github.com/urfave/cli/v2"

	"github.com/bioflavor/tools/pkg/flavorgen/infrastructure/config"
	"github.com/bioflavor/tools/pkg/flavorgen/infrastructure/dependency"
)

func main() {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()
	ctx = listenOSKillSignalsContext(ctx)
	mainLogger := logger.NewTextLogger()

	app := &cli.App{
		Name: "flavorgen",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "flavorgen.json",
			},
		},
		Before: func(c *cli.Context) error {
			flavorConfig, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			// CI namespaces the published image by the repository owner.
			if owner := os.Getenv("IMAGE_OWNER"); owner != "" {
				flavorConfig.Image.Owner = owner
			}
			container := dependency.NewDependencyContainer(mainLogger, flavorConfig, os.Getenv("SILENT") != "")
			c.Context = dependency.ContainerToContext(c.Context, container)
			return nil
		},
		Commands: cli.Commands{
			&cli.Command{
				Name: "generate",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name: "flavor",
					},
					&cli.StringFlag{
						Name: "description",
					},
					&cli.StringSliceFlag{
						Name: "components",
					},
				},
				Action: func(c *cli.Context) error {
					return generate(c.Context, c.String("flavor"), c.String("description"), c.StringSlice("components"))
				},
			},
			&cli.Command{
				Name: "build",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name: "push",
					},
					&cli.StringFlag{
						Name: "ref",
					},
				},
				Action: func(c *cli.Context) error {
					return build(c.Context, c.String("ref"), c.Bool("push"))
				},
			},
		},
	}
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		mainLogger.FatalError(err, "failed execute command "+strings.Join(os.Args, " "))
	}
}

func listenOSKillSignalsContext(ctx context.Context) context.Context {
	var cancelFunc context.CancelFunc
	ctx, cancelFunc = context.WithCancel(ctx)
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		select {
		case <-ch:
			cancelFunc()
		case <-ctx.Done():
			return
		}
	}()
	return ctx
}
