package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tss-calculator/go-lib/pkg/infrastructure/logger"

	"github.com/urfave/cli/v2"
)

func main() {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()
	ctx = listenOSKillSignalsContext(ctx)
	mainLogger := logger.NewTextLogger()

	app := &cli.App{
		Name:      "deploy",
		Usage:     "deploy a pushed branch or tag into the work area",
		ArgsUsage: "<oldrev> <newrev> <ref>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML or JSON config file",
				EnvVars: []string{"DEPLOYMENT_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "dotenv file with DEPLOYMENT_* variables",
				EnvVars: []string{"DEPLOYMENT_ENV_FILE"},
			},
			&cli.StringFlag{
				Name:    "expectations",
				Usage:   "command fixtures replayed in testing mode",
				EnvVars: []string{"DEPLOYMENT_EXPECTATIONS"},
			},
		},
		Action: func(c *cli.Context) error {
			ctx, err := setup(c.Context, c.String("config"), c.String("env-file"), c.String("expectations"))
			if err != nil {
				return err
			}
			return deploy(ctx, c.Args().Slice())
		},
	}
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		mainLogger.Error(err, "failed execute command "+strings.Join(os.Args, " "))
		os.Exit(exitCode(err))
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
