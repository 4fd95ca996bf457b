package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/iamRazzakk/storefront-api/cmd/app/commands"
	"github.com/iamRazzakk/storefront-api/internal/app"
	"github.com/iamRazzakk/storefront-api/internal/config"
)

func getCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Create the MongoDB indexes",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				if err := cfg.Validate(); err != nil {
					return fmt.Errorf("invalid configuration: %w", err)
				}

				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(context.Background()) }()

				db, err := container.Database()
				if err != nil {
					return err
				}

				return commands.RunMigrations(ctx, db, container.Logger())
			},
		},
	}
}
