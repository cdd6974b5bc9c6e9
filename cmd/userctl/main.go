package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/spec-kit/taskboard/internal/auth"
	"github.com/spec-kit/taskboard/internal/config"
	"github.com/spec-kit/taskboard/internal/observability"
	"github.com/spec-kit/taskboard/internal/persistence"
	"github.com/spec-kit/taskboard/internal/repository"
	"github.com/spec-kit/taskboard/internal/service"
)

// userctl provisions login credentials out of band. User management is
// deliberately not exposed on the authenticated HTTP surface.
func main() {
	app := &cli.App{
		Name:  "userctl",
		Usage: "Manage taskboard user credentials",
		Commands: []*cli.Command{
			registerCmd(),
			verifyCmd(),
			changePasswordCmd(),
			deleteCmd(),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func withAuthService(ctx *cli.Context, fn func(context.Context, *service.AuthService) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	secrets, err := auth.NewSecrets(cfg.Auth.SigningKey, cfg.Auth.Pepper)
	if err != nil {
		return err
	}

	pg, err := persistence.NewPostgres(ctx.Context, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx.Context, pg.PoolHandle(), logger); err != nil {
			return err
		}
	}

	svc := service.NewAuthService(
		repository.NewCredentialRepository(pg.PoolHandle()),
		secrets,
		cfg.Auth.TokenTTL(),
	)
	return fn(ctx.Context, svc)
}

func usernameFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true}
}

func passwordFlag(name string) *cli.StringFlag {
	return &cli.StringFlag{Name: name, Aliases: []string{name[:1]}, Required: true}
}

func registerCmd() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create a new user",
		Flags: []cli.Flag{usernameFlag(), passwordFlag("password")},
		Action: func(ctx *cli.Context) error {
			return withAuthService(ctx, func(c context.Context, svc *service.AuthService) error {
				if err := svc.Register(c, ctx.String("username"), ctx.String("password")); err != nil {
					return err
				}
				fmt.Printf("user %q registered\n", ctx.String("username"))
				return nil
			})
		},
	}
}

func verifyCmd() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Check a username/password pair",
		Flags: []cli.Flag{usernameFlag(), passwordFlag("password")},
		Action: func(ctx *cli.Context) error {
			return withAuthService(ctx, func(c context.Context, svc *service.AuthService) error {
				ok, err := svc.Verify(c, ctx.String("username"), ctx.String("password"))
				if err != nil {
					return err
				}
				if !ok {
					return cli.Exit("verification failed", 1)
				}
				fmt.Println("verification succeeded")
				return nil
			})
		},
	}
}

func changePasswordCmd() *cli.Command {
	return &cli.Command{
		Name:  "change-password",
		Usage: "Change a user's password",
		Flags: []cli.Flag{
			usernameFlag(),
			&cli.StringFlag{Name: "old-password", Required: true},
			&cli.StringFlag{Name: "new-password", Required: true},
		},
		Action: func(ctx *cli.Context) error {
			return withAuthService(ctx, func(c context.Context, svc *service.AuthService) error {
				err := svc.ChangePassword(c, ctx.String("username"), ctx.String("old-password"), ctx.String("new-password"))
				if err != nil {
					return err
				}
				fmt.Printf("password for %q changed\n", ctx.String("username"))
				return nil
			})
		},
	}
}

func deleteCmd() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Remove a user",
		Flags: []cli.Flag{usernameFlag()},
		Action: func(ctx *cli.Context) error {
			return withAuthService(ctx, func(c context.Context, svc *service.AuthService) error {
				removed, err := svc.Delete(c, ctx.String("username"))
				if err != nil {
					return err
				}
				if !removed {
					return cli.Exit(fmt.Sprintf("user %q not found", ctx.String("username")), 1)
				}
				fmt.Printf("user %q deleted\n", ctx.String("username"))
				return nil
			})
		},
	}
}
