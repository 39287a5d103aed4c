package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/db"
	"github.com/nekogravitycat/club-booking-backend/internal/user"
)

func main() {
	_ = godotenv.Load()

	cliApp := &cli.App{
		Name:  "clubctl",
		Usage: "operator tasks for the club booking backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "dsn",
				Usage:    "postgres:// connection URL",
				EnvVars:  []string{"DB_DSN", "DATABASE_URL"},
				Required: true,
			},
		},
		Commands: []*cli.Command{
			newMigrateCommand(),
			newCreateAdminCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newMigrateCommand() *cli.Command {
	run := func(c *cli.Context, down bool) error {
		m, err := db.NewMigrator(c.String("dsn"))
		if err != nil {
			return err
		}
		defer m.Close()

		if down {
			err = m.Down()
		} else {
			err = m.Up()
		}
		if err != nil {
			return err
		}

		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Printf("schema version %d (dirty=%t)\n", v, dirty)
		return nil
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "apply all pending migrations",
				Action: func(c *cli.Context) error { return run(c, false) },
			},
			{
				Name:   "down",
				Usage:  "roll back every migration",
				Action: func(c *cli.Context) error { return run(c, true) },
			},
		},
	}
}

func newCreateAdminCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-admin",
		Usage: "create an admin account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "name", Value: "Administrator"},
			&cli.IntFlag{Name: "bcrypt-cost", Value: 12, EnvVars: []string{"BCRYPT_COST"}},
		},
		Action: func(c *cli.Context) error {
			if len(c.String("password")) < 6 {
				return fmt.Errorf("password must be at least 6 characters")
			}

			pool, err := db.NewPool(c.Context, c.String("dsn"), db.PoolOptions{MaxConns: 2})
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := user.NewService(user.NewPgxRepository(pool), auth.NewBcryptPasswordHasherWithCost(c.Int("bcrypt-cost")))
			u, err := svc.Register(c.Context, user.RegisterRequest{
				FullName: c.String("name"),
				Email:    c.String("email"),
				Password: c.String("password"),
				Role:     auth.RoleAdmin,
			})
			if err != nil {
				return err
			}

			fmt.Printf("created admin %d <%s>\n", u.ID, u.Email)
			return nil
		},
	}
}
