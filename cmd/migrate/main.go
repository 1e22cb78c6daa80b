package main

import (
	"context"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/uniqverse/marketplace-api/infrastructure/database/postgres"
	"github.com/uniqverse/marketplace-api/internal/config"
	"github.com/uniqverse/marketplace-api/pkg/log"
)

const usage = "usage: migrate [up|down|version|force VERSION]"

func main() {
	if len(os.Args) < 2 {
		logrus.Fatal(usage)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Setup(cfg.App.LogLevel)

	conn, err := postgres.NewConnection(context.Background(), cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to PostgreSQL")
	}
	defer conn.Close()

	driver, err := migratepg.WithInstance(conn.DB(), &migratepg.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("could not create migration driver")
	}

	source := os.Getenv("MIGRATIONS_PATH")
	if source == "" {
		source = "file://migrations"
	}

	m, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		logrus.WithError(err).Fatal("could not load migrations")
	}

	if err := run(m, os.Args[1:]); err != nil {
		logrus.WithError(err).Fatal("migration failed")
	}
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		logrus.Info("migrations applied")

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		logrus.Info("migrations rolled back")

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("current schema version")

	case "force":
		if len(args) < 2 {
			return errors.New(usage)
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.Wrap(err, "invalid version")
		}
		if err := m.Force(version); err != nil {
			return err
		}
		logrus.WithField("version", version).Info("schema version forced")

	default:
		return errors.Errorf("unknown command %q, %s", args[0], usage)
	}

	return nil
}
