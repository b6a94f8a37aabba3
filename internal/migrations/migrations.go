package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

//go:embed sql/*.sql
var files embed.FS

// Up applies every pending migration to the database behind pool.
// The pool itself stays open.
func Up(pool *pgxpool.Pool) (err error) {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return fmt.Errorf("iofs.New: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	driver, err := migratepgx.WithInstance(sqlDB, &migratepgx.Config{})
	if err != nil {
		return errors.Join(fmt.Errorf("migratepgx.WithInstance: %w", err), sqlDB.Close())
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return errors.Join(fmt.Errorf("migrate.NewWithInstance: %w", err), driver.Close())
	}

	defer func() {
		srcErr, dbErr := m.Close()
		if err == nil {
			err = errors.Join(srcErr, dbErr)
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("m.Up: %w", err)
	}

	return nil
}
