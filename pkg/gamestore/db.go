package gamestore

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/sirupsen/logrus"

	_ "github.com/golang-migrate/migrate/v4/source/file" // needed
	_ "github.com/lib/pq"                                // postgres driver
)

// Store persists game snapshots and leaderboard results in postgres
type Store struct {
	db *sql.DB
}

// New connects to postgres and returns a store
func New(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Migrate runs the migrations
func (s *Store) Migrate(migrationsPath string) error {
	logrus.WithField("migrationsPath", migrationsPath).Info("running migrations")

	driver, err := postgres.WithInstance(s.db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}

// Close closes the underlying database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// Scanner is an interface that sql should've provided
type Scanner interface {
	Scan(...interface{}) error
}
