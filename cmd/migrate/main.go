package main

import (
	"time"

	"garitoblackjack-server/internal/config"
	"garitoblackjack-server/pkg/gamestore"

	"github.com/sirupsen/logrus"
)

func main() {
	store := waitForDB()
	if err := store.Migrate(config.Instance().MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}
}

func waitForDB() *gamestore.Store {
	timeout := time.NewTimer(time.Second * 10)
	for {
		select {
		case <-timeout.C:
			logrus.Fatal("could not connect to database")
		default:
			store, err := gamestore.New(config.Instance().PGDSN)
			if err == nil {
				return store
			}

			time.Sleep(time.Millisecond * 500)
		}
	}
}
