// Package pgtest starts a throwaway PostgreSQL container for integration tests.
package pgtest

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	Image       = "postgres:15-alpine"
	Database    = "relicwatch"
	Username    = "relicwatch"
	Password    = "relicwatch"
	StartupWait = 60 * time.Second
)

// Start runs a postgres container and returns its connection string and a
// terminate func. Docker being unavailable is reported as an error, never a panic.
func Start(ctx context.Context) (connString string, terminate func(), err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("start postgres container: %v", r)
		}
	}()

	container, err := postgres.Run(ctx,
		Image,
		postgres.WithDatabase(Database),
		postgres.WithUsername(Username),
		postgres.WithPassword(Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(StartupWait)),
	)
	if err != nil {
		return "", nil, fmt.Errorf("start postgres container: %w", err)
	}

	connString, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return "", nil, fmt.Errorf("postgres connection string: %w", err)
	}

	return connString, func() {
		if err := container.Terminate(context.Background()); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}, nil
}
