package test

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/eskrenkovic/migrate-go"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
)

// LocalTestFixture runs the docker compose infrastructure for integration
// tests. Setting SKIP_INFRASTRUCTURE=true reuses whatever is already running.
type LocalTestFixture struct {
	compose testcontainers.DockerCompose
}

func NewLocalTestFixture(dockerComposePath string) LocalTestFixture {
	compose := testcontainers.NewLocalDockerCompose(
		[]string{dockerComposePath},
		uuid.New().String(),
	)

	return LocalTestFixture{compose: compose.WithCommand([]string{"up", "-d"})}
}

func (f *LocalTestFixture) Start() error {
	if skipInfrastructure() {
		return nil
	}

	execErr := f.compose.Invoke()
	return execErr.Error
}

func (f *LocalTestFixture) Stop() error {
	if skipInfrastructure() {
		return nil
	}

	execErr := f.compose.Down()
	return execErr.Error
}

func skipInfrastructure() bool {
	return os.Getenv("SKIP_INFRASTRUCTURE") == "true"
}

// OpenDatabase connects to databaseURL once Postgres accepts connections and
// applies the migrations.
func OpenDatabase(ctx context.Context, databaseURL, migrationsPath string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second

	ping := func() error {
		return db.PingContext(ctx)
	}

	if err := backoff.Retry(ping, backoff.WithContext(policy, ctx)); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := migrate.Run(ctx, db, migrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
