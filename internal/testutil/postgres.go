// Package testutil поднимает PostgreSQL в testcontainers и наполняет его данными для тестов.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aidar/team-users-service/internal/config"
	"github.com/aidar/team-users-service/migrations"
)

const (
	dbName     = "team_users_test"
	dbUser     = "test_user"
	dbPassword = "test_password"
)

// Postgres содержит запущенный контейнер и пул подключений к нему
type Postgres struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	Config    config.DatabaseConfig
}

// StartPostgres запускает контейнер, применяет миграции и регистрирует очистку в t.Cleanup
func StartPostgres(t *testing.T) *Postgres {
	t.Helper()
	ctx := context.Background()

	// Запускаем PostgreSQL контейнер
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := config.DatabaseConfig{
		Host:     host,
		Port:     port.Port(),
		User:     dbUser,
		Password: dbPassword,
		Name:     dbName,
		SSLMode:  "disable",
		MaxConns: 10,
		MinConns: 1,
	}

	pool, err := pgxpool.New(ctx, cfg.DSN())
	require.NoError(t, err, "Failed to connect to PostgreSQL")
	t.Cleanup(pool.Close)

	// Применяем миграции
	require.NoError(t, migrations.Up(ctx, pool), "Failed to apply migrations")

	return &Postgres{
		Container: container,
		Pool:      pool,
		Config:    cfg,
	}
}
