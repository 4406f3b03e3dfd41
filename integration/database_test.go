//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDevpulseWithMySQL tests the devpulse CLI with a MySQL store backend.
func TestDevpulseWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "devpulse",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/devpulse?parseTime=true", host, port.Port())

	// Set environment variables
	_ = os.Setenv("DEVPULSE_STORE_BACKEND", "mysql")
	_ = os.Setenv("DEVPULSE_STORE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("DEVPULSE_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("DEVPULSE_STORE_DB_CONNECT") }()

	runStoreLifecycle(t)
}

// TestDevpulseWithPostgres tests the devpulse CLI with a PostgreSQL store backend.
func TestDevpulseWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	// Set environment variables
	_ = os.Setenv("DEVPULSE_STORE_BACKEND", "postgresql")
	_ = os.Setenv("DEVPULSE_STORE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("DEVPULSE_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("DEVPULSE_STORE_DB_CONNECT") }()

	runStoreLifecycle(t)
}

// runStoreLifecycle exercises migrate, report persistence and run listing
// against whatever backend the environment points at.
func runStoreLifecycle(t *testing.T) {
	t.Helper()
	batchPath := writeSampleBatch(t)

	// Apply warning-table migrations on the fresh database
	err := runDevpulseCommand(t, "migrate")
	require.NoError(t, err)

	// Run a full report twice so the runs list has history
	err = runDevpulseCommand(t, "report", batchPath)
	require.NoError(t, err)
	err = runDevpulseCommand(t, "report", batchPath, "--window", "7")
	require.NoError(t, err)

	// List stored runs
	err = runDevpulseCommand(t, "runs")
	require.NoError(t, err)

	// Inspect stored warnings for the first run
	err = runDevpulseCommand(t, "runs", "--run-warnings", "1")
	require.NoError(t, err)

	// Roll the migration back and forward again
	err = runDevpulseCommand(t, "migrate", "--target-version", "0")
	require.NoError(t, err)
	err = runDevpulseCommand(t, "migrate")
	require.NoError(t, err)
}
