// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultMySQLImage matches the server version the tenant databases
	// run in production: partition syntax and TIME() semantics both
	// depend on it.
	DefaultMySQLImage = "mysql:8.0"

	// DefaultMySQLPort is MySQL's standard listening port.
	DefaultMySQLPort = "3306"

	// DefaultMySQLDatabase is the schema created inside the container.
	DefaultMySQLDatabase = "cartographus_test"

	// DefaultMySQLPassword is the root password set for the throwaway
	// container; it never leaves the test host.
	DefaultMySQLPassword = "cartographus"
)

// MySQLContainer represents a running MySQL instance for integration
// tests against internal/repository and internal/partition, both of
// which issue SQL (cursor pagination with partition hints, REORGANIZE /
// ADD / DROP PARTITION DDL) that sqlmock cannot validate against a real
// parser.
type MySQLContainer struct {
	testcontainers.Container
	DSN string
}

// MySQLOption configures the MySQL container.
type MySQLOption func(*mysqlConfig)

type mysqlConfig struct {
	image        string
	database     string
	password     string
	startTimeout time.Duration
}

// WithMySQLImage sets a custom MySQL image.
func WithMySQLImage(image string) MySQLOption {
	return func(c *mysqlConfig) { c.image = image }
}

// WithMySQLDatabase sets the schema name created on startup.
func WithMySQLDatabase(name string) MySQLOption {
	return func(c *mysqlConfig) { c.database = name }
}

// WithMySQLStartTimeout overrides how long to wait for MySQL to accept
// connections before giving up.
func WithMySQLStartTimeout(timeout time.Duration) MySQLOption {
	return func(c *mysqlConfig) { c.startTimeout = timeout }
}

// NewMySQLContainer creates and starts a MySQL container, returning a
// ready-to-dial DSN. Callers are responsible for running schema
// migrations against DSN once the container starts; MySQL's own
// readiness log line only guarantees the server is accepting
// connections, not that application tables exist.
//
// Example:
//
//	ctx := context.Background()
//	mysql, err := testinfra.NewMySQLContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	testinfra.CleanupContainer(t, mysql)
//	db, err := sql.Open("mysql", mysql.DSN)
func NewMySQLContainer(ctx context.Context, opts ...MySQLOption) (*MySQLContainer, error) {
	cfg := &mysqlConfig{
		image:        DefaultMySQLImage,
		database:     DefaultMySQLDatabase,
		password:     DefaultMySQLPassword,
		startTimeout: 90 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{DefaultMySQLPort + "/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": cfg.password,
			"MYSQL_DATABASE":      cfg.database,
		},
		// MySQL 8 logs "ready for connections" once during the initial
		// bootstrap and again after it restarts with the final
		// configuration; waiting for the second occurrence avoids
		// racing that restart.
		WaitingFor: wait.ForLog("ready for connections").
			WithOccurrence(2).
			WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create mysql container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, DefaultMySQLPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	dsn := fmt.Sprintf("root:%s@tcp(%s:%s)/%s?parseTime=true&multiStatements=true",
		cfg.password, host, port.Port(), cfg.database)

	return &MySQLContainer{Container: container, DSN: dsn}, nil
}

// Terminate stops and removes the MySQL container.
func (c *MySQLContainer) Terminate(ctx context.Context) error {
	return c.Container.Terminate(ctx)
}
