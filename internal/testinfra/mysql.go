// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

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
	// DefaultMySQLImage is the MySQL image used for store integration tests.
	DefaultMySQLImage = "mysql:8.4"

	mysqlPort     = "3306/tcp"
	mysqlDatabase = "toolrank"
	mysqlPassword = "toolrank"
)

// MySQLContainer is a running MySQL server with an empty toolrank database.
type MySQLContainer struct {
	testcontainers.Container

	// DSN connects as root to the toolrank database.
	DSN string
}

// MySQLOption configures the MySQL container.
type MySQLOption func(*mysqlConfig)

type mysqlConfig struct {
	image        string
	startTimeout time.Duration
}

// WithMySQLImage sets a custom MySQL image.
func WithMySQLImage(image string) MySQLOption {
	return func(c *mysqlConfig) {
		c.image = image
	}
}

// WithMySQLStartTimeout sets how long to wait for the server to accept connections.
func WithMySQLStartTimeout(timeout time.Duration) MySQLOption {
	return func(c *mysqlConfig) {
		c.startTimeout = timeout
	}
}

// NewMySQLContainer starts a MySQL server.
//
//	mysql, err := testinfra.NewMySQLContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	testinfra.CleanupContainer(t, mysql)
//
//	db, err := database.New(&config.DatabaseConfig{Driver: "mysql", DSN: mysql.DSN})
func NewMySQLContainer(ctx context.Context, opts ...MySQLOption) (*MySQLContainer, error) {
	cfg := &mysqlConfig{
		image:        DefaultMySQLImage,
		startTimeout: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{mysqlPort},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": mysqlPassword,
			"MYSQL_DATABASE":      mysqlDatabase,
			"TZ":                  "UTC",
		},
		// The temporary server started during initialization reports port 0.
		WaitingFor: wait.ForAll(
			wait.ForLog("port: 3306  MySQL Community Server").WithOccurrence(1),
			wait.ForListeningPort(mysqlPort),
		).WithDeadline(cfg.startTimeout),
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
		return nil, fmt.Errorf("get mysql host: %w", err)
	}
	mapped, err := container.MappedPort(ctx, mysqlPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mysql port: %w", err)
	}
	port := mapped.Port()

	return &MySQLContainer{
		Container: container,
		DSN:       fmt.Sprintf("root:%s@tcp(%s:%s)/%s", mysqlPassword, host, port, mysqlDatabase),
	}, nil
}
