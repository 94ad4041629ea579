// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

//go:build integration

// Package testinfra provides Docker-backed test fixtures for integration
// tests gated behind the "integration" build tag. Tests that need a live
// MySQL instance call SkipIfNoDocker first so the suite degrades
// gracefully on a sandbox without Docker rather than failing outright.
package testinfra

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
)

var _ testcontainers.Logging = (*ContainerLogger)(nil)

// SkipIfNoDocker skips t when the Docker daemon isn't reachable.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()
	if !IsDockerAvailable() {
		t.Skip("docker not available, skipping integration test")
	}
}

// IsDockerAvailable probes the daemon with a short-lived "docker info".
func IsDockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}

// ContainerLogger adapts testcontainers' Logging interface to a
// *testing.T so container startup diagnostics show up under `go test -v`.
type ContainerLogger struct {
	t *testing.T
}

// NewContainerLogger returns a ContainerLogger writing to t.Log.
func NewContainerLogger(t *testing.T) *ContainerLogger {
	return &ContainerLogger{t: t}
}

// Printf implements testcontainers.Logging.
func (l *ContainerLogger) Printf(format string, v ...interface{}) {
	l.t.Logf(format, v...)
}

// CleanupContainer registers c.Terminate to run at test cleanup, logging
// rather than failing the test on a terminate error since it runs after
// the test's own assertions have already completed.
func CleanupContainer(t *testing.T, c testcontainers.Container) {
	t.Helper()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := c.Terminate(ctx); err != nil {
			t.Logf("testinfra: terminate container: %v", err)
		}
	})
}
