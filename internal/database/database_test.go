// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package database

import (
	"errors"
	"testing"
)

func TestWithSchema(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		schema  string
		want    string
		wantErr bool
	}{
		{
			name:   "simple dsn",
			dsn:    "user:pass@tcp(127.0.0.1:3306)/global",
			schema: "tenant_acme",
			want:   "user:pass@tcp(127.0.0.1:3306)/tenant_acme",
		},
		{
			name:   "dsn with query params",
			dsn:    "user:pass@tcp(127.0.0.1:3306)/global?parseTime=true&loc=UTC",
			schema: "tenant_acme",
			want:   "user:pass@tcp(127.0.0.1:3306)/tenant_acme?parseTime=true&loc=UTC",
		},
		{
			name:    "empty schema rejected",
			dsn:     "user:pass@tcp(127.0.0.1:3306)/global",
			schema:  "",
			wantErr: true,
		},
		{
			name:    "schema with path separator rejected",
			dsn:     "user:pass@tcp(127.0.0.1:3306)/global",
			schema:  "tenant/evil",
			wantErr: true,
		},
		{
			name:    "dsn missing schema separator",
			dsn:     "user:pass@tcp(127.0.0.1:3306)",
			schema:  "tenant_acme",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := withSchema(tt.dsn, tt.schema)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("withSchema(%q, %q) expected error, got nil", tt.dsn, tt.schema)
				}
				return
			}
			if err != nil {
				t.Fatalf("withSchema(%q, %q) unexpected error: %v", tt.dsn, tt.schema, err)
			}
			if got != tt.want {
				t.Errorf("withSchema(%q, %q) = %q, want %q", tt.dsn, tt.schema, got, tt.want)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("connection refused"), true},
		{errors.New("driver: bad connection"), true},
		{errors.New("sql: database is closed"), true},
		{errors.New("Error 1062: Duplicate entry"), false},
		{errors.New("syntax error near SELECT"), false},
	}

	for _, tt := range tests {
		got := isConnectionError(tt.err)
		if got != tt.want {
			t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestIsLockWaitTimeout(t *testing.T) {
	if !isLockWaitTimeout(errors.New("Error 1205: Lock wait timeout exceeded; try restarting transaction")) {
		t.Error("expected lock wait timeout to be detected")
	}
	if isLockWaitTimeout(errors.New("connection refused")) {
		t.Error("did not expect lock wait timeout for unrelated error")
	}
	if isLockWaitTimeout(nil) {
		t.Error("nil error should not be a lock wait timeout")
	}
}

func TestIsDuplicateEntry(t *testing.T) {
	if !isDuplicateEntry(errors.New("Error 1062: Duplicate entry 'p202601' for key 'PRIMARY'")) {
		t.Error("expected duplicate entry to be detected")
	}
	if isDuplicateEntry(errors.New("connection refused")) {
		t.Error("did not expect duplicate entry for unrelated error")
	}
}
