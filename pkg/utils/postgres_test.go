package utils

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestPostgresPoolConfig_Defaults(t *testing.T) {
	got := PostgresPoolConfig{}.withDefaults()
	if got.MaxOpenConns != 10 || got.MaxIdleConns != 5 {
		t.Fatalf("unexpected pool sizes: %+v", got)
	}
	if got.ApplicationName != DefaultApplicationName {
		t.Fatalf("unexpected application name %q", got.ApplicationName)
	}
	if got.PingTimeout != 5*time.Second {
		t.Fatalf("unexpected ping timeout %s", got.PingTimeout)
	}

	kept := PostgresPoolConfig{MaxOpenConns: 3, PingTimeout: time.Second}.withDefaults()
	if kept.MaxOpenConns != 3 || kept.PingTimeout != time.Second {
		t.Fatalf("explicit values must be kept: %+v", kept)
	}
}

func TestOpenPostgres_MalformedDSN(t *testing.T) {
	_, err := OpenPostgres(context.Background(), "postgres://user@localhost:notaport/db", PostgresPoolConfig{})
	if err == nil {
		t.Fatalf("expected error for malformed dsn")
	}
	if !strings.Contains(err.Error(), "db config invalid") {
		t.Fatalf("expected config error, got %v", err)
	}
}
