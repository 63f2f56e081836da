package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"creditrisk/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

const testURL = "postgres://u:p@h:5432/db?sslmode=disable"

func TestOpenParseError(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "://bad"}, nil); err == nil {
		t.Fatalf("expected parse error, got nil")
	}
}

func TestOpenNewPoolError(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("boom")
	})
	_, err := Open(context.Background(), Config{URL: testURL}, nil)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected newPool error, got %v", err)
	}
}

func TestOpenAppliesConfig(t *testing.T) {
	testkit.Serial(t)
	fake := &pgxpool.Pool{}
	var seen *pgxpool.Config
	testkit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = pc
		return fake, nil
	})

	p, err := Open(context.Background(), Config{
		URL:              testURL,
		MaxConns:         7,
		SlowMs:           123,
		AppName:          "creditrisk-api",
		StatementTimeout: 2 * time.Second,
	}, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if seen.MaxConns != 7 || p.SlowMs != 123 || p.Pool != fake {
		t.Fatalf("config not applied: maxConns=%d p=%+v", seen.MaxConns, p)
	}
	rp := seen.ConnConfig.RuntimeParams
	if rp["application_name"] != "creditrisk-api" || rp["statement_timeout"] != "2000" {
		t.Fatalf("runtime params = %v", rp)
	}
}

func TestOpenLeavesDefaults(t *testing.T) {
	testkit.Serial(t)
	var seen *pgxpool.Config
	testkit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = pc
		return &pgxpool.Pool{}, nil
	})
	if _, err := Open(context.Background(), Config{URL: testURL}, nil); err != nil {
		t.Fatal(err)
	}
	if _, ok := seen.ConnConfig.RuntimeParams["statement_timeout"]; ok {
		t.Fatalf("statement_timeout set without config")
	}
}

func TestCloseNilSafe(t *testing.T) {
	var p *PG
	p.Close()
	(&PG{}).Close()
}
