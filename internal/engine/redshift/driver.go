package redshift

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/koustreak/dbspec/internal/engine"
)

// ConnectionContext reads host, port, user and database from a libpq style
// DSN or URL.
func (*Engine) ConnectionContext(dsn string) (engine.Params, error) {
	cfg, err := pgconn.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse redshift dsn: %w", err)
	}
	return engine.Params{
		engine.KeyHostname: cfg.Host,
		engine.KeyPort:     strconv.Itoa(int(cfg.Port)),
		engine.KeyUsername: cfg.User,
		engine.KeyDatabase: cfg.Database,
	}, nil
}

// Ping connects with pgx, pings and disconnects. Connection errors are
// returned as pgx produced them.
func (*Engine) Ping(ctx context.Context, dsn string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close(context.WithoutCancel(ctx))

	return conn.Ping(ctx)
}
