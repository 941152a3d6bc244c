package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/koustreak/dbspec/internal/engine"
)

// ConnectionContext reads the template values a DSN carries, so messages
// that omit them (e.g. a host-down error without the port) can still be
// rendered against what the user configured.
func (*Engine) ConnectionContext(dsn string) (engine.Params, error) {
	cfg, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}

	p := engine.Params{
		engine.KeyUsername: cfg.User,
		engine.KeyDatabase: cfg.DBName,
	}
	if cfg.Net == "tcp" {
		host, port, err := net.SplitHostPort(cfg.Addr)
		if err != nil {
			return nil, fmt.Errorf("parse mysql address %q: %w", cfg.Addr, err)
		}
		p[engine.KeyHostname] = host
		p[engine.KeyPort] = port
	} else {
		p[engine.KeyHostname] = cfg.Addr
	}
	return p, nil
}

// Ping opens a single connection through go-sql-driver/mysql and closes it.
// The returned error is the driver's, unwrapped, so it can be passed to
// DriverMessage.
func (*Engine) Ping(ctx context.Context, dsn string) error {
	cfg, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return err
	}
	connector, err := gomysql.NewConnector(cfg)
	if err != nil {
		return err
	}

	db := sql.OpenDB(connector)
	defer db.Close()

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(0)

	return db.PingContext(ctx)
}
