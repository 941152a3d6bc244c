package engine

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/koustreak/dbspec/internal/errs"
	"github.com/koustreak/dbspec/internal/sqltype"
)

const (
	// BaseName identifies the generic fallback adapter.
	BaseName Name = "base"

	// BaseEngineName is the display name the fallback stamps on errors.
	BaseEngineName = "Generic"
)

// ErrNoDriver is returned by Base.Ping: the fallback has no driver to dial
// with.
var ErrNoDriver = errors.New("no driver for engine")

// DialectGeneric is the dialect of the fallback adapter. It adds nothing to
// the dialect-independent rendering.
var DialectGeneric = sqltype.Dialect{Name: string(BaseName)}

var baseCatalog = NewCatalog(BaseEngineName)

// Base is the adapter Registry.Resolve falls back to for backends no
// registered engine supports. Its catalog is empty, so every driver error
// classifies as GENERIC_ERROR, and types render via Descriptor.String.
type Base struct{}

func (Base) Name() Name                         { return BaseName }
func (Base) EngineName() string                 { return BaseEngineName }
func (Base) Dialect() sqltype.Dialect           { return DialectGeneric }
func (Base) Catalog() *Catalog                  { return baseCatalog }
func (Base) DriverMessage(err error) string     { return err.Error() }
func (Base) Ping(context.Context, string) error { return ErrNoDriver }

// ExtractErrors never matches.
func (Base) ExtractErrors(raw string, connParams Params) []errs.Error {
	return baseCatalog.Extract(raw, connParams)
}

// ColumnTypeToString ignores the dialect.
func (Base) ColumnTypeToString(d sqltype.Descriptor, _ sqltype.Dialect) string {
	return d.String()
}

// ConnectionContext reads what it can from a URL style DSN
// (scheme://user@host:port/database).
func (Base) ConnectionContext(dsn string) (Params, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	p := Params{
		KeyHostname: u.Hostname(),
		KeyPort:     u.Port(),
		KeyUsername: u.User.Username(),
	}
	if len(u.Path) > 1 {
		p[KeyDatabase] = u.Path[1:]
	}
	return p, nil
}

var _ Spec = Base{}
