// Package engine defines the contract every database engine adapter
// implements: an ordered error catalog that turns raw driver messages into
// structured errors, and a type renderer for column types.
//
// Adapters live in sub-packages (mysql, redshift). Callers select them
// through a Registry keyed on the engine identifier and never import an
// adapter directly.
package engine

import (
	"context"

	"github.com/koustreak/dbspec/internal/errs"
	"github.com/koustreak/dbspec/internal/sqltype"
)

// Name identifies an engine, e.g. "mysql".
type Name string

// ErrorExtractor classifies raw driver messages.
type ErrorExtractor interface {
	// ExtractErrors returns the errors the catalog recognises in raw, or an
	// empty slice when nothing matched. connParams supplies template values
	// the message itself does not carry.
	ExtractErrors(raw string, connParams Params) []errs.Error
}

// TypeRenderer renders column types canonically.
type TypeRenderer interface {
	ColumnTypeToString(d sqltype.Descriptor, dialect sqltype.Dialect) string
}

// Spec is the full adapter for one engine.
type Spec interface {
	ErrorExtractor
	TypeRenderer

	Name() Name

	// EngineName is the display name, e.g. "Amazon Redshift".
	EngineName() string

	// Dialect is the dialect used when callers have none of their own.
	Dialect() sqltype.Dialect

	// DriverMessage returns the text of a native driver error that the
	// catalog is matched against.
	DriverMessage(err error) string

	// ConnectionContext extracts template values from a DSN.
	ConnectionContext(dsn string) (Params, error)

	// Ping opens a connection with the engine's driver and closes it.
	Ping(ctx context.Context, dsn string) error
}

// Classify runs a driver error through spec's catalog. Unlike ExtractErrors
// it never returns an empty slice: unmatched errors become a single
// GENERIC_ERROR carrying the driver message.
func Classify(spec Spec, err error, connParams Params) []errs.Error {
	if err == nil {
		return nil
	}
	raw := spec.DriverMessage(err)
	if found := spec.ExtractErrors(raw, connParams); len(found) > 0 {
		return found
	}
	return []errs.Error{*errs.Generic(spec.EngineName(), raw)}
}
