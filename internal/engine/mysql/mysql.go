// Package mysql is the MySQL engine adapter: its error catalog, column type
// rendering and the go-sql-driver/mysql glue used to probe connections.
package mysql

import (
	"strings"

	"github.com/koustreak/dbspec/internal/engine"
	"github.com/koustreak/dbspec/internal/errs"
	"github.com/koustreak/dbspec/internal/sqltype"
)

const (
	// Name is the registry identifier.
	Name engine.Name = "mysql"

	// EngineName is the display name stamped on structured errors.
	EngineName = "MySQL"
)

// Engine implements engine.Spec for MySQL. The zero value is ready to use
// and safe for concurrent use.
type Engine struct{}

// New returns the MySQL adapter.
func New() *Engine {
	return &Engine{}
}

func (*Engine) Name() engine.Name        { return Name }
func (*Engine) EngineName() string       { return EngineName }
func (*Engine) Dialect() sqltype.Dialect { return sqltype.DialectMySQL }
func (*Engine) Catalog() *engine.Catalog { return catalog }
func (*Engine) Aliases() []string        { return []string{"mariadb"} }
func (*Engine) Drivers() []string        { return []string{"mysqldb", "mysqlconnector"} }

// ExtractErrors matches raw against the MySQL catalog.
func (*Engine) ExtractErrors(raw string, connParams engine.Params) []errs.Error {
	return catalog.Extract(raw, connParams)
}

// ColumnTypeToString renders d without the CHARACTER SET and COLLATE
// clauses the MySQL dialect appends to string types.
func (*Engine) ColumnTypeToString(d sqltype.Descriptor, dialect sqltype.Dialect) string {
	s := strings.ToUpper(sqltype.Compile(d, dialect))
	for _, cut := range []string{" CHARACTER SET ", " COLLATE "} {
		if i := strings.Index(s, cut); i >= 0 {
			s = s[:i]
		}
	}
	return s
}

var (
	_ engine.Spec             = (*Engine)(nil)
	_ engine.BackendSupporter = (*Engine)(nil)
)
