package mysql

import (
	"errors"
	"fmt"
	"regexp"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/koustreak/dbspec/internal/engine"
	"github.com/koustreak/dbspec/internal/errs"
)

var (
	accessDeniedRE    = regexp.MustCompile(`Access denied for user '(?P<username>.*?)'@`)
	invalidHostnameRE = regexp.MustCompile(`Unknown MySQL server host '(?P<hostname>.*?)'`)
	hostDownRE        = regexp.MustCompile(`Can't connect to MySQL server on '(?P<hostname>.*?)'`)
	unknownDatabaseRE = regexp.MustCompile(`Unknown database '(?P<database>.*?)'`)
	syntaxErrorRE     = regexp.MustCompile(
		`(?m)check the manual that corresponds to your MySQL server version for the right syntax to use near '(?P<server_error>.*?)[ \t\r]*$`)
)

// catalog is evaluated top to bottom; the libmysql wordings come first so
// they keep precedence over the net-level dial failures go-sql-driver emits.
var catalog = engine.NewCatalog(EngineName,
	engine.Rule{
		Pattern: accessDeniedRE,
		Type:    errs.TypeAccessDenied,
		Message: accessDeniedMessage,
		Invalid: []string{"username", "password"},
	},
	engine.Rule{
		Pattern: invalidHostnameRE,
		Type:    errs.TypeInvalidHostname,
		Message: invalidHostnameMessage,
		Invalid: []string{"host"},
	},
	engine.Rule{
		Pattern: hostDownRE,
		Type:    errs.TypeHostDown,
		Message: hostDownMessage,
		Invalid: []string{"host", "port"},
	},
	engine.Rule{
		Pattern: unknownDatabaseRE,
		Type:    errs.TypeUnknownDatabase,
		Message: unknownDatabaseMessage,
		Invalid: []string{"database"},
	},
	engine.Rule{
		Pattern: syntaxErrorRE,
		Type:    errs.TypeSyntax,
		Message: syntaxErrorMessage,
	},
	engine.Rule{
		Pattern: engine.DialRefused,
		Type:    errs.TypePortClosed,
		Message: portClosedMessage,
		Invalid: []string{"host", "port"},
	},
	engine.Rule{
		Pattern: engine.DialTimeout,
		Type:    errs.TypeHostDown,
		Message: hostDownMessage,
		Invalid: []string{"host", "port"},
	},
	engine.Rule{
		Pattern: engine.LookupFailed,
		Type:    errs.TypeInvalidHostname,
		Message: invalidHostnameMessage,
		Invalid: []string{"host"},
	},
)

// --- message templates ---

func accessDeniedMessage(p engine.Params) string {
	return fmt.Sprintf(`Either the username "%s" or the password is incorrect.`, p.Get(engine.KeyUsername))
}

func invalidHostnameMessage(p engine.Params) string {
	return fmt.Sprintf(`Unknown MySQL server host "%s".`, p.Get(engine.KeyHostname))
}

func hostDownMessage(p engine.Params) string {
	return fmt.Sprintf(`The host "%s" might be down and can't be reached.`, p.Get(engine.KeyHostname))
}

func portClosedMessage(p engine.Params) string {
	return fmt.Sprintf(`Port %s on hostname "%s" refused the connection.`, p.PortText(), p.Get(engine.KeyHostname))
}

func unknownDatabaseMessage(p engine.Params) string {
	return fmt.Sprintf(`Unable to connect to database "%s".`, p.Get(engine.KeyDatabase))
}

func syntaxErrorMessage(p engine.Params) string {
	return fmt.Sprintf(`Please check your query for syntax errors near "%s". Then, try running your query again.`,
		p.Get("server_error"))
}

// --- driver errors ---

// DriverMessage returns the server message of a *mysql.MySQLError, without
// the "Error 1049 (42000):" prefix the driver adds. Other errors, including
// the net errors go-sql-driver returns when dialing fails, are used verbatim.
func (*Engine) DriverMessage(err error) string {
	if err == nil {
		return ""
	}
	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Message
	}
	return err.Error()
}
