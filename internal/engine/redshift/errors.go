package redshift

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/koustreak/dbspec/internal/engine"
	"github.com/koustreak/dbspec/internal/errs"
)

var (
	accessDeniedRE    = regexp.MustCompile(`password authentication failed for user "(?P<username>.*?)"`)
	invalidHostnameRE = regexp.MustCompile(`could not translate host name "(?P<hostname>.*?)" to address: `)
	portClosedRE      = regexp.MustCompile(
		`could not connect to server: Connection refused\s+Is the server running on host "(?P<hostname>.*?)" ` +
			`(\(.*?\) )?and accepting\s+TCP/IP connections on port (?P<port>\d+)\?`)
	hostDownRE = regexp.MustCompile(
		`could not connect to server: (?P<reason>.*?)\s+Is the server running on host "(?P<hostname>.*?)" ` +
			`(\(.*?\) )?and accepting\s+TCP/IP connections on port (?P<port>\d+)\?`)
	unknownDatabaseRE = regexp.MustCompile(`database "(?P<database>.*?)" does not exist`)
	syntaxErrorRE     = regexp.MustCompile(`syntax error at or near "(?P<syntax_error>.*?)"`)

	// pgx replaces the net error of a dial cut short by the context deadline
	// with "timeout: context deadline exceeded", keeping only its per-dial
	// "<addr> (<configured host>): dial error: " prefix.
	dialDeadlineRE = regexp.MustCompile(
		`(?P<address>\S+?):(?P<port>\d+) \((?P<hostname>[^)]*)\): dial error: timeout: `)
)

// catalog order matters: a refused connection also fits the host-down shape,
// so the port-closed rule must be tried first.
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
		Pattern: portClosedRE,
		Type:    errs.TypePortClosed,
		Message: portClosedMessage,
		Invalid: []string{"host", "port"},
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
		Pattern: dialDeadlineRE,
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
	return fmt.Sprintf(`The hostname "%s" cannot be resolved.`, p.Get(engine.KeyHostname))
}

func portClosedMessage(p engine.Params) string {
	return fmt.Sprintf(`Port %s on hostname "%s" refused the connection.`, p.PortText(), p.Get(engine.KeyHostname))
}

func hostDownMessage(p engine.Params) string {
	return fmt.Sprintf(`The host "%s" might be down, and can't be reached on port %s.`, p.Get(engine.KeyHostname), p.PortText())
}

func unknownDatabaseMessage(p engine.Params) string {
	return fmt.Sprintf(`We were unable to connect to your database named "%s". `+
		`Please verify your database name and try again.`, p.Get(engine.KeyDatabase))
}

func syntaxErrorMessage(p engine.Params) string {
	return fmt.Sprintf(`Please check your query for syntax errors at or near "%s". Then, try running your query again.`,
		p.Get("syntax_error"))
}

// --- driver errors ---

// DriverMessage renders a server error the way libpq prints it
// ("FATAL:  password authentication failed ..."). Dial and DNS failures
// reported by pgx keep their own text; the catalog has rules for those too.
func (*Engine) DriverMessage(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Severity == "" {
			return pgErr.Message
		}
		return pgErr.Severity + ":  " + pgErr.Message
	}
	return err.Error()
}
