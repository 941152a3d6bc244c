package mysql

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/dbspec/internal/engine"
	"github.com/koustreak/dbspec/internal/errs"
	"github.com/koustreak/dbspec/internal/sqltype"
)

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want errs.Error
	}{
		{
			name: "access denied",
			msg:  "mysql: Access denied for user 'test'@'testuser.com'",
			want: errs.Error{
				Type:    errs.TypeAccessDenied,
				Message: `Either the username "test" or the password is incorrect.`,
				Level:   errs.LevelError,
				Extra: errs.Extra{
					EngineName: "MySQL",
					Invalid:    []string{"username", "password"},
					IssueCodes: []errs.IssueCode{
						{Code: 1014, Message: "Issue 1014 - Either the username or the password is wrong."},
						{Code: 1015, Message: "Issue 1015 - Either the database is spelled incorrectly or does not exist."},
					},
				},
			},
		},
		{
			name: "unknown host",
			msg:  "mysql: Unknown MySQL server host 'badhostname.com'",
			want: errs.Error{
				Type:    errs.TypeInvalidHostname,
				Message: `Unknown MySQL server host "badhostname.com".`,
				Level:   errs.LevelError,
				Extra: errs.Extra{
					EngineName: "MySQL",
					Invalid:    []string{"host"},
					IssueCodes: []errs.IssueCode{
						{Code: 1007, Message: "Issue 1007 - The hostname provided can't be resolved."},
					},
				},
			},
		},
		{
			name: "host down",
			msg:  "mysql: Can't connect to MySQL server on 'badconnection.com'",
			want: errs.Error{
				Type:    errs.TypeHostDown,
				Message: `The host "badconnection.com" might be down and can't be reached.`,
				Level:   errs.LevelError,
				Extra: errs.Extra{
					EngineName: "MySQL",
					Invalid:    []string{"host", "port"},
					IssueCodes: []errs.IssueCode{
						{Code: 1009, Message: "Issue 1009 - The host might be down, and can't be reached on the provided port."},
					},
				},
			},
		},
		{
			name: "host down by ip",
			msg:  "mysql: Can't connect to MySQL server on '93.184.216.34'",
			want: errs.Error{
				Type:    errs.TypeHostDown,
				Message: `The host "93.184.216.34" might be down and can't be reached.`,
				Level:   errs.LevelError,
				Extra: errs.Extra{
					EngineName: "MySQL",
					Invalid:    []string{"host", "port"},
					IssueCodes: []errs.IssueCode{
						{Code: 1009, Message: "Issue 1009 - The host might be down, and can't be reached on the provided port."},
					},
				},
			},
		},
		{
			name: "unknown database",
			msg:  "mysql: Unknown database 'badDB'",
			want: errs.Error{
				Type:    errs.TypeUnknownDatabase,
				Message: `Unable to connect to database "badDB".`,
				Level:   errs.LevelError,
				Extra: errs.Extra{
					EngineName: "MySQL",
					Invalid:    []string{"database"},
					IssueCodes: []errs.IssueCode{
						{Code: 1015, Message: "Issue 1015 - Either the database is spelled incorrectly or does not exist."},
					},
				},
			},
		},
		{
			name: "syntax error",
			msg:  "check the manual that corresponds to your MySQL server version for the right syntax to use near 'from_",
			want: errs.Error{
				Type:    errs.TypeSyntax,
				Message: `Please check your query for syntax errors near "from_". Then, try running your query again.`,
				Level:   errs.LevelError,
				Extra: errs.Extra{
					EngineName: "MySQL",
					IssueCodes: []errs.IssueCode{
						{Code: 1030, Message: "Issue 1030 - The query has a syntax error."},
					},
				},
			},
		},
	}

	e := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []errs.Error{tt.want}, e.ExtractErrors(tt.msg, nil))

			for _, padded := range []string{
				"\n  " + tt.msg + "\n\t",
				tt.msg + "   ",
				"\t" + tt.msg + "  \r\n",
			} {
				assert.Equal(t, []errs.Error{tt.want}, e.ExtractErrors(padded, nil), "%q", padded)
			}
		})
	}
}

func TestExtractErrors_DialFailures(t *testing.T) {
	e := New()

	got := e.ExtractErrors("dial tcp 10.1.2.3:3307: connect: connection refused", nil)
	require.Len(t, got, 1)
	assert.Equal(t, errs.TypePortClosed, got[0].Type)
	assert.Equal(t, `Port 3307 on hostname "10.1.2.3" refused the connection.`, got[0].Message)
	assert.Equal(t, []string{"host", "port"}, got[0].Extra.Invalid)

	got = e.ExtractErrors("dial tcp 10.1.2.3:3306: i/o timeout", nil)
	require.Len(t, got, 1)
	assert.Equal(t, errs.TypeHostDown, got[0].Type)

	got = e.ExtractErrors("dial tcp: lookup nope.invalid on 127.0.0.53:53: no such host", nil)
	require.Len(t, got, 1)
	assert.Equal(t, errs.TypeInvalidHostname, got[0].Type)
	assert.Equal(t, `Unknown MySQL server host "nope.invalid".`, got[0].Message)
}

func TestExtractErrors_OversizedPort(t *testing.T) {
	got := New().ExtractErrors("dial tcp 10.1.2.3:99999999999999999999: connect: connection refused", nil)
	require.Len(t, got, 1)
	assert.Equal(t, `Port 99999999999999999999 on hostname "10.1.2.3" refused the connection.`, got[0].Message)
}

func TestExtractErrors_NoMatch(t *testing.T) {
	e := New()
	for _, msg := range []string{
		"",
		"Unknown table 'BIRTH_NAMES1' in information_schema",
		"access denied for user 'x'@'y'", // case-sensitive
	} {
		assert.Empty(t, e.ExtractErrors(msg, nil), msg)
	}
}

func TestExtractErrors_Concurrent(t *testing.T) {
	e := New()
	want := e.ExtractErrors("mysql: Unknown database 'badDB'", nil)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msg := fmt.Sprintf("mysql: Unknown database 'db%d'", i)
			got := e.ExtractErrors(msg, nil)
			assert.Len(t, got, 1)
			assert.Equal(t, fmt.Sprintf(`Unable to connect to database "db%d".`, i), got[0].Message)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, want, e.ExtractErrors("mysql: Unknown database 'badDB'", nil))
}

func TestDriverMessage(t *testing.T) {
	e := New()
	msg := "Unknown table 'BIRTH_NAMES1' in information_schema"

	assert.Equal(t, msg, e.DriverMessage(&gomysql.MySQLError{Number: 1109, Message: msg}))
	assert.Equal(t, msg, e.DriverMessage(fmt.Errorf("query: %w", &gomysql.MySQLError{Number: 1109, Message: msg})))
	assert.Equal(t, msg, e.DriverMessage(fmt.Errorf("%s", msg)))
	assert.Equal(t, "", e.DriverMessage(nil))
}

func TestClassify_MySQLError(t *testing.T) {
	err := &gomysql.MySQLError{Number: 1049, Message: "Unknown database 'badDB'"}

	got := engine.Classify(New(), err, nil)
	require.Len(t, got, 1)
	assert.Equal(t, errs.TypeUnknownDatabase, got[0].Type)
	assert.Equal(t, `Unable to connect to database "badDB".`, got[0].Message)
}

func TestColumnTypeToString(t *testing.T) {
	tests := []struct {
		desc sqltype.Descriptor
		want string
	}{
		{sqltype.Date(), "DATE"},
		{sqltype.Varchar(255), "VARCHAR(255)"},
		{sqltype.Varchar(255, sqltype.WithCharset("latin1"), sqltype.WithCollation("utf8mb4_general_ci")), "VARCHAR(255)"},
		{sqltype.Varchar(255, sqltype.WithCollation("utf8mb4_general_ci")), "VARCHAR(255)"},
		{sqltype.NVarchar(128), "NATIONAL VARCHAR(128)"},
		{sqltype.Text(), "TEXT"},
		{sqltype.Text(sqltype.WithCharset("utf8mb4")), "TEXT"},
		{sqltype.Char(3), "CHAR(3)"},
		{sqltype.New("geometry"), "GEOMETRY"},
		{sqltype.Descriptor{Name: sqltype.TypeInteger, Unsigned: true}, "INTEGER UNSIGNED"},
		{sqltype.Descriptor{Name: sqltype.TypeSet, Values: []string{"r", "w"}, Charset: "latin1"}, "SET('R','W')"},
	}

	e := New()
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, e.ColumnTypeToString(tt.desc, sqltype.DialectMySQL))
		})
	}
}

func TestColumnTypeToString_IgnoresCharset(t *testing.T) {
	e := New()
	plain := e.ColumnTypeToString(sqltype.Varchar(64), e.Dialect())
	for _, cs := range []string{"latin1", "utf8mb4", "ascii"} {
		withCS := e.ColumnTypeToString(sqltype.Varchar(64, sqltype.WithCharset(cs), sqltype.WithCollation(cs+"_bin")), e.Dialect())
		assert.Equal(t, plain, withCS)
	}
}

func TestDatatype(t *testing.T) {
	name, ok := Datatype(1)
	assert.True(t, ok)
	assert.Equal(t, "TINY", name)

	name, ok = Datatype(15)
	assert.True(t, ok)
	assert.Equal(t, "VARCHAR", name)

	name, _ = Datatype(247)
	assert.Equal(t, "INTERVAL", name)

	_, ok = Datatype(99)
	assert.False(t, ok)
}

func TestConnectionContext(t *testing.T) {
	e := New()

	p, err := e.ConnectionContext("analyst:secret@tcp(db.example.com:3307)/sales")
	require.NoError(t, err)
	assert.Equal(t, engine.Params{
		engine.KeyUsername: "analyst",
		engine.KeyDatabase: "sales",
		engine.KeyHostname: "db.example.com",
		engine.KeyPort:     "3307",
	}, p)

	p, err = e.ConnectionContext("root@unix(/var/run/mysqld/mysqld.sock)/app")
	require.NoError(t, err)
	assert.Equal(t, "/var/run/mysqld/mysqld.sock", p.Get(engine.KeyHostname))

	_, err = e.ConnectionContext("not a dsn")
	assert.Error(t, err)
}

func TestPing_ClosedPort(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	e := New()
	err = e.Ping(ctx, "u:p@tcp(127.0.0.1:"+strconv.Itoa(port)+")/db")
	require.Error(t, err)

	got := engine.Classify(e, err, nil)
	require.Len(t, got, 1)
	assert.Equal(t, errs.TypePortClosed, got[0].Type)
	assert.Equal(t, fmt.Sprintf(`Port %d on hostname "127.0.0.1" refused the connection.`, port), got[0].Message)
}

func TestCatalog_Order(t *testing.T) {
	var types []errs.ErrorType
	for _, r := range New().Catalog().Rules() {
		types = append(types, r.Type)
	}
	assert.Equal(t, []errs.ErrorType{
		errs.TypeAccessDenied,
		errs.TypeInvalidHostname,
		errs.TypeHostDown,
		errs.TypeUnknownDatabase,
		errs.TypeSyntax,
		errs.TypePortClosed,
		errs.TypeHostDown,
		errs.TypeInvalidHostname,
	}, types)
}
