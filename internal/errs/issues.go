package errs

import "fmt"

// IssueCode ties a diagnosis to a documentation entry.
type IssueCode struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Documented issue codes.
const (
	IssueUnexpectedError = 1002
	IssueHostUnresolved  = 1007
	IssuePortClosed      = 1008
	IssueHostDown        = 1009
	IssueBadCredentials  = 1014
	IssueUnknownDatabase = 1015
	IssueSyntaxError     = 1030
)

var issueText = map[int]string{
	IssueUnexpectedError: "The database returned an unexpected error.",
	IssueHostUnresolved:  "The hostname provided can't be resolved.",
	IssuePortClosed:      "The port is closed.",
	IssueHostDown:        "The host might be down, and can't be reached on the provided port.",
	IssueBadCredentials:  "Either the username or the password is wrong.",
	IssueUnknownDatabase: "Either the database is spelled incorrectly or does not exist.",
	IssueSyntaxError:     "The query has a syntax error.",
}

// typeIssues is one-to-many: a single diagnosis may point at several issues.
var typeIssues = map[ErrorType][]int{
	TypeAccessDenied:    {IssueBadCredentials, IssueUnknownDatabase},
	TypeInvalidHostname: {IssueHostUnresolved},
	TypePortClosed:      {IssuePortClosed},
	TypeHostDown:        {IssueHostDown},
	TypeUnknownDatabase: {IssueUnknownDatabase},
	TypeSyntax:          {IssueSyntaxError},
	TypeGeneric:         {IssueUnexpectedError},
}

// Issue returns the IssueCode for code. Unknown codes panic: they can only
// come from a misconfigured catalog, which is built at init time.
func Issue(code int) IssueCode {
	text, ok := issueText[code]
	if !ok {
		panic(fmt.Sprintf("errs: unknown issue code %d", code))
	}
	return IssueCode{Code: code, Message: fmt.Sprintf("Issue %d - %s", code, text)}
}

// Issues resolves several codes, preserving order.
func Issues(codes ...int) []IssueCode {
	out := make([]IssueCode, 0, len(codes))
	for _, c := range codes {
		out = append(out, Issue(c))
	}
	return out
}

// IssueCodesFor returns a fresh copy of the default issue codes for t.
func IssueCodesFor(t ErrorType) []IssueCode {
	return Issues(typeIssues[t]...)
}
