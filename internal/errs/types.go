package errs

// ErrorType is the closed taxonomy exposed to API clients. The string values
// are part of the wire contract: UI and API consumers branch on them.
type ErrorType string

const (
	TypeAccessDenied    ErrorType = "CONNECTION_ACCESS_DENIED_ERROR"
	TypeInvalidHostname ErrorType = "CONNECTION_INVALID_HOSTNAME_ERROR"
	TypeHostDown        ErrorType = "CONNECTION_HOST_DOWN_ERROR"
	TypePortClosed      ErrorType = "CONNECTION_PORT_CLOSED_ERROR"
	TypeUnknownDatabase ErrorType = "CONNECTION_UNKNOWN_DATABASE_ERROR"
	TypeSyntax          ErrorType = "SYNTAX_ERROR"
	TypeGeneric         ErrorType = "GENERIC_ERROR"
)

// Types lists every ErrorType in declaration order.
func Types() []ErrorType {
	return []ErrorType{
		TypeAccessDenied,
		TypeInvalidHostname,
		TypeHostDown,
		TypePortClosed,
		TypeUnknownDatabase,
		TypeSyntax,
		TypeGeneric,
	}
}

// Valid reports whether t belongs to the taxonomy.
func (t ErrorType) Valid() bool {
	for _, known := range Types() {
		if t == known {
			return true
		}
	}
	return false
}
