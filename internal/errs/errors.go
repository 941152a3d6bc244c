// Package errs provides the structured, user-facing error type produced by
// every engine adapter in dbspec.
//
// Engine catalogs turn free-text driver failures into *Error values with a
// closed ErrorType, a remediation message and documentation issue codes.
// The web layer serializes them as-is; callers use TypeOf and IsConnection
// to branch on the error type without importing engine packages.
//
// Usage:
//
//	// In an engine, build from a catalog match:
//	return errs.New(errs.TypeSyntax, msg, errs.Extra{EngineName: "MySQL"})
//
//	// In a handler, check the error type:
//	if errs.IsConnection(err) {
//	    w.WriteHeader(http.StatusBadGateway)
//	}
package errs

import (
	"errors"
	"fmt"
)

// Level is the severity reported to clients.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Extra carries the engine-specific diagnosis details.
type Extra struct {
	EngineName string      `json:"engine_name"`
	Invalid    []string    `json:"invalid,omitempty"`
	IssueCodes []IssueCode `json:"issue_codes"`
}

// Error is the structured error returned to API clients.
// Type, Extra.Invalid and Extra.IssueCodes are fixed by the catalog rule
// that produced it; Message is rendered from the captured parameters.
type Error struct {
	Type    ErrorType `json:"error_type"`
	Message string    `json:"message"`
	Level   Level     `json:"level"`
	Extra   Extra     `json:"extra"`
}

func (e *Error) Error() string {
	return e.Message
}

// String includes the type, for logs.
func (e *Error) String() string {
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// --- Constructors ---

// New creates an error-level *Error. When extra carries no issue codes the
// default codes for typ are filled in.
func New(typ ErrorType, msg string, extra Extra) *Error {
	if len(extra.IssueCodes) == 0 {
		extra.IssueCodes = IssueCodesFor(typ)
	}
	return &Error{Type: typ, Message: msg, Level: LevelError, Extra: extra}
}

// Generic creates the fallback error used when no catalog rule matched.
func Generic(engineName, msg string) *Error {
	return New(TypeGeneric, msg, Extra{EngineName: engineName})
}

// --- Predicates ---

// IsConnection reports whether err is any of the connection error types.
func IsConnection(err error) bool {
	switch TypeOf(err) {
	case TypeAccessDenied, TypeInvalidHostname, TypeHostDown, TypePortClosed, TypeUnknownDatabase:
		return true
	}
	return false
}

// TypeOf extracts the ErrorType from any error in the chain. Errors that are
// not *Error at all are GENERIC_ERROR.
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return TypeGeneric
}
